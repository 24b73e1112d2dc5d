package cloudrun

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/expense-backend/infra/common"
)

const containerPort = 8080

// serviceSettings is the "cloudrun" and "expense" stack configuration.
type serviceSettings struct {
	projectID   string
	region      string
	minScale    string
	maxScale    string
	cpu         string
	memory      string
	concurrency string
	timeout     int
	env         map[string]string
}

func loadSettings(ctx *pulumi.Context) serviceSettings {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "expense")

	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))
	projectID := gcpCfg.Require("project")

	timezone := appCfg.Get("timezone")
	if timezone == "" {
		timezone = "UTC"
	}
	years := appCfg.Get("sCurveYears")
	if years == "" {
		years = "1"
	}

	return serviceSettings{
		projectID:   projectID,
		region:      gcpCfg.Require("region"),
		minScale:    crCfg.Require("minScale"),
		maxScale:    crCfg.Require("maxScale"),
		cpu:         crCfg.Require("cpu"),
		memory:      crCfg.Require("memory"),
		concurrency: crCfg.Require("concurrency"),
		timeout:     timeout,
		env: map[string]string{
			"PROJECTID":   projectID,
			"LOGLEVEL":    crCfg.Require("logLevel"),
			"PORT":        strconv.Itoa(containerPort),
			"TIMEZONE":    timezone,
			"SCURVEYEARS": years,
		},
	}
}

// SetupCloudRun builds the API image and deploys it behind a dedicated
// service account with Firestore access.
func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*serviceaccount.Account, error) {
	s := loadSettings(ctx)

	img, err := buildApiImage(ctx, s, res...)
	if err != nil {
		return nil, err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return nil, err
	}

	apiSA, err := createServiceAccount(ctx, s, prov)
	if err != nil {
		return nil, err
	}

	svc, err := createCloudRunService(ctx, s, img, apiSA, prov, srv)
	if err != nil {
		return nil, err
	}

	if err := setIAMAccessPolicy(ctx, s, svc, prov); err != nil {
		return nil, err
	}

	ctx.Export("apiUrl", svc.Statuses.Index(pulumi.Int(0)).Url())
	return apiSA, nil
}

func buildApiImage(ctx *pulumi.Context, s serviceSettings, res ...pulumi.Resource) (*docker.Image, error) {
	hash, err := common.SourceHash("../")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"),
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/expense/expense-api:%s", s.region, s.projectID, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createServiceAccount(ctx *pulumi.Context, s serviceSettings, prov *gcp.Provider) (*serviceaccount.Account, error) {
	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("expense-api"),
		DisplayName: pulumi.String("Expense API Service Account"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = projects.NewIAMMember(ctx, "firestoreAccess", &projects.IAMMemberArgs{
		Role: pulumi.String("roles/datastore.user"),
		Member: apiSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
		Project: pulumi.String(s.projectID),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return apiSA, nil
}

func containerEnvs(env map[string]string) cloudrun.ServiceTemplateSpecContainerEnvArray {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(cloudrun.ServiceTemplateSpecContainerEnvArray, 0, len(keys))
	for _, k := range keys {
		out = append(out, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name:  pulumi.String(k),
			Value: pulumi.String(env[k]),
		})
	}
	return out
}

func createCloudRunService(ctx *pulumi.Context,
	s serviceSettings,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(s.region),
		Template: &cloudrun.ServiceTemplateArgs{
			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				Annotations: pulumi.StringMap{
					"autoscaling.knative.dev/minScale":         pulumi.String(s.minScale),
					"autoscaling.knative.dev/maxScale":         pulumi.String(s.maxScale),
					"run.googleapis.com/cpu":                   pulumi.String(s.cpu),
					"run.googleapis.com/memory":                pulumi.String(s.memory),
					"run.googleapis.com/cpu-throttling":        pulumi.String("true"),
					"run.googleapis.com/container-concurrency": pulumi.String(s.concurrency),
				},
			},
			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(s.timeout),
				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(containerPort),
							},
						},
						Envs: containerEnvs(s.env),
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// setIAMAccessPolicy opens the service to the internet; every route except
// /healthz checks a Firebase ID token itself.
func setIAMAccessPolicy(ctx *pulumi.Context, s serviceSettings, svc *cloudrun.Service, prov *gcp.Provider) error {
	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(s.region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}

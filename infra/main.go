package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/expense-backend/infra/cloudrun"
	"github.com/GregMSThompson/expense-backend/infra/docker"
	"github.com/GregMSThompson/expense-backend/infra/firestore"
	"github.com/GregMSThompson/expense-backend/infra/identity"
	"github.com/GregMSThompson/expense-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firebase auth issues the ID tokens the API verifies
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// transactions and categories live under users/{uid}
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, db, repo)
		return err
	})
}

package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PROJECTID", "demo")
	t.Setenv("LOGLEVEL", "")
	t.Setenv("PORT", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("SCURVEYEARS", "")

	cfg := fromEnv()

	if cfg.Port != "8080" || cfg.Timezone != "UTC" || cfg.SCurveYears != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("location mismatch: got %v", cfg.Location())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PROJECTID", "demo")
	t.Setenv("PORT", "9090")
	t.Setenv("TIMEZONE", "Asia/Bangkok")
	t.Setenv("SCURVEYEARS", "10")

	cfg := fromEnv()

	if cfg.Port != "9090" || cfg.SCurveYears != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if cfg.Location().String() != "Asia/Bangkok" {
		t.Fatalf("location mismatch: got %v", cfg.Location())
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	t.Setenv("PROJECTID", "")
	t.Setenv("PORT", "http")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	t.Setenv("SCURVEYEARS", "many")

	err := fromEnv().Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"PROJECTID", "TIMEZONE", "SCURVEYEARS", "PORT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in %q", want, err.Error())
		}
	}
}

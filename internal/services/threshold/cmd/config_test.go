package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env
	for _, k := range []string{"TABLE_NAME", "AWS_REGION", "DYNAMODB_ENDPOINT", "HIDE_STORE_ERRORS", "PORT", "CORS_ALLOWED_ORIGINS", "AWS_LAMBDA_RUNTIME_API", "STORE_TIMEOUT_MS"} {
		t.Setenv(k, "")
	}

	c := loadConfig()
	if c.TableName != "" {
		t.Errorf("TableName=%q, want empty", c.TableName)
	}
	if want := "eu-west-1"; c.Region != want {
		t.Errorf("Region=%v, want: %v", c.Region, want)
	}
	if want := 5000; c.StoreTimeoutMs != want {
		t.Errorf("StoreTimeoutMs=%v, want: %v", c.StoreTimeoutMs, want)
	}
	if c.HideStoreErrors {
		t.Error("HideStoreErrors=true, want: false")
	}
	if c.Lambda {
		t.Error("Lambda=true, want: false")
	}
	if diff := cmp.Diff([]string{"*"}, c.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TABLE_NAME", "plant-thresholds")
	t.Setenv("HIDE_STORE_ERRORS", "true")
	t.Setenv("STORE_TIMEOUT_MS", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local,")
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "127.0.0.1:9001")

	c := loadConfig()
	if want := "plant-thresholds"; c.TableName != want {
		t.Errorf("TableName=%v, want: %v", c.TableName, want)
	}
	if !c.HideStoreErrors {
		t.Error("HideStoreErrors=false, want: true")
	}
	if want := 250; c.StoreTimeoutMs != want {
		t.Errorf("StoreTimeoutMs=%v, want: %v", c.StoreTimeoutMs, want)
	}
	if !c.Lambda {
		t.Error("Lambda=false, want: true")
	}
	if diff := cmp.Diff([]string{"http://a.local", "http://b.local"}, c.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestGetenvFallbacks(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	if got := getenvInt("X_INT", 7); got != 7 {
		t.Errorf("getenvInt=%v, want: 7", got)
	}
	if got := getenvBool("X_BOOL", true); !got {
		t.Errorf("getenvBool=%v, want: true", got)
	}
}

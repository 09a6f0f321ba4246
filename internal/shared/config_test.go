package shared

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q", c.OutputFormat)
	}
	if c.Retries != 10 || c.RetryWait != 30*time.Second {
		t.Errorf("retry defaults = %d / %v", c.Retries, c.RetryWait)
	}
	if c.RequestInterval != 400*time.Millisecond {
		t.Errorf("RequestInterval = %v", c.RequestInterval)
	}
	if !c.RandomProfiles {
		t.Error("profile rotation should default to random")
	}
	if c.Workers != 4 {
		t.Errorf("Workers = %d", c.Workers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "parquet")
	t.Setenv("TARGET_REVIEWS", "250")
	t.Setenv("RETRY_WAIT_SECONDS", "5")
	t.Setenv("PROFILE_ROTATION", "sequential")
	t.Setenv("PROXY_URL", "http://proxy.internal:8080")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.OutputFormat != "parquet" {
		t.Errorf("OutputFormat = %q", c.OutputFormat)
	}
	if c.TargetReviews != 250 {
		t.Errorf("TargetReviews = %d", c.TargetReviews)
	}
	if c.RetryWait != 5*time.Second {
		t.Errorf("RetryWait = %v", c.RetryWait)
	}
	if c.RandomProfiles {
		t.Error("sequential rotation requested")
	}
	if c.ProxyURL != "http://proxy.internal:8080" {
		t.Errorf("ProxyURL = %q", c.ProxyURL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for OUTPUT_FORMAT=xml")
	}
}

func TestLoadRejectsBadProxy(t *testing.T) {
	t.Setenv("PROXY_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for PROXY_URL")
	}
}

func TestBadNumbersFallBack(t *testing.T) {
	t.Setenv("TARGET_REVIEWS", "many")
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.TargetReviews != 0 {
		t.Errorf("TargetReviews = %d", c.TargetReviews)
	}
}

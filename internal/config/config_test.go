package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_NAME", "blog")
	t.Setenv("DB_PASSWORD", "blog")
}

func TestValidate_OK(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

// A process without the signing secret must refuse to start.
func TestValidate_MissingSecretFatal(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SECRET_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("expected fatal error for missing SECRET_KEY")
	}
}

func TestValidate_MissingDBFatal(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("expected fatal error for missing DB config")
	}
}

func TestPasswordResetTTL(t *testing.T) {
	setBaseEnv(t)

	cfg, _ := LoadConfig()
	if got := cfg.PasswordResetTTL(); got != 1800*time.Second {
		t.Fatalf("default reset TTL = %v, want 1800s", got)
	}

	t.Setenv("PASSWORD_RESET_TTL", "600")
	cfg, _ = LoadConfig()
	if got := cfg.PasswordResetTTL(); got != 600*time.Second {
		t.Fatalf("reset TTL = %v, want 600s", got)
	}
}

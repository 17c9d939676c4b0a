package pagination_test

import (
	"testing"

	"portfolio-backend/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	cfg := pagination.DefaultConfig()
	if cfg.DefaultShown != 6 || cfg.Step != 6 || cfg.MaxShown != 100 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_SHOWN", "9")
	t.Setenv("PAGINATION_STEP", "3")
	t.Setenv("PAGINATION_MAX_SHOWN", "50")

	cfg := pagination.LoadFromEnv()
	if cfg.DefaultShown != 9 || cfg.Step != 3 || cfg.MaxShown != 50 {
		t.Errorf("LoadFromEnv() = %+v", cfg)
	}
}

func TestLoadFromEnvInvalidFallsBack(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_SHOWN", "not-a-number")

	cfg := pagination.LoadFromEnv()
	if cfg.DefaultShown != 6 {
		t.Errorf("DefaultShown = %d, want fallback 6", cfg.DefaultShown)
	}
}

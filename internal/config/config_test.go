package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("unexpected port: %s", cfg.Server.Port)
	}
	if strings.Join(cfg.Models.Available, ",") != "model-A,model-B,model-C" {
		t.Errorf("unexpected models: %v", cfg.Models.Available)
	}
	if cfg.Models.Default != "model-A" || cfg.Models.CompareA != "model-A" || cfg.Models.CompareB != "model-B" {
		t.Errorf("unexpected model defaults: %+v", cfg.Models)
	}
	if cfg.Storage.UploadDir != "uploaded_files" {
		t.Errorf("unexpected upload dir: %s", cfg.Storage.UploadDir)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.LLM.Timeout)
	}
	if cfg.LLM.FallbackMode != "mock" {
		t.Errorf("unexpected fallback mode: %s", cfg.LLM.FallbackMode)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("AVAILABLE_MODELS", " gpt-4o , gpt-4o-mini ,")
	t.Setenv("DEFAULT_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "5")
	t.Setenv("WATCH_UPLOADS", "false")
	t.Setenv("STORE_BACKEND", "sqlite")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(cfg.Models.Available) != 2 || cfg.Models.Available[1] != "gpt-4o-mini" {
		t.Errorf("list not trimmed: %q", cfg.Models.Available)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("unexpected LLM config: %+v", cfg.LLM)
	}
	if cfg.Storage.WatchUploads || cfg.Storage.Backend != "sqlite" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
}

func TestLoadConfig_BadValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "soon")
	t.Setenv("WATCH_UPLOADS", "maybe")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LLM.Timeout != 30*time.Second || !cfg.Storage.WatchUploads {
		t.Error("unparseable values should use defaults")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider":      {"LLM_PROVIDER": "mystery"},
		"unknown fallback mode": {"FALLBACK_MODE": "silent"},
		"unknown backend":       {"STORE_BACKEND": "redis"},
		"default not allowed":   {"DEFAULT_MODEL": "model-Z"},
		"non-positive timeout":  {"GENERATION_TIMEOUT_SECONDS": "-1"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

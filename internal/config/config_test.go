package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Manifest != "image_list.txt" {
		t.Errorf("expected default manifest 'image_list.txt', got %q", cfg.Manifest)
	}
	if cfg.Images != "images" {
		t.Errorf("expected default images dir 'images', got %q", cfg.Images)
	}
	if cfg.Descs != "descs" {
		t.Errorf("expected default descs dir 'descs', got %q", cfg.Descs)
	}
	if cfg.ErrorLog != "error_log.txt" {
		t.Errorf("expected default error log 'error_log.txt', got %q", cfg.ErrorLog)
	}
	if cfg.Workers != 10 {
		t.Errorf("expected default workers 10, got %d", cfg.Workers)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
base_url: https://example.fandom.com
manifest: custom_list.txt
images: s3://mirror-bucket/images
workers: 4
timeout: 45s
progress: true
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.BaseURL != "https://example.fandom.com" {
		t.Errorf("expected base URL from file, got %q", cfg.BaseURL)
	}
	if cfg.Manifest != "custom_list.txt" {
		t.Errorf("expected manifest 'custom_list.txt', got %q", cfg.Manifest)
	}
	if cfg.Images != "s3://mirror-bucket/images" {
		t.Errorf("expected bucket URL images dest, got %q", cfg.Images)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected workers 4, got %d", cfg.Workers)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("expected timeout 45s, got %v", cfg.Timeout)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}

	// Unset fields keep their defaults
	if cfg.Descs != "descs" {
		t.Errorf("expected default descs dir, got %q", cfg.Descs)
	}
	if cfg.ErrorLog != "error_log.txt" {
		t.Errorf("expected default error log, got %q", cfg.ErrorLog)
	}
}

func TestLoadFromYAMLBadTimeout(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("timeout: soon\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WIKIMIRROR_BASE_URL", "https://wiki.example.org")
	t.Setenv("WIKIMIRROR_WORKERS", "3")
	t.Setenv("WIKIMIRROR_TIMEOUT", "10s")
	t.Setenv("WIKIMIRROR_PROGRESS", "1")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.BaseURL != "https://wiki.example.org" {
		t.Errorf("expected base URL from env, got %q", cfg.BaseURL)
	}
	if cfg.Workers != 3 {
		t.Errorf("expected workers 3, got %d", cfg.Workers)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
}

func TestLoadFromEnvInvalidWorkers(t *testing.T) {
	t.Setenv("WIKIMIRROR_WORKERS", "many")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid WIKIMIRROR_WORKERS")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without base URL")
	}

	cfg.BaseURL = "https://example.fandom.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	bad := cfg
	bad.Workers = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero workers")
	}

	bad = cfg
	bad.Timeout = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.BaseURL = "https://a.example.org"

	merged := base.Merge(Config{
		BaseURL: "https://b.example.org",
		Workers: 20,
	})

	if merged.BaseURL != "https://b.example.org" {
		t.Errorf("expected override base URL, got %q", merged.BaseURL)
	}
	if merged.Workers != 20 {
		t.Errorf("expected override workers, got %d", merged.Workers)
	}
	if merged.Manifest != "image_list.txt" {
		t.Errorf("expected base manifest preserved, got %q", merged.Manifest)
	}

	// Zero-value override fields must not clobber
	if merged.Timeout != 30*time.Second {
		t.Errorf("expected base timeout preserved, got %v", merged.Timeout)
	}
}

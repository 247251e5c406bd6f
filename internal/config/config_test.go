package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(llmAPIKeyEnv, "")
	t.Setenv(llmAPIKeyAltEnv, "")
	t.Setenv(llmEndpointEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(gcpProjectEnv, "")

	cfg := Load()

	if cfg.LLM.Endpoint != "https://api.siliconflow.cn/v1" {
		t.Errorf("unexpected default endpoint %q", cfg.LLM.Endpoint)
	}
	if cfg.Selector.MaxDocLength != 12000 || cfg.Selector.TotalBudget != 140000 {
		t.Errorf("unexpected selector defaults: %+v", cfg.Selector)
	}
	if cfg.Briefing.Concurrency != 2 {
		t.Errorf("briefing concurrency must default to 2, got %d", cfg.Briefing.Concurrency)
	}
	if cfg.Normalizer.ChunkMinLength != 10 {
		t.Errorf("chunk minimum must default to 10, got %d", cfg.Normalizer.ChunkMinLength)
	}
	if cfg.Status.TopicPrefix != "research-status" {
		t.Errorf("unexpected topic prefix %q", cfg.Status.TopicPrefix)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
llm:
  briefingModel: custom/briefing
briefing:
  concurrency: 4
datasets:
  file: /tmp/datasets.json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(llmAPIKeyEnv, "")
	t.Setenv(llmAPIKeyAltEnv, "")
	t.Setenv(llmEndpointEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(gcpProjectEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Errorf("file value must win, got level %q", cfg.Logging.Level)
	}
	if cfg.LLM.BriefingModel != "custom/briefing" {
		t.Errorf("file value must win, got briefing model %q", cfg.LLM.BriefingModel)
	}
	if cfg.Briefing.Concurrency != 4 {
		t.Errorf("file value must win, got concurrency %d", cfg.Briefing.Concurrency)
	}
	if cfg.Datasets.File != "/tmp/datasets.json" {
		t.Errorf("file value must win, got datasets file %q", cfg.Datasets.File)
	}
	// Fields the file leaves out keep their defaults.
	if cfg.LLM.EditorModel != "Qwen/Qwen3-235B-A22B" {
		t.Errorf("unset file field must keep the default, got %q", cfg.LLM.EditorModel)
	}
	if cfg.Selector.MaxDocLength != 12000 {
		t.Errorf("unset file field must keep the default, got %d", cfg.Selector.MaxDocLength)
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  apiKey: file-key
  endpoint: https://file.example/v1
database:
  dsn: postgres://file
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(llmAPIKeyEnv, "env-key")
	t.Setenv(llmEndpointEnv, "https://env.example/v1")
	t.Setenv(databaseDSNEnv, "postgres://env")
	t.Setenv(gcpProjectEnv, "env-project")

	cfg := Load()

	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("env must override file, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Endpoint != "https://env.example/v1" {
		t.Errorf("env must override file, got %q", cfg.LLM.Endpoint)
	}
	if cfg.Database.DSN != "postgres://env" {
		t.Errorf("env must override file, got %q", cfg.Database.DSN)
	}
	if cfg.Status.ProjectID != "env-project" {
		t.Errorf("env must set the project id, got %q", cfg.Status.ProjectID)
	}
}

func TestLoadAlternateAPIKeyEnv(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(llmAPIKeyEnv, "")
	t.Setenv(llmAPIKeyAltEnv, "alt-key")
	t.Setenv(llmEndpointEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(gcpProjectEnv, "")

	cfg := Load()
	if cfg.LLM.APIKey != "alt-key" {
		t.Errorf("alternate key env must apply when the primary is unset, got %q", cfg.LLM.APIKey)
	}

	t.Setenv(llmAPIKeyEnv, "primary-key")
	cfg = Load()
	if cfg.LLM.APIKey != "primary-key" {
		t.Errorf("primary key env must win, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(llmAPIKeyEnv, "")
	t.Setenv(llmAPIKeyAltEnv, "")
	t.Setenv(llmEndpointEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(gcpProjectEnv, "")

	cfg := Load()
	if cfg.Selector.TotalBudget != 140000 {
		t.Errorf("defaults must survive an unreadable config file")
	}
}

package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "COMPANY_BRIEF_CONFIG"
	llmAPIKeyEnv    = "SILICONFLOW_API_KEY"
	llmAPIKeyAltEnv = "LLM_API_KEY"
	llmEndpointEnv  = "LLM_ENDPOINT"
	databaseDSNEnv  = "DATABASE_DSN"
	gcpProjectEnv   = "GOOGLE_CLOUD_PROJECT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	LLM        LLMConfig        `yaml:"llm"`
	Selector   SelectorConfig   `yaml:"selector"`
	Briefing   BriefingConfig   `yaml:"briefing"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Status     StatusConfig     `yaml:"status"`
	Database   DatabaseConfig   `yaml:"database"`
	Datasets   DatasetConfig    `yaml:"datasets"`
	References ReferenceConfig  `yaml:"references"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig defines how to contact the OpenAI-compatible completion backend.
type LLMConfig struct {
	Endpoint      string `yaml:"endpoint"`
	APIKey        string `yaml:"apiKey"`
	BriefingModel string `yaml:"briefingModel"`
	EditorModel   string `yaml:"editorModel"`
}

// SelectorConfig bounds the prompt text assembled from curated documents.
type SelectorConfig struct {
	MaxDocLength int `yaml:"maxDocLength"`
	TotalBudget  int `yaml:"totalBudget"`
}

// BriefingConfig tunes the category fan-out.
type BriefingConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// NormalizerConfig tunes the streaming cleanup pass.
type NormalizerConfig struct {
	ChunkMinLength int `yaml:"chunkMinLength"`
}

// StatusConfig wires the Pub/Sub status channel.
type StatusConfig struct {
	ProjectID   string `yaml:"projectId"`
	TopicPrefix string `yaml:"topicPrefix"`
}

// DatabaseConfig describes Postgres connection details for curated datasets.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// DatasetConfig points at a JSON dataset file used when no database is set.
type DatasetConfig struct {
	File string `yaml:"file"`
}

// ReferenceConfig controls descriptive-title resolution for reference links.
type ReferenceConfig struct {
	ResolveTitles bool `yaml:"resolveTitles"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv(llmAPIKeyAltEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(llmEndpointEnv); v != "" {
		c.LLM.Endpoint = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(gcpProjectEnv); v != "" {
		c.Status.ProjectID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.BriefingModel != "" {
		base.LLM.BriefingModel = override.LLM.BriefingModel
	}
	if override.LLM.EditorModel != "" {
		base.LLM.EditorModel = override.LLM.EditorModel
	}

	if override.Selector.MaxDocLength > 0 {
		base.Selector.MaxDocLength = override.Selector.MaxDocLength
	}
	if override.Selector.TotalBudget > 0 {
		base.Selector.TotalBudget = override.Selector.TotalBudget
	}

	if override.Briefing.Concurrency > 0 {
		base.Briefing.Concurrency = override.Briefing.Concurrency
	}

	if override.Normalizer.ChunkMinLength > 0 {
		base.Normalizer.ChunkMinLength = override.Normalizer.ChunkMinLength
	}

	if override.Status.ProjectID != "" {
		base.Status.ProjectID = override.Status.ProjectID
	}
	if override.Status.TopicPrefix != "" {
		base.Status.TopicPrefix = override.Status.TopicPrefix
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Datasets.File != "" {
		base.Datasets.File = override.Datasets.File
	}

	if override.References.ResolveTitles {
		base.References.ResolveTitles = true
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		LLM: LLMConfig{
			Endpoint:      "https://api.siliconflow.cn/v1",
			APIKey:        "",
			BriefingModel: "deepseek-ai/DeepSeek-V3",
			EditorModel:   "Qwen/Qwen3-235B-A22B",
		},
		Selector: SelectorConfig{
			MaxDocLength: 12000,
			TotalBudget:  140000,
		},
		Briefing:   BriefingConfig{Concurrency: 2},
		Normalizer: NormalizerConfig{ChunkMinLength: 10},
		Status: StatusConfig{
			ProjectID:   "",
			TopicPrefix: "research-status",
		},
		Database:   DatabaseConfig{DSN: ""},
		Datasets:   DatasetConfig{File: ""},
		References: ReferenceConfig{ResolveTitles: false},
	}
}

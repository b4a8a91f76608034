package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort     string `yaml:"api_port"`
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`

	GraphDir  string `yaml:"graph_dir"`
	StaticDir string `yaml:"static_dir"`

	OllamaURL        string `yaml:"ollama_url"`
	OllamaEmbedModel string `yaml:"ollama_embed_model"`

	OpenAIAPIKey          string `yaml:"openai_api_key"`
	OpenAIModel           string `yaml:"openai_model"`
	AzureOpenAIEndpoint   string `yaml:"azure_openai_endpoint"`
	AzureOpenAIDeployment string `yaml:"azure_openai_deployment"`

	SearchBaseURL        string  `yaml:"search_base_url"`
	SearchUserAgent      string  `yaml:"search_user_agent"`
	SearchTimeoutSeconds int     `yaml:"search_timeout_seconds"`
	SearchPacePerSecond  float64 `yaml:"search_pace_per_second"`
	MaxSearchResults     int     `yaml:"max_search_results"`

	RetrievalTopK     int `yaml:"retrieval_top_k"`
	NeighborLimit     int `yaml:"neighbor_limit"`
	DescriptionLimit  int `yaml:"description_limit"`
	NeighborDescLimit int `yaml:"neighbor_desc_limit"`
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, and finally environment variables, in that order.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIPort:     "8080",
		LogLevel:    "info",
		Environment: "development",

		GraphDir:  "graph",
		StaticDir: "web",

		OllamaURL:        "http://localhost:11434",
		OllamaEmbedModel: "nomic-embed-text",

		OpenAIModel: "gpt-3.5-turbo",

		SearchTimeoutSeconds: 10,
		SearchPacePerSecond:  1,
		MaxSearchResults:     5,

		RetrievalTopK:     5,
		NeighborLimit:     2,
		DescriptionLimit:  200,
		NeighborDescLimit: 100,
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.APIPort = mustEnv("API_PORT", cfg.APIPort)
	cfg.LogLevel = mustEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Environment = mustEnv("ENVIRONMENT", cfg.Environment)

	cfg.GraphDir = mustEnv("GRAPH_DIR", cfg.GraphDir)
	cfg.StaticDir = mustEnv("STATIC_DIR", cfg.StaticDir)

	cfg.OllamaURL = mustEnv("OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaEmbedModel = mustEnv("OLLAMA_EMBED_MODEL", cfg.OllamaEmbedModel)

	cfg.OpenAIAPIKey = mustEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.OpenAIModel = mustEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.AzureOpenAIEndpoint = mustEnv("AZURE_OPENAI_ENDPOINT", cfg.AzureOpenAIEndpoint)
	cfg.AzureOpenAIDeployment = mustEnv("AZURE_OPENAI_DEPLOYMENT_NAME", cfg.AzureOpenAIDeployment)

	cfg.SearchBaseURL = mustEnv("SEARCH_BASE_URL", cfg.SearchBaseURL)
	cfg.SearchUserAgent = mustEnv("USER_AGENT", cfg.SearchUserAgent)
	cfg.SearchTimeoutSeconds = mustEnvInt("SEARCH_TIMEOUT_SECONDS", cfg.SearchTimeoutSeconds)
	cfg.SearchPacePerSecond = mustEnvFloat("SEARCH_PACE_PER_SECOND", cfg.SearchPacePerSecond)
	cfg.MaxSearchResults = mustEnvInt("MAX_SEARCH_RESULTS", cfg.MaxSearchResults)

	cfg.RetrievalTopK = mustEnvInt("RETRIEVAL_TOP_K", cfg.RetrievalTopK)
	cfg.NeighborLimit = mustEnvInt("NEIGHBOR_LIMIT", cfg.NeighborLimit)
	cfg.DescriptionLimit = mustEnvInt("DESCRIPTION_LIMIT", cfg.DescriptionLimit)
	cfg.NeighborDescLimit = mustEnvInt("NEIGHBOR_DESC_LIMIT", cfg.NeighborDescLimit)
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

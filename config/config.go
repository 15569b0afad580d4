package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir   string `json:"project_dir"`
	ReportsDir   string `json:"reports_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	LLMProvider string  `json:"llm_provider"`
	ModelName   string  `json:"model_name"`
	BackendURL  string  `json:"backend_url"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`

	NewsCount    int  `json:"news_count"`
	CacheEnabled bool `json:"cache_enabled"`
	Debug        bool `json:"debug"`

	// API credentials
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`
	ExaAPIKey      string `json:"exa_api_key"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir:   currentDir,
		ReportsDir:   filepath.Join(currentDir, "reports"),
		DataCacheDir: filepath.Join(currentDir, "data", "cache"),

		LLMProvider: "openai",
		ModelName:   "gpt-5-mini",
		BackendURL:  "https://api.openai.com/v1",
		Temperature: 0.7,
		MaxTokens:   8192,

		NewsCount:    5,
		CacheEnabled: true,
		Debug:        false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("REPORTS_DIR"); val != "" {
		c.ReportsDir = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("MODEL_NAME"); val != "" {
		c.ModelName = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("TEMPERATURE"); val != "" {
		if t, err := strconv.ParseFloat(val, 64); err == nil {
			c.Temperature = t
		}
	}
	if val := os.Getenv("MAX_TOKENS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxTokens = v
		}
	}

	if val := os.Getenv("NEWS_COUNT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.NewsCount = v
		}
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if cache, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = cache
		}
	}
	if val := os.Getenv("COINSCOPE_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("EXA_API_KEY"); val != "" {
		c.ExaAPIKey = val
	}
}

func (c *Config) Validate() error {
	if c.LLMProvider != "openai" && c.LLMProvider != "deepseek" {
		return fmt.Errorf("unsupported llm provider: %s", c.LLMProvider)
	}
	if c.ModelName == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %v", c.Temperature)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ReportsDir, c.DataCacheDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}

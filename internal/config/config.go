package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	EngineURL string `yaml:"engine_url"`

	NATSURL         string `yaml:"nats_url"`
	NATSStepSubject string `yaml:"nats_step_subject"`

	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`

	APIRateLimitRPS      int `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst    int `yaml:"api_rate_limit_burst"`
	APIMaxConcurrent     int `yaml:"api_max_concurrent"`
	APIQueueWaitMillis   int `yaml:"api_queue_wait_millis"`
	PDFImportMaxBytes    int `yaml:"pdf_import_max_bytes"`
	SessionIdleTTLMillis int `yaml:"session_idle_ttl_millis"`
}

// Load reads environment variables with defaults, then applies the YAML file
// named by CONFIG_FILE on top when set.
func Load() (Config, error) {
	cfg := Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		EngineURL: mustEnv("ENGINE_URL", "http://localhost:9000"),

		NATSURL:         mustEnv("NATS_URL", ""),
		NATSStepSubject: mustEnv("NATS_STEP_SUBJECT", "approval.steps.changed"),

		DefaultPageSize: mustEnvInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     mustEnvInt("MAX_PAGE_SIZE", 100),

		APIRateLimitRPS:      mustEnvInt("API_RATE_LIMIT_RPS", 50),
		APIRateLimitBurst:    mustEnvInt("API_RATE_LIMIT_BURST", 100),
		APIMaxConcurrent:     mustEnvInt("API_MAX_CONCURRENT", 64),
		APIQueueWaitMillis:   mustEnvInt("API_QUEUE_WAIT_MILLIS", 200),
		PDFImportMaxBytes:    mustEnvInt("PDF_IMPORT_MAX_BYTES", 10<<20),
		SessionIdleTTLMillis: mustEnvInt("SESSION_IDLE_TTL_MILLIS", 30*60*1000),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
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

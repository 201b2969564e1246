package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is built once at startup and shared read-only afterwards.
type Config struct {
	Port         string `envconfig:"PORT" default:"8000"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	OutputDir    string `envconfig:"OUTPUT_DIR" default:"output"`
	ImagesDir    string `envconfig:"IMAGES_DIR" default:"images"`
	FrontendPath string `envconfig:"FRONTEND_PATH" default:"integrated_frontend.html"`

	KnowledgeFile string `envconfig:"KNOWLEDGE_FILE"`
	AliasFile     string `envconfig:"ALIAS_FILE"`

	LLMAPIKey      string        `envconfig:"LLM_API_KEY"`
	LLMBaseURL     string        `envconfig:"LLM_BASE_URL" default:"https://api.siliconflow.cn/v1"`
	LLMModel       string        `envconfig:"LLM_MODEL" default:"Qwen/Qwen2.5-72B-Instruct"`
	LLMTemperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	LLMMaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"200"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"10s"`

	VideoDelay time.Duration `envconfig:"VIDEO_DELAY" default:"2s"`
	VideoExt   string        `envconfig:"VIDEO_EXT" default:".mp4"`

	// LibraryScanInterval of 0 disables the background library scan.
	LibraryScanInterval time.Duration `envconfig:"LIBRARY_SCAN_INTERVAL" default:"1m"`

	// Optional S3-compatible video library; the local OutputDir is used otherwise.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"relic-videos"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Prefix    string `envconfig:"S3_PREFIX"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("RELIC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values that would make the server misbehave at runtime.
func (c *Config) Validate() error {
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens)
	}
	// A zero temperature is dropped from the chat request, so it is not accepted.
	if c.LLMTemperature <= 0 || c.LLMTemperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be within (0, 2], got %v", c.LLMTemperature)
	}
	if c.VideoDelay < 0 {
		return fmt.Errorf("VIDEO_DELAY must not be negative, got %s", c.VideoDelay)
	}
	if c.LibraryScanInterval < 0 {
		return fmt.Errorf("LIBRARY_SCAN_INTERVAL must not be negative, got %s", c.LibraryScanInterval)
	}
	if c.VideoExt == "" || c.VideoExt[0] != '.' {
		return fmt.Errorf("VIDEO_EXT must start with a dot, got %q", c.VideoExt)
	}
	return nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasLLM() bool {
	return c.LLMAPIKey != ""
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}

// TracesSampleRate samples every trace in development and 10% elsewhere.
func (c *Config) TracesSampleRate() float64 {
	if c.Environment == "development" {
		return 1.0
	}
	return 0.1
}

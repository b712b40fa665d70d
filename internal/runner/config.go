package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/afland/duende-publisher/internal/adapters/wordpress"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

// Config is the full environment surface of the pipeline.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Generative-text backend
	GroqAPIKey      string `mapstructure:"GROQ_API_KEY"`
	GroqModel       string `mapstructure:"GROQ_MODEL"`
	GroqBaseURL     string `mapstructure:"GROQ_BASE_URL"`
	DailyTokenLimit int    `mapstructure:"DAILY_TOKEN_LIMIT"`
	ContentFormat   string `mapstructure:"CONTENT_RESPONSE_FORMAT"` // json | delimited

	// Blog platform
	BlogAPIURL      string `mapstructure:"BLOG_API_URL"`
	BlogAuthScheme  string `mapstructure:"BLOG_AUTH_SCHEME"` // basic | bearer
	BlogUsername    string `mapstructure:"BLOG_USERNAME"`
	BlogAppPassword string `mapstructure:"BLOG_APP_PASSWORD"`
	BlogBearerToken string `mapstructure:"BLOG_BEARER_TOKEN"`
	BlogCategoryID  int    `mapstructure:"BLOG_CATEGORY_ID"`

	// Batch behaviour
	LeadTimeDays int           `mapstructure:"LEAD_TIME_DAYS"`
	BatchSize    int           `mapstructure:"BATCH_SIZE"`
	EventDelay   time.Duration `mapstructure:"EVENT_DELAY"`
	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// Image compositing
	TemplatesDir string `mapstructure:"TEMPLATES_DIR"`
	OutputDir    string `mapstructure:"OUTPUT_DIR"`
	FontFile     string `mapstructure:"FONT_FILE"`

	// Process
	RunMode       string `mapstructure:"RUN_MODE"` // once | serve
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	TriggerSecret string `mapstructure:"TRIGGER_SECRET"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// Load .env file if it exists (godotenv will find it automatically)
	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()

	// Set default values
	v.SetDefault("DATABASE_URL", "postgresql://localhost:5432/duende?sslmode=disable")
	v.SetDefault("GROQ_MODEL", "llama3-8b-8192")
	v.SetDefault("DAILY_TOKEN_LIMIT", 500000)
	v.SetDefault("CONTENT_RESPONSE_FORMAT", "json")
	v.SetDefault("BLOG_AUTH_SCHEME", wordpress.AuthSchemeBasic)
	v.SetDefault("LEAD_TIME_DAYS", 2)
	v.SetDefault("BATCH_SIZE", 3)
	v.SetDefault("EVENT_DELAY", 5*time.Second)
	v.SetDefault("HTTP_TIMEOUT", 60*time.Second)
	v.SetDefault("TEMPLATES_DIR", "templates")
	v.SetDefault("OUTPUT_DIR", "generated_images")
	v.SetDefault("FONT_FILE", "templates/Cinzel-Bold.ttf")
	v.SetDefault("RUN_MODE", "once")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")

	// Enable automatic environment variable reading
	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Keys without defaults must still be declared, or Unmarshal won't see them
	for _, key := range []string{
		"GROQ_API_KEY",
		"GROQ_BASE_URL",
		"BLOG_API_URL",
		"BLOG_USERNAME",
		"BLOG_APP_PASSWORD",
		"BLOG_BEARER_TOKEN",
		"BLOG_CATEGORY_ID",
		"TRIGGER_SECRET",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"run_mode", config.RunMode,
		"batch_size", config.BatchSize,
		"content_format", config.ContentFormat,
	)

	if err := config.validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

func (c Config) validate() error {
	if c.GroqAPIKey == "" {
		return errors.New("GROQ_API_KEY is required")
	}
	if c.BlogAPIURL == "" {
		return errors.New("BLOG_API_URL is required")
	}

	switch c.BlogAuthScheme {
	case wordpress.AuthSchemeBasic:
		if c.BlogUsername == "" || c.BlogAppPassword == "" {
			return errors.New("BLOG_USERNAME and BLOG_APP_PASSWORD are required for basic auth")
		}
	case wordpress.AuthSchemeBearer:
		if c.BlogBearerToken == "" {
			return errors.New("BLOG_BEARER_TOKEN is required for bearer auth")
		}
	default:
		return fmt.Errorf("unsupported BLOG_AUTH_SCHEME %q (want basic or bearer)", c.BlogAuthScheme)
	}

	if c.RunMode != "once" && c.RunMode != "serve" {
		return fmt.Errorf("unsupported RUN_MODE %q (want once or serve)", c.RunMode)
	}

	return nil
}

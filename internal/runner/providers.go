package runner

import (
	"github.com/afland/duende-publisher/internal/adapters/groq"
	"github.com/afland/duende-publisher/internal/adapters/rest"
	"github.com/afland/duende-publisher/internal/adapters/wordpress"
	contentDomain "github.com/afland/duende-publisher/internal/content/domain"
	eventsApp "github.com/afland/duende-publisher/internal/events/application"
	"github.com/afland/duende-publisher/internal/imaging"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from the runner config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// provideTriggerHandler creates the batch trigger endpoint handler
func provideTriggerHandler(creator *eventsApp.CreatorService, config Config, log logger.Logger) *rest.TriggerHandler {
	return rest.NewTriggerHandler(creator, config.TriggerSecret, log)
}

// provideHealthHandler creates the health endpoint handler
func provideHealthHandler() *rest.HealthHandler {
	return rest.NewHealthHandler(provideVersion())
}

// provideGroqConfig maps the runner config onto the backend client config
func provideGroqConfig(config Config) groq.Config {
	return groq.Config{
		BaseURL: config.GroqBaseURL,
		APIKey:  config.GroqAPIKey,
		Model:   config.GroqModel,
		Timeout: config.HTTPTimeout,
	}
}

// provideWordpressConfig maps the runner config onto the blog client config
func provideWordpressConfig(config Config) wordpress.Config {
	return wordpress.Config{
		BaseURL:     config.BlogAPIURL,
		AuthScheme:  config.BlogAuthScheme,
		Username:    config.BlogUsername,
		AppPassword: config.BlogAppPassword,
		BearerToken: config.BlogBearerToken,
		CategoryID:  config.BlogCategoryID,
		Timeout:     config.HTTPTimeout,
	}
}

// provideDecoder selects the response decoding strategy
func provideDecoder(config Config) contentDomain.Decoder {
	return contentDomain.NewDecoder(config.ContentFormat)
}

// provideComposer builds the header-image compositor
func provideComposer(config Config, log logger.Logger) *imaging.Composer {
	return imaging.NewComposer(config.TemplatesDir, config.OutputDir, config.FontFile, log)
}

// provideCreatorConfig bounds the batch orchestrator
func provideCreatorConfig(config Config) eventsApp.CreatorConfig {
	return eventsApp.CreatorConfig{
		BatchSize:       config.BatchSize,
		LeadTimeDays:    config.LeadTimeDays,
		EventDelay:      config.EventDelay,
		DailyTokenLimit: config.DailyTokenLimit,
	}
}

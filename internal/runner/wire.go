//go:build wireinject
// +build wireinject

package runner

import (
	"context"

	"github.com/google/wire"

	"github.com/afland/duende-publisher/internal/adapters/groq"
	"github.com/afland/duende-publisher/internal/adapters/postgres"
	"github.com/afland/duende-publisher/internal/adapters/wordpress"
	contentApp "github.com/afland/duende-publisher/internal/content/application"
	contentPorts "github.com/afland/duende-publisher/internal/content/ports"
	eventsApp "github.com/afland/duende-publisher/internal/events/application"
	"github.com/afland/duende-publisher/internal/events/ports"
	"github.com/afland/duende-publisher/internal/imaging"
	"github.com/afland/duende-publisher/internal/platform/eventbus"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,

		// Main logger
		logger.NewConfiguredLogger,
		wire.Bind(new(logger.Logger), new(*logger.SlogAdapter)),

		// Database
		ConnectDatabase,

		// Event store (includes interface binding)
		postgres.ProviderSet,

		// Notification bus
		eventbus.ProviderSet,

		// Text backend and content generation
		provideGroqConfig,
		groq.NewClient,
		wire.Bind(new(contentPorts.Completer), new(*groq.Client)),
		provideDecoder,
		contentApp.ProviderSet,
		wire.Bind(new(ports.ContentGenerator), new(*contentApp.GeneratorService)),

		// Header images
		provideComposer,
		wire.Bind(new(ports.ImageComposer), new(*imaging.Composer)),

		// Blog platform (includes interface binding)
		provideWordpressConfig,
		wordpress.ProviderSet,

		// Batch orchestrator
		provideCreatorConfig,
		eventsApp.ProviderSet,

		// Trigger surface
		provideTriggerHandler,
		provideHealthHandler,
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}

package rest_test

import (
	"context"
	"time"

	contentDomain "github.com/afland/duende-publisher/internal/content/domain"
	"github.com/afland/duende-publisher/internal/events/application"
	"github.com/afland/duende-publisher/internal/events/domain"
	"github.com/afland/duende-publisher/internal/events/ports"
	"github.com/afland/duende-publisher/internal/platform/eventbus"
	"github.com/afland/duende-publisher/internal/platform/logger"
	"github.com/google/uuid"
)

// emptyRepo never has anything to claim, so RunBatch is an instant no-op.
type emptyRepo struct{}

func (emptyRepo) ClaimNextPending(ctx context.Context, minDate time.Time) (*domain.Event, error) {
	return nil, ports.ErrNoPendingEvents
}

func (emptyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContentStatus) error {
	return nil
}

func (emptyRepo) MarkProcessed(ctx context.Context, id uuid.UUID, headerImageURL string) error {
	return nil
}

type noopComposer struct{}

func (noopComposer) Compose(ctx context.Context, event *domain.Event) (string, error) {
	return "", nil
}

type noopGenerator struct{}

func (noopGenerator) Generate(ctx context.Context, event *domain.Event, budget contentDomain.TokenBudget) (contentDomain.GeneratedContent, contentDomain.TokenBudget, error) {
	return contentDomain.GeneratedContent{}, budget, nil
}

type noopPublisher struct{}

func (noopPublisher) UploadMedia(ctx context.Context, filePath, altText, titleText string) (int64, error) {
	return 0, nil
}

func (noopPublisher) Publish(ctx context.Context, params ports.PublishParams, featuredMediaID int64) (ports.PublishResult, error) {
	return ports.PublishResult{}, nil
}

func newIdleCreator() *application.CreatorService {
	log := logger.NewBootstrapLogger()
	return application.NewCreatorService(
		emptyRepo{}, noopComposer{}, noopGenerator{}, noopPublisher{},
		eventbus.NewBus(log), log,
		application.CreatorConfig{BatchSize: 1},
	)
}

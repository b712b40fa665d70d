package ports

import (
	"context"
	"time"

	contentDomain "github.com/afland/duende-publisher/internal/content/domain"
	"github.com/afland/duende-publisher/internal/events/domain"
)

// ImageComposer renders the header image for an event and returns the local
// file path. Failures are always soft and retryable.
type ImageComposer interface {
	Compose(ctx context.Context, event *domain.Event) (string, error)
}

// ContentGenerator produces validated blog content for an event, threading
// the token budget through the call.
type ContentGenerator interface {
	Generate(ctx context.Context, event *domain.Event, budget contentDomain.TokenBudget) (contentDomain.GeneratedContent, contentDomain.TokenBudget, error)
}

// PublishParams is everything the blog platform needs for one post.
type PublishParams struct {
	Content     contentDomain.GeneratedContent
	ScheduledAt *time.Time // nil publishes immediately
}

// PublishResult reports what the platform created.
type PublishResult struct {
	Link             string
	FeaturedImageURL string
}

// BlogPublisher is the two-operation surface of the blog platform.
type BlogPublisher interface {
	// UploadMedia sends the local image file; failures are soft/retryable.
	UploadMedia(ctx context.Context, filePath, altText, titleText string) (int64, error)

	// Publish creates the post referencing the uploaded media; failures are
	// fatal for the event.
	Publish(ctx context.Context, params PublishParams, featuredMediaID int64) (PublishResult, error)
}

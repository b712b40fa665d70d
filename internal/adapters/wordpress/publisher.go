package wordpress

import (
	"context"

	"github.com/afland/duende-publisher/internal/events/ports"
)

// Publisher adapts the platform client to the pipeline's BlogPublisher port.
type Publisher struct {
	client *Client
}

// NewPublisher creates the port adapter around the platform client
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// UploadMedia forwards to the platform media endpoint
func (p *Publisher) UploadMedia(ctx context.Context, filePath, altText, titleText string) (int64, error) {
	return p.client.UploadMedia(ctx, filePath, altText, titleText)
}

// Publish creates the post. A scheduled time switches the post into the
// platform's "future" status; otherwise it goes out immediately.
func (p *Publisher) Publish(ctx context.Context, params ports.PublishParams, featuredMediaID int64) (ports.PublishResult, error) {
	status := "publish"
	if params.ScheduledAt != nil {
		status = "future"
	}

	result, err := p.client.CreatePost(ctx, CreatePostParams{
		Title:           params.Content.PostTitle,
		ContentHTML:     params.Content.PostBody,
		Slug:            params.Content.Slug,
		Status:          status,
		MetaTitle:       params.Content.MetaTitle,
		MetaDesc:        params.Content.MetaDesc,
		FeaturedMediaID: featuredMediaID,
		ScheduledAt:     params.ScheduledAt,
	})
	if err != nil {
		return ports.PublishResult{}, err
	}

	return ports.PublishResult{
		Link:             result.Link,
		FeaturedImageURL: result.FeaturedImageURL,
	}, nil
}

var _ ports.BlogPublisher = (*Publisher)(nil)

package application

import (
	"bytes"
	"context"

	contentDomain "github.com/afland/duende-publisher/internal/content/domain"
	"github.com/afland/duende-publisher/internal/content/ports"
	eventsDomain "github.com/afland/duende-publisher/internal/events/domain"
	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/logger"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Error definitions for generator operations
var (
	ErrQuotaExhausted = apperror.New(
		apperror.CodeQuotaExhausted,
		apperror.BusinessCodeTokenBudget,
		"daily token budget would be exceeded",
	)
)

// GeneratorService drives one content generation round-trip: prompt assembly,
// budget pre-check, backend call, decoding, validation and rich-text
// conversion. The returned PostBody is final sanitized HTML.
type GeneratorService struct {
	completer ports.Completer
	decoder   contentDomain.Decoder
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	logger    logger.Logger
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(
	completer ports.Completer,
	decoder contentDomain.Decoder,
	logger logger.Logger,
) *GeneratorService {
	return &GeneratorService{
		completer: completer,
		decoder:   decoder,
		markdown:  goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// Generate produces validated content for the event, charging the budget with
// the backend's reported usage. The budget is a value: callers receive the
// updated copy alongside the result.
//
// Error classes map onto the orchestrator's retry policy:
//   - quota-exhausted (budget pre-check) → stop the batch, event untouched
//   - transient (backend call failed)    → revert the event, retry later
//   - validation (bad schema, bad slug)  → terminal failure for the event
func (s *GeneratorService) Generate(
	ctx context.Context,
	event *eventsDomain.Event,
	budget contentDomain.TokenBudget,
) (contentDomain.GeneratedContent, contentDomain.TokenBudget, error) {
	prompt := buildPrompt(event, s.decoder.WantsJSON())

	estimate := contentDomain.EstimateTokens(prompt)
	if !budget.Allows(estimate) {
		s.logger.Warn(ctx, "token budget exhausted, skipping backend call",
			"event_id", event.ID,
			"estimate", estimate,
			"remaining", budget.Remaining(),
		)
		return contentDomain.GeneratedContent{}, budget, ErrQuotaExhausted
	}

	result, err := s.completer.Complete(ctx, ports.CompletionRequest{
		Prompt:    prompt,
		ForceJSON: s.decoder.WantsJSON(),
	})
	if err != nil {
		s.logger.Error(ctx, "content generation failed", "event_id", event.ID, "error", err)
		return contentDomain.GeneratedContent{}, budget, apperror.Wrap(err,
			apperror.CodeTransient,
			apperror.BusinessCodeGenerationFailed,
			"generative backend call failed",
		)
	}

	budget = budget.Charge(result.TokensUsed)
	s.logger.Debug(ctx, "backend usage charged",
		"event_id", event.ID,
		"tokens_used", result.TokensUsed,
		"budget_used", budget.Used,
	)

	content, err := s.decoder.Decode(result.Text)
	if err != nil {
		return contentDomain.GeneratedContent{}, budget, err
	}

	content = content.Normalize()
	if err := content.Validate(); err != nil {
		return contentDomain.GeneratedContent{}, budget, err
	}

	html, err := s.renderHTML(content.PostBody)
	if err != nil {
		return contentDomain.GeneratedContent{}, budget, apperror.Wrap(err,
			apperror.CodeValidationFailed,
			apperror.BusinessCodeIncompleteContent,
			"post body markdown could not be rendered",
		)
	}
	content.PostBody = html

	return content, budget, nil
}

// renderHTML converts the Markdown body to sanitized HTML. This happens
// exactly once, here, so the publisher always receives final rich text.
func (s *GeneratorService) renderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}

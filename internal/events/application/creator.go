package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	contentDomain "github.com/afland/duende-publisher/internal/content/domain"
	"github.com/afland/duende-publisher/internal/events/domain"
	"github.com/afland/duende-publisher/internal/events/ports"
	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/eventbus"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

// CreatorConfig bounds one batch run.
type CreatorConfig struct {
	BatchSize       int           // events per invocation; <= 0 claims until none remain
	LeadTimeDays    int           // events must start at least this many days out
	EventDelay      time.Duration // pause between events to respect backend rate limits
	DailyTokenLimit int
}

// BatchReport summarizes a completed run.
type BatchReport struct {
	Processed    int
	Failed       int
	Reverted     int
	QuotaStopped bool
	TokensUsed   int
}

// CreatorService drives the per-event state machine: claim, compose the
// header image, generate content, upload media, publish, commit the terminal
// status. One event at a time; throughput is bounded by the remote calls, not
// local compute.
type CreatorService struct {
	repo      ports.EventRepository
	composer  ports.ImageComposer
	generator ports.ContentGenerator
	publisher ports.BlogPublisher
	bus       *eventbus.Bus
	logger    logger.Logger
	cfg       CreatorConfig

	now func() time.Time
}

// NewCreatorService creates the batch orchestrator
func NewCreatorService(
	repo ports.EventRepository,
	composer ports.ImageComposer,
	generator ports.ContentGenerator,
	publisher ports.BlogPublisher,
	bus *eventbus.Bus,
	logger logger.Logger,
	cfg CreatorConfig,
) *CreatorService {
	return &CreatorService{
		repo:      repo,
		composer:  composer,
		generator: generator,
		publisher: publisher,
		bus:       bus,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// errStopBatch wraps conditions that end the whole run, not just one event.
var errStopBatch = errors.New("stop batch")

// RunBatch claims and processes eligible events until the batch size is
// reached, no eligible events remain, or the token budget runs out. On clean
// completion no event is left in processing: every claimed event ends the run
// as processed, failed, or reverted to pending.
func (s *CreatorService) RunBatch(ctx context.Context) (BatchReport, error) {
	report := BatchReport{}
	budget := contentDomain.NewTokenBudget(s.cfg.DailyTokenLimit)
	minDate := s.now().AddDate(0, 0, s.cfg.LeadTimeDays).Truncate(24 * time.Hour)

	s.logger.Info(ctx, "starting content creator batch",
		"batch_size", s.cfg.BatchSize, "min_date", minDate.Format("2006-01-02"))

	for i := 0; s.cfg.BatchSize <= 0 || i < s.cfg.BatchSize; i++ {
		event, err := s.repo.ClaimNextPending(ctx, minDate)
		if errors.Is(err, ports.ErrNoPendingEvents) {
			s.logger.Info(ctx, "no more eligible events")
			break
		}
		if err != nil {
			return report, fmt.Errorf("claiming next event: %w", err)
		}

		// The claim query already filters on these criteria; a claimed row
		// that fails them means the store drifted under us.
		if !event.Eligible(minDate) {
			s.logger.Error(ctx, "claimed event does not meet selection criteria, reverting",
				"event_id", event.ID, "image_url", event.ImageURL, "date", event.Date.Format("2006-01-02"))
			s.revert(ctx, event, &report)
			continue
		}

		if i > 0 && s.cfg.EventDelay > 0 {
			select {
			case <-time.After(s.cfg.EventDelay):
			case <-ctx.Done():
				// Revert the claim so a later run picks the event up again.
				s.revert(ctx, event, &report)
				return report, ctx.Err()
			}
		}

		s.logger.Info(ctx, "processing event", "event_id", event.ID, "name", event.Name)

		err = s.processEvent(ctx, event, &budget, &report)
		if errors.Is(err, errStopBatch) {
			report.QuotaStopped = true
			s.logger.Warn(ctx, "stopping batch", "reason", err)
			break
		}
		if err != nil {
			return report, err
		}
	}

	report.TokensUsed = budget.Used
	s.bus.Publish(ctx, eventbus.Notification{
		Topic: eventbus.TopicBatchCompleted,
		Payload: map[string]any{
			"processed":   report.Processed,
			"failed":      report.Failed,
			"reverted":    report.Reverted,
			"tokens_used": report.TokensUsed,
		},
	})
	s.logger.Info(ctx, "batch finished",
		"processed", report.Processed, "failed", report.Failed,
		"reverted", report.Reverted, "tokens_used", report.TokensUsed)

	return report, nil
}

// processEvent walks one claimed event through the pipeline. A nil return
// means the run continues with the next event, whatever this one's fate was.
func (s *CreatorService) processEvent(
	ctx context.Context,
	event *domain.Event,
	budget *contentDomain.TokenBudget,
	report *BatchReport,
) error {
	imagePath, err := s.composer.Compose(ctx, event)
	if err != nil {
		s.logger.Warn(ctx, "image creation failed, reverting event for retry",
			"event_id", event.ID, "error", err)
		s.revert(ctx, event, report)
		return nil
	}

	content, updatedBudget, err := s.generator.Generate(ctx, event, *budget)
	*budget = updatedBudget
	switch {
	case apperror.IsQuotaExhausted(err):
		// Not this event's fault: revert it and stop the whole run.
		s.revert(ctx, event, report)
		return fmt.Errorf("%w: %w", errStopBatch, err)
	case apperror.IsValidationFailure(err):
		s.logger.Error(ctx, "generated content failed validation, marking event failed",
			"event_id", event.ID, "error", err)
		s.fail(ctx, event, report)
		return nil
	case err != nil:
		s.logger.Warn(ctx, "content generation failed, reverting event for retry",
			"event_id", event.ID, "error", err)
		s.revert(ctx, event, report)
		return nil
	}

	mediaID, err := s.publisher.UploadMedia(ctx, imagePath, event.ImageAltText(), event.ImageTitle())
	if err != nil {
		s.logger.Warn(ctx, "media upload failed, reverting event for retry",
			"event_id", event.ID, "error", err)
		s.revert(ctx, event, report)
		return nil
	}

	result, err := s.publisher.Publish(ctx, ports.PublishParams{Content: content}, mediaID)
	if err != nil {
		// Content and media already succeeded; this must reach the operator
		// with the full response, and the event must never look processed.
		// The uploaded media is orphaned until someone intervenes.
		s.logger.Error(ctx, "post creation failed", "event_id", event.ID, "error", fmt.Sprintf("%+v", err))
		s.fail(ctx, event, report)
		return nil
	}

	if err := s.repo.MarkProcessed(ctx, event.ID, result.FeaturedImageURL); err != nil {
		return fmt.Errorf("marking event %s processed: %w", event.ID, err)
	}
	event.ContentStatus = domain.StatusProcessed
	report.Processed++

	s.bus.Publish(ctx, eventbus.Notification{
		Topic:   eventbus.TopicEventProcessed,
		EventID: event.ID.String(),
		Payload: map[string]any{"link": result.Link, "image_url": result.FeaturedImageURL},
	})
	s.logger.Info(ctx, "event published", "event_id", event.ID, "link", result.Link)

	return nil
}

func (s *CreatorService) revert(ctx context.Context, event *domain.Event, report *BatchReport) {
	if !event.ContentStatus.CanTransitionTo(domain.StatusPending) {
		s.logger.Error(ctx, "refusing invalid status transition",
			"event_id", event.ID, "from", event.ContentStatus, "to", domain.StatusPending)
		return
	}
	if err := s.repo.UpdateStatus(ctx, event.ID, domain.StatusPending); err != nil {
		s.logger.Error(ctx, "failed to revert event to pending", "event_id", event.ID, "error", err)
		return
	}
	event.ContentStatus = domain.StatusPending
	report.Reverted++
}

func (s *CreatorService) fail(ctx context.Context, event *domain.Event, report *BatchReport) {
	if !event.ContentStatus.CanTransitionTo(domain.StatusFailed) {
		s.logger.Error(ctx, "refusing invalid status transition",
			"event_id", event.ID, "from", event.ContentStatus, "to", domain.StatusFailed)
		return
	}
	if err := s.repo.UpdateStatus(ctx, event.ID, domain.StatusFailed); err != nil {
		s.logger.Error(ctx, "failed to mark event failed", "event_id", event.ID, "error", err)
		return
	}
	event.ContentStatus = domain.StatusFailed
	report.Failed++

	s.bus.Publish(ctx, eventbus.Notification{
		Topic:   eventbus.TopicEventFailed,
		EventID: event.ID.String(),
	})
}

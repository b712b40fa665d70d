package ports

import (
	"context"
	"errors"
	"time"

	"github.com/afland/duende-publisher/internal/events/domain"
	"github.com/google/uuid"
)

// ErrNoPendingEvents signals a clean end of the batch: nothing eligible left.
var ErrNoPendingEvents = errors.New("no pending events match the selection criteria")

// EventRepository is the document-store capability the pipeline needs.
type EventRepository interface {
	// ClaimNextPending atomically transitions the most eligible pending
	// event (verified first, then soonest date) to processing and returns
	// it. The claim is a single read-modify operation: two concurrent runs
	// can never hold the same event. Returns ErrNoPendingEvents when no
	// event is eligible.
	ClaimNextPending(ctx context.Context, minDate time.Time) (*domain.Event, error)

	// UpdateStatus sets the event's content status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContentStatus) error

	// MarkProcessed finalizes the event, persisting the resolved header
	// image URL when the platform reported one.
	MarkProcessed(ctx context.Context, id uuid.UUID, headerImageURL string) error
}

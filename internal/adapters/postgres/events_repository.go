package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afland/duende-publisher/internal/events/domain"
	"github.com/afland/duende-publisher/internal/events/ports"
	"github.com/afland/duende-publisher/internal/platform/postgres"
)

// EventRepository implements ports.EventRepository using PostgreSQL
type EventRepository struct {
	postgres.BaseRepository // Embed the base repository for common functionality
}

// NewEventRepository creates a new PostgreSQL events repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// claimQuery transitions exactly one eligible event to processing and returns
// it. The claim is a single statement: the subquery picks the most eligible
// pending row, SKIP LOCKED keeps two concurrent runs off the same row, and
// the UPDATE only fires while the row is still pending.
const claimQuery = `
UPDATE events SET content_status = 'processing', updated_at = now()
WHERE id = (
	SELECT id FROM events
	WHERE content_status = 'pending'
	  AND image_url IS NOT NULL AND image_url <> ''
	  AND date >= $1
	ORDER BY verified DESC, date ASC
	LIMIT 1
	FOR UPDATE SKIP LOCKED
)
RETURNING id, name, artist_name, artist_discipline, date, start_time, venue, city,
	description, affiliate_link, night_plan, image_url, header_image_url, verified, content_status`

// ClaimNextPending atomically claims the most eligible pending event
func (r *EventRepository) ClaimNextPending(ctx context.Context, minDate time.Time) (*domain.Event, error) {
	row := r.DB.QueryRow(ctx, claimQuery, pgtype.Date{Time: minDate, Valid: true})

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNoPendingEvents
	}
	if err != nil {
		return nil, fmt.Errorf("EventRepository.ClaimNextPending: %w", err)
	}

	return event, nil
}

// UpdateStatus sets the event's content status
func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContentStatus) error {
	query, args, err := r.SB.
		Update("events").
		Set("content_status", string(status)).
		Set("updated_at", pgtype.Timestamptz{Time: time.Now(), Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("EventRepository.UpdateStatus: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("EventRepository.UpdateStatus: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("EventRepository.UpdateStatus: event %s not found", id)
	}

	return nil
}

// MarkProcessed finalizes the event, persisting the resolved image URL
func (r *EventRepository) MarkProcessed(ctx context.Context, id uuid.UUID, headerImageURL string) error {
	builder := r.SB.
		Update("events").
		Set("content_status", string(domain.StatusProcessed)).
		Set("updated_at", pgtype.Timestamptz{Time: time.Now(), Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}})

	if headerImageURL != "" {
		builder = builder.Set("header_image_url", headerImageURL)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("EventRepository.MarkProcessed: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("EventRepository.MarkProcessed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("EventRepository.MarkProcessed: event %s not found", id)
	}

	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		id               pgtype.UUID
		name             string
		artistName       string
		artistDiscipline pgtype.Text
		date             pgtype.Date
		startTime        pgtype.Text
		venue            string
		city             string
		description      pgtype.Text
		affiliateLink    pgtype.Text
		nightPlan        pgtype.Text
		imageURL         pgtype.Text
		headerImageURL   pgtype.Text
		verified         bool
		contentStatus    string
	)

	err := row.Scan(&id, &name, &artistName, &artistDiscipline, &date, &startTime,
		&venue, &city, &description, &affiliateLink, &nightPlan, &imageURL,
		&headerImageURL, &verified, &contentStatus)
	if err != nil {
		return nil, err
	}

	status := domain.ContentStatus(contentStatus)
	if !status.IsValid() {
		return nil, fmt.Errorf("event %s has unknown content status %q", uuid.UUID(id.Bytes), contentStatus)
	}

	return &domain.Event{
		ID:             uuid.UUID(id.Bytes),
		Name:           name,
		Artist:         domain.Artist{Name: artistName, Discipline: artistDiscipline.String},
		Date:           date.Time,
		Time:           startTime.String,
		Venue:          venue,
		City:           city,
		Description:    description.String,
		AffiliateLink:  affiliateLink.String,
		NightPlan:      nightPlan.String,
		ImageURL:       imageURL.String,
		HeaderImageURL: headerImageURL.String,
		Verified:       verified,
		ContentStatus:  status,
	}, nil
}

var _ ports.EventRepository = (*EventRepository)(nil)

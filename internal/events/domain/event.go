package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Artist describes who performs at an event. Older store records carry a flat
// string, newer ones a structured {name, discipline} pair; both map onto this
// type with Discipline left empty for the flat form.
type Artist struct {
	Name       string
	Discipline string
}

// DisplayName returns the artist line used in prompts and image SEO fields
func (a Artist) DisplayName() string {
	if a.Discipline == "" {
		return a.Name
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Discipline)
}

// Event represents a single performance to be advertised on the blog
type Event struct {
	ID             uuid.UUID
	Name           string
	Artist         Artist
	Date           time.Time // calendar date of the performance
	Time           string    // free-form start time, e.g. "21:30"
	Venue          string
	City           string
	Description    string
	AffiliateLink  string // optional ticket/source URL
	NightPlan      string // optional free-text local guide used as grounding
	ImageURL       string // source image reference; eligibility requires non-empty
	HeaderImageURL string // resolved featured-image URL, written back on success
	Verified       bool
	ContentStatus  ContentStatus
}

// Eligible reports whether the event may be worked on: it must carry a
// source image and start no earlier than minDate. Status gating lives in the
// claim query; this re-checks the selection criteria on claimed rows so a
// drifted store record cannot slip into the pipeline.
func (e *Event) Eligible(minDate time.Time) bool {
	return e.ImageURL != "" && !e.Date.Before(minDate)
}

// ImageAltText returns the SEO alt text for the event's header image
func (e *Event) ImageAltText() string {
	return fmt.Sprintf("Cartel del evento de %s en %s, %s el %s",
		e.Artist.DisplayName(), e.Venue, e.City, FormatDateShort(e.Date))
}

// ImageTitle returns the SEO title for the event's header image
func (e *Event) ImageTitle() string {
	return fmt.Sprintf("%s en %s - %s", e.Artist.DisplayName(), e.City, e.Name)
}

package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/validator"
)

// SEO field limits enforced on generated content
const (
	MaxMetaTitleLength = 60
	MaxMetaDescLength  = 155
	MaxSlugLength      = 100
)

// GeneratedContent is the five-field schema every backend response must
// resolve to, whatever decoding strategy produced it. PostBody is Markdown
// when it comes out of a decoder and final HTML once the generator service
// has converted and sanitized it.
type GeneratedContent struct {
	Slug      string
	MetaTitle string
	MetaDesc  string
	PostTitle string
	PostBody  string
}

// Validation errors shared by both decoders
var (
	ErrIncompleteContent = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeIncompleteContent,
		"generated content is missing one or more required fields",
	)
	ErrInvalidSlug = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidSlug,
		"generated slug is not lowercase url-safe ascii",
	)
)

// Normalize trims whitespace-induced noise, canonicalizes the slug, and
// clips the SEO meta fields to their platform limits. These are quality
// problems, not a reason to fail the event terminally: meta overruns are
// clipped, and slug deviations (accents, spaces, uppercase) are folded into
// canonical form. The slug only fails validation when nothing slug-like
// survives the folding.
func (c GeneratedContent) Normalize() GeneratedContent {
	c.Slug = strings.TrimSpace(c.Slug)
	c.MetaTitle = strings.TrimSpace(c.MetaTitle)
	c.MetaDesc = strings.TrimSpace(c.MetaDesc)
	c.PostTitle = strings.TrimSpace(c.PostTitle)
	c.PostBody = strings.TrimSpace(c.PostBody)

	if c.Slug != "" {
		c.Slug = validator.GenerateSlug(c.Slug, MaxSlugLength)
	}
	c.MetaTitle = clipRunes(c.MetaTitle, MaxMetaTitleLength)
	c.MetaDesc = clipRunes(c.MetaDesc, MaxMetaDescLength)
	return c
}

// clipRunes truncates to max runes; clipping on a byte index could split a
// multibyte character and leave the field invalid UTF-8.
func clipRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// Validate checks the schema-completeness invariant: all five fields present
// and the slug in canonical form. A violation is terminal for the event.
func (c GeneratedContent) Validate() error {
	if c.Slug == "" || c.MetaTitle == "" || c.MetaDesc == "" || c.PostTitle == "" || c.PostBody == "" {
		return ErrIncompleteContent
	}

	if err := validator.ValidateSlugFormat(c.Slug, MaxSlugLength); err != nil {
		return apperror.Wrap(err,
			apperror.CodeValidationFailed,
			apperror.BusinessCodeInvalidSlug,
			"generated slug is not lowercase url-safe ascii",
		)
	}

	return nil
}

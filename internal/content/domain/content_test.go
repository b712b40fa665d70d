package domain_test

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/afland/duende-publisher/internal/content/domain"
	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContent() domain.GeneratedContent {
	return domain.GeneratedContent{
		Slug:      "noche-flamenca-sevilla-junio",
		MetaTitle: "Noche Flamenca en Sevilla: Camarón Jr. en directo",
		MetaDesc:  "Camarón Jr. llega al Teatro Lope de Vega de Sevilla. Entradas, horarios y todo lo que necesitas saber.",
		PostTitle: "Concierto en Sevilla: Noche Flamenca con Camarón Jr.",
		PostBody:  "La magia del flamenco vuelve a Sevilla...",
	}
}

func TestGeneratedContent_Validate(t *testing.T) {
	require.NoError(t, validContent().Validate())
}

func TestGeneratedContent_Validate_MissingFields(t *testing.T) {
	clear := []struct {
		name  string
		apply func(*domain.GeneratedContent)
	}{
		{"slug", func(c *domain.GeneratedContent) { c.Slug = "" }},
		{"meta title", func(c *domain.GeneratedContent) { c.MetaTitle = "" }},
		{"meta desc", func(c *domain.GeneratedContent) { c.MetaDesc = "" }},
		{"post title", func(c *domain.GeneratedContent) { c.PostTitle = "" }},
		{"post body", func(c *domain.GeneratedContent) { c.PostBody = "" }},
	}

	for _, tt := range clear {
		t.Run("missing "+tt.name, func(t *testing.T) {
			c := validContent()
			tt.apply(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.True(t, apperror.IsValidationFailure(err))
		})
	}
}

func TestGeneratedContent_Validate_SlugFormat(t *testing.T) {
	slugPattern := regexp.MustCompile(`^[a-z0-9-]+$`)

	c := validContent()
	assert.Regexp(t, slugPattern, c.Slug)

	for _, bad := range []string{"Noche-Flamenca", "noche flamenca", "camarón-jr", "noche_flamenca"} {
		c := validContent()
		c.Slug = bad

		err := c.Validate()
		require.Error(t, err, "slug %q should be rejected", bad)
		assert.True(t, apperror.IsValidationFailure(err))
	}
}

func TestGeneratedContent_Normalize_ClipsMetaFields(t *testing.T) {
	c := validContent()
	c.MetaTitle = strings.Repeat("a", 80)
	c.MetaDesc = strings.Repeat("b", 200)

	n := c.Normalize()

	assert.Len(t, n.MetaTitle, domain.MaxMetaTitleLength)
	assert.Len(t, n.MetaDesc, domain.MaxMetaDescLength)
	// Fields within limits are untouched.
	assert.Equal(t, c.PostTitle, n.PostTitle)
}

func TestGeneratedContent_Normalize_ClipsByRunesNotBytes(t *testing.T) {
	// A multibyte character straddling the limit must survive whole, not be
	// cut in half into an orphan byte.
	c := validContent()
	c.MetaTitle = strings.Repeat("a", domain.MaxMetaTitleLength-1) + "ón"
	c.MetaDesc = strings.Repeat("b", domain.MaxMetaDescLength-1) + "ñu"

	n := c.Normalize()

	assert.True(t, utf8.ValidString(n.MetaTitle))
	assert.True(t, utf8.ValidString(n.MetaDesc))
	assert.Equal(t, domain.MaxMetaTitleLength, utf8.RuneCountInString(n.MetaTitle))
	assert.Equal(t, domain.MaxMetaDescLength, utf8.RuneCountInString(n.MetaDesc))
	assert.True(t, strings.HasSuffix(n.MetaTitle, "ó"))
	assert.True(t, strings.HasSuffix(n.MetaDesc, "ñ"))
}

func TestGeneratedContent_Normalize_CanonicalizesSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"camarón-jr-en-sevilla", "camaron-jr-en-sevilla"},
		{"Noche Flamenca en Madrid", "noche-flamenca-en-madrid"},
		{" noche-flamenca ", "noche-flamenca"},
		{"noche-flamenca", "noche-flamenca"},
	}

	for _, tt := range tests {
		c := validContent()
		c.Slug = tt.in

		n := c.Normalize()
		assert.Equal(t, tt.want, n.Slug)
		assert.NoError(t, n.Validate())
	}
}

package imaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedWidth measures every rune at 10 units, which keeps the arithmetic in
// the assertions obvious.
func fixedWidth(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestFitText_FitsVerbatim(t *testing.T) {
	got := fitText(fixedWidth, "NOCHE FLAMENCA", 200)
	assert.Equal(t, "NOCHE FLAMENCA", got)

	// Exactly at the bound still fits.
	got = fitText(fixedWidth, "NOCHE FLAMENCA", fixedWidth("NOCHE FLAMENCA"))
	assert.Equal(t, "NOCHE FLAMENCA", got)
}

func TestFitText_TruncatesWithEllipsis(t *testing.T) {
	title := "GRAN GALA FLAMENCA DE ANDALUCIA EN EL TEATRO REAL"
	maxWidth := 200.0

	got := fitText(fixedWidth, title, maxWidth)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, fixedWidth(got), maxWidth)
	// The truncation keeps as much of the title as the bound allows.
	assert.Equal(t, "GRAN GALA FLAMENC...", got)
}

func TestFitText_BoundHolds(t *testing.T) {
	titles := []string{
		"A",
		"NOCHE FLAMENCA",
		"UNA NOCHE INTERMINABLE DE CANTE JONDO Y BAILE EN SEVILLA",
		strings.Repeat("FLAMENCO ", 50),
	}
	widths := []float64{40, 100, 250, 1000}

	for _, title := range titles {
		for _, w := range widths {
			got := fitText(fixedWidth, title, w)
			if fixedWidth(ellipsis) <= w {
				assert.LessOrEqual(t, fixedWidth(got), w, "title %q width %v", title, w)
			}
			if fixedWidth(title) <= w {
				assert.Equal(t, title, got, "titles that fit are rendered verbatim")
			}
		}
	}
}

func TestFitText_NothingFits(t *testing.T) {
	// Even the ellipsis overflows; the function still terminates and returns it.
	got := fitText(fixedWidth, "NOCHE", 5)
	assert.Equal(t, "...", got)
}

func TestFitText_MultibyteRunes(t *testing.T) {
	got := fitText(fixedWidth, "CAMARÓN ÁÉÍÓÚ ÑÑÑÑÑÑÑÑ", 100)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, fixedWidth(got), 100.0)
	// Truncation happens at rune boundaries, never mid-encoding.
	assert.True(t, strings.HasPrefix("CAMARÓN ÁÉÍÓÚ ÑÑÑÑÑÑÑÑ", strings.TrimSuffix(got, "...")))
}

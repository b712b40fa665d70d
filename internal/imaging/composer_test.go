package imaging_test

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/afland/duende-publisher/internal/events/domain"
	"github.com/afland/duende-publisher/internal/imaging"
	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *domain.Event {
	return &domain.Event{
		ID:    uuid.New(),
		Name:  "Noche Flamenca",
		Date:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Venue: "Teatro Lope de Vega",
		City:  "Sevilla",
	}
}

func TestCompose_MissingTemplatesDirIsSoftFailure(t *testing.T) {
	composer := imaging.NewComposer(
		filepath.Join(t.TempDir(), "does-not-exist"),
		t.TempDir(),
		"testdata/font.ttf",
		logger.NewBootstrapLogger(),
	)

	path, err := composer.Compose(context.Background(), testEvent())

	require.Error(t, err)
	assert.Empty(t, path)
	assert.True(t, apperror.IsRetryable(err), "compositor failures must be retryable, never fatal")
}

func TestCompose_EmptyTemplatesDirIsSoftFailure(t *testing.T) {
	composer := imaging.NewComposer(t.TempDir(), t.TempDir(), "testdata/font.ttf", logger.NewBootstrapLogger())

	_, err := composer.Compose(context.Background(), testEvent())

	require.Error(t, err)
	assert.True(t, apperror.IsRetryable(err))
}

func TestCompose_MissingFontIsSoftFailure(t *testing.T) {
	templatesDir := t.TempDir()
	writeTemplate(t, filepath.Join(templatesDir, "template-1.png"))

	composer := imaging.NewComposer(
		templatesDir,
		t.TempDir(),
		filepath.Join(templatesDir, "missing-font.ttf"),
		logger.NewBootstrapLogger(),
	)

	path, err := composer.Compose(context.Background(), testEvent())

	require.Error(t, err)
	assert.Empty(t, path)
	assert.True(t, apperror.IsRetryable(err))
}

// writeTemplate writes a small blank PNG standing in for a real background.
func writeTemplate(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1200, 630))))
}

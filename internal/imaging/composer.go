package imaging

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/afland/duende-publisher/internal/events/domain"
	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/logger"
	"github.com/fogleman/gg"
)

// Canvas layout. The accent bar is part of every background template; text is
// centered in the region to its right.
const (
	accentBarWidth       = 290.0
	horizontalPadding    = 100.0
	titleVerticalOffset  = -30.0
	captionPaddingBottom = 120.0
	titleFontSize        = 60.0
	captionFontSize      = 40.0
	backdropColor        = "#2c2c2c"
)

// Composer renders header images for events: a randomly chosen background
// template with the event title and a date/venue caption drawn on top.
type Composer struct {
	templatesDir string
	outputDir    string
	fontPath     string
	logger       logger.Logger
}

// NewComposer creates a new header-image composer
func NewComposer(templatesDir, outputDir, fontPath string, logger logger.Logger) *Composer {
	return &Composer{
		templatesDir: templatesDir,
		outputDir:    outputDir,
		fontPath:     fontPath,
		logger:       logger,
	}
}

// Compose renders the header image for the event and returns the output file
// path. Every failure comes back as a retryable error; callers decide whether
// to revert the event for a later run. Rendering never panics past this
// component.
func (c *Composer) Compose(ctx context.Context, event *domain.Event) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "image rendering panicked", "event_id", event.ID, "panic", r)
			path = ""
			err = apperror.New(
				apperror.CodeTransient,
				apperror.BusinessCodeImageRenderFailed,
				fmt.Sprintf("image rendering panicked: %v", r),
			)
		}
	}()

	templatePath, err := c.pickTemplate()
	if err != nil {
		return "", c.renderError(ctx, event, "selecting background template", err)
	}

	background, err := gg.LoadImage(templatePath)
	if err != nil {
		return "", c.renderError(ctx, event, "loading background template", err)
	}

	bounds := background.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())

	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetHexColor(backdropColor)
	dc.Clear()
	dc.DrawImage(background, 0, 0)

	centerX := accentBarWidth + (width-accentBarWidth)/2
	maxTitleWidth := width - accentBarWidth - horizontalPadding*2

	if err := dc.LoadFontFace(c.fontPath, titleFontSize); err != nil {
		return "", c.renderError(ctx, event, "loading title font", err)
	}
	dc.SetRGB(1, 1, 1)

	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
	title := fitText(measure, strings.ToUpper(event.Name), maxTitleWidth)
	dc.DrawStringAnchored(title, centerX, height/2+titleVerticalOffset, 0.5, 0.5)

	if err := dc.LoadFontFace(c.fontPath, captionFontSize); err != nil {
		return "", c.renderError(ctx, event, "loading caption font", err)
	}
	caption := fmt.Sprintf("%s | %s, %s", domain.FormatDateMedium(event.Date), event.Venue, event.City)
	dc.DrawStringAnchored(caption, centerX, height-captionPaddingBottom, 0.5, 0.5)

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", c.renderError(ctx, event, "creating output directory", err)
	}

	outputPath := filepath.Join(c.outputDir, fmt.Sprintf("header-%s.png", event.ID))
	if err := dc.SavePNG(outputPath); err != nil {
		return "", c.renderError(ctx, event, "writing output image", err)
	}

	c.logger.Info(ctx, "header image created", "event_id", event.ID, "path", outputPath, "template", filepath.Base(templatePath))
	return outputPath, nil
}

// pickTemplate selects one PNG uniformly at random from the templates dir
func (c *Composer) pickTemplate() (string, error) {
	entries, err := os.ReadDir(c.templatesDir)
	if err != nil {
		return "", err
	}

	var templates []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".png") {
			templates = append(templates, entry.Name())
		}
	}
	if len(templates) == 0 {
		return "", fmt.Errorf("no png templates in %s", c.templatesDir)
	}

	return filepath.Join(c.templatesDir, templates[rand.IntN(len(templates))]), nil
}

func (c *Composer) renderError(ctx context.Context, event *domain.Event, stage string, err error) error {
	c.logger.Error(ctx, "header image creation failed", "event_id", event.ID, "stage", stage, "error", err)
	return apperror.Wrap(err,
		apperror.CodeTransient,
		apperror.BusinessCodeImageRenderFailed,
		"header image creation failed while "+stage,
	)
}

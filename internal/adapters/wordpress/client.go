package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

const userAgent = "duende-publisher/1.0"

// Auth schemes the blog platform accepts. Hosted installs want an
// application password over basic auth; some setups front the API with a
// bearer token instead. Both are configuration, not protocol.
const (
	AuthSchemeBasic  = "basic"
	AuthSchemeBearer = "bearer"
)

// Config holds the values needed to construct a Client
type Config struct {
	BaseURL     string // e.g. https://afland.es/wp-json/wp/v2
	AuthScheme  string // basic | bearer
	Username    string // basic auth user
	AppPassword string // basic auth application password
	BearerToken string // bearer auth token
	CategoryID  int    // category assigned to every created post, 0 to skip
	Timeout     time.Duration
}

// Client publishes media and posts to a WordPress-compatible blog.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a new blog platform client
func NewClient(cfg Config, logger logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// UploadMedia sends the local file as a multipart upload with its SEO
// alt-text and title, returning the created media id.
//
// Every failure here is soft: a missed upload is retried on a later run, so
// the error is always classified transient. This is deliberately asymmetric
// with CreatePost.
func (c *Client) UploadMedia(ctx context.Context, filePath, altText, titleText string) (int64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, c.uploadError(ctx, "opening image file", err, "")
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return 0, c.uploadError(ctx, "building multipart body", err, "")
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, c.uploadError(ctx, "reading image file", err, "")
	}
	if altText != "" {
		_ = writer.WriteField("alt_text", altText)
	}
	if titleText != "" {
		_ = writer.WriteField("title", titleText)
	}
	if err := writer.Close(); err != nil {
		return 0, c.uploadError(ctx, "finalizing multipart body", err, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/media", &body)
	if err != nil {
		return 0, c.uploadError(ctx, "building request", err, "")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.uploadError(ctx, "sending request", err, "")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return 0, c.uploadError(ctx, "uploading media",
			fmt.Errorf("unexpected status %d", resp.StatusCode), string(respBody))
	}

	var media struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(respBody, &media); err != nil || media.ID == 0 {
		return 0, c.uploadError(ctx, "decoding media response", err, string(respBody))
	}

	c.logger.Info(ctx, "media uploaded", "media_id", media.ID, "file", filepath.Base(filePath))
	return media.ID, nil
}

// CreatePostParams contains the payload for a new post
type CreatePostParams struct {
	Title           string
	ContentHTML     string
	Slug            string
	Status          string // publish | future | draft
	MetaTitle       string
	MetaDesc        string
	FeaturedMediaID int64
	ScheduledAt     *time.Time // required when Status is "future"
}

// PostResult describes the created post
type PostResult struct {
	Link             string
	FeaturedImageURL string // resolved from the embedded media expansion; may be empty
}

type postPayload struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Slug          string   `json:"slug"`
	Status        string   `json:"status"`
	DateGMT       string   `json:"date_gmt,omitempty"`
	FeaturedMedia int64    `json:"featured_media,omitempty"`
	Categories    []int    `json:"categories,omitempty"`
	Meta          postMeta `json:"meta"`
}

type postMeta struct {
	SEOTitle string `json:"_aioseo_title"`
	SEODesc  string `json:"_aioseo_description"`
}

type postResponse struct {
	Link     string `json:"link"`
	Embedded struct {
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

// CreatePost creates (or schedules) a post referencing already-uploaded
// media. Unlike UploadMedia, transport and status failures here are fatal:
// content and media already succeeded, and the operator must see a publish
// failure rather than have it retried blindly.
func (c *Client) CreatePost(ctx context.Context, params CreatePostParams) (PostResult, error) {
	payload := postPayload{
		Title:         params.Title,
		Content:       params.ContentHTML,
		Slug:          params.Slug,
		Status:        params.Status,
		FeaturedMedia: params.FeaturedMediaID,
		Meta:          postMeta{SEOTitle: params.MetaTitle, SEODesc: params.MetaDesc},
	}
	if c.cfg.CategoryID > 0 {
		payload.Categories = []int{c.cfg.CategoryID}
	}
	if params.Status == "future" && params.ScheduledAt != nil {
		payload.DateGMT = params.ScheduledAt.UTC().Format("2006-01-02T15:04:05")
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return PostResult{}, c.publishError(ctx, "encoding post payload", err, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/posts?_embed", bytes.NewReader(encoded))
	if err != nil {
		return PostResult{}, c.publishError(ctx, "building request", err, "")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PostResult{}, c.publishError(ctx, "sending request", err, "")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return PostResult{}, c.publishError(ctx, "creating post",
			fmt.Errorf("unexpected status %d", resp.StatusCode), string(respBody))
	}

	var parsed postResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return PostResult{}, c.publishError(ctx, "decoding post response", err, string(respBody))
	}

	result := PostResult{Link: parsed.Link}
	if len(parsed.Embedded.FeaturedMedia) > 0 {
		result.FeaturedImageURL = parsed.Embedded.FeaturedMedia[0].SourceURL
	} else {
		// The post itself succeeded; a missing expansion only costs us the
		// resolved image URL.
		c.logger.Warn(ctx, "post created but featured media expansion missing", "link", parsed.Link)
	}

	c.logger.Info(ctx, "post created", "link", result.Link, "slug", params.Slug)
	return result, nil
}

func (c *Client) setAuth(req *http.Request) {
	switch c.cfg.AuthScheme {
	case AuthSchemeBearer:
		req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	default:
		creds := base64.StdEncoding.EncodeToString([]byte(c.cfg.Username + ":" + c.cfg.AppPassword))
		req.Header.Set("Authorization", "Basic "+creds)
	}
}

func (c *Client) uploadError(ctx context.Context, stage string, err error, body string) error {
	c.logger.Error(ctx, "media upload failed", "stage", stage, "error", err, "body", body)
	appErr := apperror.Wrap(err,
		apperror.CodeTransient,
		apperror.BusinessCodeMediaUploadFailed,
		"media upload failed while "+stage,
	)
	if body != "" {
		appErr = appErr.WithDetails(body)
	}
	return appErr
}

func (c *Client) publishError(ctx context.Context, stage string, err error, body string) error {
	c.logger.Error(ctx, "post creation failed", "stage", stage, "error", err, "body", body)
	appErr := apperror.Wrap(err,
		apperror.CodeFatal,
		apperror.BusinessCodePublishFailed,
		"post creation failed while "+stage,
	)
	if body != "" {
		appErr = appErr.WithDetails(body)
	}
	return appErr
}

package wordpress_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/afland/duende-publisher/internal/adapters/wordpress"
	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/afland/duende-publisher/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, serverURL string, mutate func(*wordpress.Config)) *wordpress.Client {
	t.Helper()

	cfg := wordpress.Config{
		BaseURL:     serverURL,
		AuthScheme:  wordpress.AuthSchemeBasic,
		Username:    "duende",
		AppPassword: "app-password",
		Timeout:     5 * time.Second,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return wordpress.NewClient(cfg, logger.NewBootstrapLogger())
}

func writeImageFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "header-test.png")
	require.NoError(t, os.WriteFile(path, []byte("fake png bytes"), 0o644))
	return path
}

func TestUploadMedia_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media", r.URL.Path)
		// duende:app-password base64-encoded
		assert.Equal(t, "Basic ZHVlbmRlOmFwcC1wYXNzd29yZA==", r.Header.Get("Authorization"))
		assert.Equal(t, "duende-publisher/1.0", r.Header.Get("User-Agent"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Cartel del evento", r.FormValue("alt_text"))
		assert.Equal(t, "Camarón Jr. en Sevilla", r.FormValue("title"))

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)

	mediaID, err := client.UploadMedia(context.Background(), writeImageFile(t), "Cartel del evento", "Camarón Jr. en Sevilla")
	require.NoError(t, err)
	assert.Equal(t, int64(42), mediaID)
}

func TestUploadMedia_Non201IsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"rest_upload_unknown_error"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)

	_, err := client.UploadMedia(context.Background(), writeImageFile(t), "", "")
	require.Error(t, err)
	assert.True(t, apperror.IsRetryable(err), "upload failures must stay retryable")
}

func TestUploadMedia_MissingFileIsRetryable(t *testing.T) {
	client := newClient(t, "http://unreachable.invalid", nil)

	_, err := client.UploadMedia(context.Background(), "/does/not/exist.png", "", "")
	require.Error(t, err)
	assert.True(t, apperror.IsRetryable(err))
}

func TestCreatePost_Success(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.True(t, r.URL.Query().Has("_embed"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"link": "https://afland.es/noche-flamenca-sevilla/",
			"_embedded": {"wp:featuredmedia": [{"source_url": "https://afland.es/wp-content/uploads/header.png"}]}
		}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, func(cfg *wordpress.Config) { cfg.CategoryID = 7 })

	result, err := client.CreatePost(context.Background(), wordpress.CreatePostParams{
		Title:           "Concierto en Sevilla: Noche Flamenca",
		ContentHTML:     "<p>La magia del flamenco.</p>",
		Slug:            "noche-flamenca-sevilla",
		Status:          "publish",
		MetaTitle:       "Noche Flamenca en Sevilla",
		MetaDesc:        "Todo sobre el concierto.",
		FeaturedMediaID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://afland.es/noche-flamenca-sevilla/", result.Link)
	assert.Equal(t, "https://afland.es/wp-content/uploads/header.png", result.FeaturedImageURL)

	assert.Equal(t, "noche-flamenca-sevilla", gotPayload["slug"])
	assert.Equal(t, float64(42), gotPayload["featured_media"])
	assert.Equal(t, []any{float64(7)}, gotPayload["categories"])
	meta := gotPayload["meta"].(map[string]any)
	assert.Equal(t, "Noche Flamenca en Sevilla", meta["_aioseo_title"])
	assert.Equal(t, "Todo sobre el concierto.", meta["_aioseo_description"])
	assert.NotContains(t, gotPayload, "date_gmt")
}

func TestCreatePost_ScheduledSendsDateGMT(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "2025-06-01T08:30:00", payload["date_gmt"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"link": "https://afland.es/x/"}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)

	at := time.Date(2025, 6, 1, 10, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	_, err := client.CreatePost(context.Background(), wordpress.CreatePostParams{
		Title:       "x",
		ContentHTML: "<p>x</p>",
		Slug:        "x",
		Status:      "future",
		ScheduledAt: &at,
	})
	require.NoError(t, err)
}

func TestCreatePost_MissingEmbedIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"link": "https://afland.es/x/"}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)

	result, err := client.CreatePost(context.Background(), wordpress.CreatePostParams{
		Title: "x", ContentHTML: "<p>x</p>", Slug: "x", Status: "publish",
	})
	require.NoError(t, err)
	assert.Empty(t, result.FeaturedImageURL)
}

func TestCreatePost_FailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"rest_cannot_create"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)

	_, err := client.CreatePost(context.Background(), wordpress.CreatePostParams{
		Title: "x", ContentHTML: "<p>x</p>", Slug: "x", Status: "publish",
	})
	require.Error(t, err)

	assert.False(t, apperror.IsRetryable(err), "publish failures must not be silently retried")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeFatal, appErr.Code)
	assert.Contains(t, appErr.Details, "rest_cannot_create")
}

func TestBearerAuthScheme(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"link": "https://afland.es/x/"}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, func(cfg *wordpress.Config) {
		cfg.AuthScheme = wordpress.AuthSchemeBearer
		cfg.BearerToken = "secret-token"
	})

	_, err := client.CreatePost(context.Background(), wordpress.CreatePostParams{
		Title: "x", ContentHTML: "<p>x</p>", Slug: "x", Status: "publish",
	})
	require.NoError(t, err)
}

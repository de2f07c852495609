package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PlaceCreated(t *testing.T) {
	html, err := Render(TemplatePlaceCreated, PlaceCreatedData{
		ID:          7,
		Name:        "Test Place",
		Description: "A quiet square with a fountain",
		Latitude:    40.7128,
		Longitude:   -74.006,
		CreatedAt:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	for _, want := range []string{"Test Place", "#7", "A quiet square with a fountain", "40.7128", "-74.006", "2026-01-01 12:00:00"} {
		assert.Contains(t, html, want)
	}
}

func TestRender_EscapesHTML(t *testing.T) {
	html, err := Render(TemplatePlaceCreated, PlaceCreatedData{Name: "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendPlaceCreatedEmail(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	rc := resend.NewCustomClient(srv.Client(), "re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	rc.BaseURL = base

	logger := zerolog.Nop()
	client := newClient(rc, "places@example.com", &logger)

	err = client.SendPlaceCreatedEmail(context.Background(), "ops@example.com", PlaceCreatedData{
		ID:          7,
		Name:        "Test Place",
		Description: "Fountain",
		Latitude:    40.7128,
		Longitude:   -74.006,
		CreatedAt:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "Places <places@example.com>", got["from"])
	assert.Equal(t, []any{"ops@example.com"}, got["to"])
	assert.Equal(t, "New place: Test Place", got["subject"])
	assert.Contains(t, got["html"], "Fountain")
}

func TestSendEmail_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from"}`))
	}))
	defer srv.Close()

	rc := resend.NewCustomClient(srv.Client(), "re_test")
	rc.BaseURL, _ = url.Parse(srv.URL + "/")

	logger := zerolog.Nop()
	client := newClient(rc, "places@example.com", &logger)

	assert.Error(t, client.SendPlaceCreatedEmail(context.Background(), "ops@example.com", PlaceCreatedData{Name: "x"}))
}

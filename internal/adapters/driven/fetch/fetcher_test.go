package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><title>Benefits</title><body>Dental</body></html>"))
	}))
	defer server.Close()

	f := New(Config{UserAgent: "test-agent"})
	upload, err := f.Fetch(context.Background(), server.URL+"/benefits")
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/benefits", upload.Name)
	assert.Equal(t, "text/html", upload.MIMEType)
	assert.Contains(t, string(upload.Content), "<title>Benefits</title>")
}

func TestFetcher_Fetch_DefaultsToHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("plain"))
	}))
	defer server.Close()

	upload, err := New(Config{}).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "text/html", upload.MIMEType)
}

func TestFetcher_Fetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(Config{}).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_Fetch_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer server.Close()

	_, err := New(Config{MaxBytes: 1024}).Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetcher_Fetch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := New(Config{RequestsPerSecond: 0.001, Burst: 1})
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestFetcher_Fetch_BadURL(t *testing.T) {
	_, err := New(Config{}).Fetch(context.Background(), "http://bad host/")
	assert.Error(t, err)
}

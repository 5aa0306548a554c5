// Package fetch downloads web pages for link intake.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.LinkFetcher = (*Fetcher)(nil)

// Config holds fetcher settings.
type Config struct {
	// Timeout bounds each request. Defaults to 15s.
	Timeout time.Duration

	// MaxBytes caps the downloaded body. Defaults to 5 MiB.
	MaxBytes int64

	// RequestsPerSecond and Burst shape outgoing requests.
	// Defaults to 1 request per second with a burst of 3.
	RequestsPerSecond float64
	Burst             int

	// UserAgent is sent with every request.
	UserAgent string
}

// Fetcher implements driven.LinkFetcher over HTTP.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	maxBytes  int64
	userAgent string
}

// New creates a fetcher, applying defaults for zero config fields.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 << 20
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 3
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "onboard-link-intake/1.0"
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch downloads url. The upload is named after the URL; normalisers may
// replace the name with the page title.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.Upload, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html, text/plain, text/markdown;q=0.9, */*;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: page larger than %s", domain.ErrInvalidInput, domain.FormatSize(f.maxBytes))
	}

	mimeType := "text/html"
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mimeType = mt
		}
	}

	logger.Debug("Fetched %s (%s, %s) in %v", url, mimeType, domain.FormatSize(int64(len(body))), time.Since(start))
	return &domain.Upload{
		Name:     url,
		MIMEType: mimeType,
		Content:  body,
	}, nil
}

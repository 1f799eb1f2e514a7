package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

// Fetcher returns the markup at url, decoded to UTF-8.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type FetcherConfig struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration // zero keeps the client default
}

// HTTPFetcher issues one GET per call. It never retries.
type HTTPFetcher struct {
	client *resty.Client
	logger *zap.Logger
}

func NewHTTPFetcher(cfg FetcherConfig, logger *zap.Logger) *HTTPFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New()
	client.SetRetryCount(0)
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.AcceptLanguage != "" {
		client.SetHeader("Accept-Language", cfg.AcceptLanguage)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &HTTPFetcher{
		client: client,
		logger: logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		Get(url)
	if err != nil {
		return "", errors.NewFetchError(url, 0, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", errors.NewFetchError(url, resp.StatusCode(), nil)
	}

	markup, err := decodeBody(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", errors.NewFetchError(url, resp.StatusCode(), fmt.Errorf("decode body: %w", err))
	}

	f.logger.Debug("Fetched page",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(markup)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return markup, nil
}

// decodeBody converts the body to UTF-8 using the Content-Type header and,
// failing that, the document's own charset declaration.
func decodeBody(body []byte, contentType string) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

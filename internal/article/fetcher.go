package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"stocksnip/internal/domain"
	"strings"
	"time"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	DefaultFetchTimeout      = 3 * time.Second
	DefaultFetchMaxBodyBytes = 5 << 20
)

// Fetcher downloads article pages with a browser-like User-Agent.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	log          *slog.Logger
}

// NewFetcher builds a fetcher. Non-positive limits fall back to the defaults.
func NewFetcher(
	client *http.Client,
	timeout time.Duration,
	maxBodyBytes int64,
	log *slog.Logger,
) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultFetchMaxBodyBytes
	}

	return &Fetcher{
		client:       client,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// Fetch downloads the page at rawURL. Headers and body share one deadline;
// exceeding it yields domain.ErrFetchTimeout, any other transport failure
// domain.ErrNetwork.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.RawDocument, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return domain.RawDocument{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req) //nolint:gosec // URL is validated above
	if err != nil {
		return domain.RawDocument{}, classifyFetchErr(ctx, "do request", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", pageURL.String(),
				"operation", "Fetch")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.RawDocument{}, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return domain.RawDocument{}, classifyFetchErr(ctx, "read body", err)
	}

	if int64(len(body)) > f.maxBodyBytes {
		return domain.RawDocument{}, fmt.Errorf("read body: exceeds %d bytes", f.maxBodyBytes)
	}

	return domain.RawDocument{
		URL:         pageURL.String(),
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: strings.TrimSpace(resp.Header.Get("Content-Type")),
	}, nil
}

func classifyFetchErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrFetchTimeout, err))
	}

	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrNetwork, err))
}

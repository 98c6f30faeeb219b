// Package fetch resolves and downloads the static feed archive from
// an open-data portal. The portal publishes a dataset metadata
// document listing resources in various formats; the archive is the
// first resource declared as a zip.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout    = 60 * time.Second
	DefaultMaxSize    = 200 << 20 // 200 MB
	DefaultMaxRetries = 3
)

var ErrNoArchiveResource = errors.New("no zip resource in dataset metadata")

// A non-2xx response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d", e.code)
}

// Retrying a client error won't change the answer; server errors and
// transport failures might clear up.
func (e *statusError) permanent() bool {
	return e.code >= 400 && e.code < 500
}

type Resource struct {
	Format string `json:"format"`
	URL    string `json:"url"`
}

type Dataset struct {
	Resources []Resource `json:"resources"`
}

// Acquirer downloads the current feed archive. Both HTTP requests
// (metadata, then archive) are retried with exponential backoff
// before the refresh attempt is given up on.
type Acquirer struct {
	MetadataURL string
	Client      *http.Client
	MaxSize     int
	MaxRetries  uint64

	logger *slog.Logger
}

func NewAcquirer(metadataURL string, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{
		MetadataURL: metadataURL,
		Client:      &http.Client{Timeout: DefaultTimeout},
		MaxSize:     DefaultMaxSize,
		MaxRetries:  DefaultMaxRetries,
		logger:      logger,
	}
}

// Archive resolves the archive's current download URL via the
// metadata endpoint and retrieves the compressed archive as bytes.
func (a *Acquirer) Archive(ctx context.Context) ([]byte, error) {
	body, err := a.get(ctx, a.MetadataURL)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset metadata: %w", err)
	}

	var dataset Dataset
	if err := json.Unmarshal(body, &dataset); err != nil {
		return nil, fmt.Errorf("decoding dataset metadata: %w", err)
	}

	archiveURL := ""
	for _, r := range dataset.Resources {
		if strings.EqualFold(r.Format, "zip") && r.URL != "" {
			archiveURL = r.URL
			break
		}
	}
	if archiveURL == "" {
		return nil, ErrNoArchiveResource
	}

	buf, err := a.get(ctx, archiveURL)
	if err != nil {
		return nil, fmt.Errorf("fetching archive: %w", err)
	}

	return buf, nil
}

func (a *Acquirer) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		b, err := HTTPGet(ctx, a.Client, url, a.MaxSize)
		if err != nil {
			a.logger.Warn("request failed", "url", url, "error", err)
			var se *statusError
			if errors.As(err, &se) && se.permanent() {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), a.MaxRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	return body, nil
}

// HTTPGet performs a single GET, bounding the response size.
func HTTPGet(ctx context.Context, client *http.Client, url string, maxSize int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	var reader io.Reader = resp.Body
	if maxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(maxSize))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return body, nil
}

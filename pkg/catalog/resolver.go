// pkg/catalog/resolver.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// ErrSourceUnavailable means a tier produced no usable catalog.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

const (
	// DefaultTimeout bounds the remote fetch
	DefaultTimeout = 5 * time.Second

	// maxDocumentSize caps the remote body read
	maxDocumentSize = 8 << 20
)

// Config configures a Resolver
type Config struct {
	URL       string // Remote document; empty skips the remote tier
	CachePath string // Local cache file; empty skips the cache tier
	Timeout   time.Duration
	Retries   int // Extra remote attempts, 0 for one-shot
	Logger    *logrus.Logger
}

// Resolver fetches the catalog from the first tier that yields entries:
// remote, then cache, then the embedded document.
type Resolver struct {
	config *Config
	client *retryablehttp.Client
	logger *logrus.Logger
}

func NewResolver(cfg *Config) *Resolver {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	client := retryablehttp.NewClient()
	client.Logger = leveledLogger{logger.WithField("component", "catalog")}
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = cfg.Timeout

	return &Resolver{config: cfg, client: client, logger: logger}
}

// Resolve always returns a non-empty catalog. Tier failures are logged and
// never returned.
func (r *Resolver) Resolve(ctx context.Context) ([]Entry, Source) {
	// 1. Remote
	entries, err := r.remote(ctx)
	if err == nil {
		return entries, SourceRemote
	}
	r.logger.WithError(err).Debug("Remote catalog unavailable")

	// 2. Cache
	entries, err = r.cached()
	if err == nil {
		return entries, SourceCache
	}
	r.logger.WithError(err).Debug("Cached catalog unavailable")

	// 3. Embedded
	return Embedded(), SourceEmbedded
}

func (r *Resolver) remote(ctx context.Context) ([]Entry, error) {
	if r.config.URL == "" {
		return nil, fmt.Errorf("%w: no remote URL", ErrSourceUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, r.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: remote returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading remote: %v", ErrSourceUnavailable, err)
	}

	entries, err := parseNonEmpty(data)
	if err != nil {
		return nil, err
	}

	if err := r.saveCache(data); err != nil {
		r.logger.WithError(err).Warn("Could not write catalog cache")
	}
	return entries, nil
}

func (r *Resolver) cached() ([]Entry, error) {
	if r.config.CachePath == "" {
		return nil, fmt.Errorf("%w: no cache path", ErrSourceUnavailable)
	}
	data, err := os.ReadFile(r.config.CachePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return parseNonEmpty(data)
}

// saveCache replaces the cache file atomically.
func (r *Resolver) saveCache(data []byte) error {
	if r.config.CachePath == "" {
		return nil
	}
	dir := filepath.Dir(r.config.CachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.config.CachePath); err != nil {
		return fmt.Errorf("replacing cache: %w", err)
	}
	return nil
}

func parseNonEmpty(data []byte) ([]Entry, error) {
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: catalog has no entries", ErrSourceUnavailable)
	}
	return entries, nil
}

// leveledLogger routes retryablehttp messages to logrus at debug level.
type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) fields(kv []interface{}) *logrus.Entry {
	e := l.entry
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.WithField(fmt.Sprint(kv[i]), kv[i+1])
	}
	return e
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.fields(kv).Debug(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.fields(kv).Debug(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.fields(kv).Debug(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.fields(kv).Debug(msg) }

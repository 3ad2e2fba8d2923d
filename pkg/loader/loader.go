// Package loader fetches the record collection from a URL, a file, or
// stdin and decodes it into catalog records.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/destiny/pkg/catalog"
	"github.com/oakwood-commons/destiny/pkg/logger"
	"github.com/oakwood-commons/destiny/pkg/settings"
)

// StdinSource reads the dataset from standard input.
const StdinSource = "-"

// maxDatasetBytes is the largest dataset accepted from any source. Larger
// inputs fail instead of being cut short.
var maxDatasetBytes int64 = 64 << 20

// LoadFailure reports why a dataset could not be loaded.
type LoadFailure struct {
	Source string
	Err    error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("load dataset %q: %v", e.Source, e.Err)
}

func (e *LoadFailure) Unwrap() error { return e.Err }

type options struct {
	client  *http.Client
	timeout time.Duration
	stdin   io.Reader
	format  Format
}

// Option configures Load.
type Option func(*options)

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout bounds the whole load. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.stdin = r
		}
	}
}

// WithFormat forces a dataset format instead of detecting it.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

func newOptions(opts []Option) options {
	o := options{
		client:  http.DefaultClient,
		timeout: settings.DefaultLoadTimeout,
		stdin:   os.Stdin,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load fetches and decodes the dataset in a single attempt. Any failure is
// returned as *LoadFailure; no partial collection is ever returned.
func Load(ctx context.Context, source string, opts ...Option) ([]catalog.Record, error) {
	o := newOptions(opts)
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &LoadFailure{Source: source, Err: fmt.Errorf("no data source configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	data, name, err := read(ctx, source, o)
	if err != nil {
		return nil, &LoadFailure{Source: source, Err: err}
	}

	format := o.format
	if format == FormatAuto {
		format = FormatFromName(name)
	}
	records, err := Decode(data, format)
	if err != nil {
		return nil, &LoadFailure{Source: source, Err: err}
	}
	return records, nil
}

// LoadOrEmpty is the fail-soft variant of Load: failures are logged and an
// empty collection is returned.
func LoadOrEmpty(ctx context.Context, source string, lgr logr.Logger, opts ...Option) []catalog.Record {
	records, err := Load(ctx, source, opts...)
	if err != nil {
		lgr.Error(err, "failed to load dataset", logger.SourceKey, source)
		return []catalog.Record{}
	}
	lgr.V(1).Info("dataset loaded", logger.SourceKey, source, "records", len(records))
	return records
}

// read returns the raw bytes and a name used for extension-based format
// detection.
func read(ctx context.Context, source string, o options) ([]byte, string, error) {
	switch {
	case source == StdinSource:
		data, err := readLimited(o.stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	case IsURL(source):
		return fetch(ctx, source, o.client)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := readLimited(f)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", source, err)
		}
		return data, source, nil
	}
}

// readLimited reads r fully, failing once more than maxDatasetBytes arrive.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDatasetBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxDatasetBytes {
		return nil, fmt.Errorf("dataset exceeds %d bytes", maxDatasetBytes)
	}
	return data, nil
}

func fetch(ctx context.Context, source string, client *http.Client) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/x-ndjson, application/yaml, application/toml;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return data, req.URL.Path, nil
}

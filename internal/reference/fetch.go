package reference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrLoadFailure matches every error produced while fetching reference data
// or templates.
var ErrLoadFailure = errors.New("load failure")

// FetchError describes a failed fetch of a single location.
type FetchError struct {
	Location string
	Err      error
	Hint     string
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetching %s: %s", e.Location, e.Err)
	if e.Hint != "" {
		msg += " — " + e.Hint
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrLoadFailure.
func (e *FetchError) Is(target error) bool {
	return target == ErrLoadFailure
}

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPClient returns an HTTPClient using http.DefaultClient.
type DefaultHTTPClient struct{}

func (DefaultHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
}

// Fetcher reads a location that is either an http(s) URL or a local path.
type Fetcher struct {
	Client  HTTPClient
	BaseDir string        // relative local paths resolve against this directory
	MaxSize int64         // max body size in bytes (0 = no limit)
	Timeout time.Duration // per-fetch timeout (0 = no extra timeout beyond context)
}

// IsURL reports whether location is fetched over HTTP.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch returns the content at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, &FetchError{Location: "(empty)", Err: fmt.Errorf("no location configured")}
	}
	if IsURL(location) {
		return f.fetchURL(ctx, location)
	}
	return f.readLocal(ctx, location)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	client := f.Client
	if client == nil {
		client = DefaultHTTPClient{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Location: url, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Location: url, Err: err, Hint: "check network connectivity and URL"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Location: url,
			Err:      fmt.Errorf("HTTP %d", resp.StatusCode),
			Hint:     "check that the URL is accessible",
		}
	}

	return f.readLimited(url, resp.Body)
}

func (f *Fetcher) readLocal(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	path := location
	if !filepath.IsAbs(path) && f.BaseDir != "" {
		path = filepath.Join(f.BaseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err, Hint: "check that the path exists"}
	}
	defer file.Close()
	return f.readLimited(location, file)
}

func (f *Fetcher) readLimited(location string, r io.Reader) ([]byte, error) {
	if f.MaxSize > 0 {
		r = io.LimitReader(r, f.MaxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, &FetchError{Location: location, Err: fmt.Errorf("reading content: %w", err)}
	}
	if f.MaxSize > 0 && int64(len(content)) > f.MaxSize {
		return nil, &FetchError{
			Location: location,
			Err:      fmt.Errorf("content exceeds max size %d bytes", f.MaxSize),
			Hint:     "increase max_fetch_size",
		}
	}
	return content, nil
}

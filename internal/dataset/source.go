package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrUnsupportedSource is returned for a source no configured opener reads.
var ErrUnsupportedSource = errors.New("unsupported dataset source")

// Opener opens a dataset source for reading.
type Opener interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// FileOpener reads local files.
type FileOpener struct{}

func (FileOpener) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	return f, nil
}

// HTTPOpener fetches http(s) URLs.
type HTTPOpener struct {
	Client *http.Client
}

// NewHTTPOpener returns an HTTPOpener whose client gives up after timeout.
func NewHTTPOpener(timeout time.Duration) *HTTPOpener {
	return &HTTPOpener{Client: &http.Client{Timeout: timeout}}
}

func (o *HTTPOpener) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: status %s", source, resp.Status)
	}
	return resp.Body, nil
}

// Router picks an opener by the source's scheme. Sources without a scheme
// are files.
type Router struct {
	File Opener
	HTTP Opener
	S3   Opener
}

func (r Router) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	var opener Opener
	switch {
	case strings.HasPrefix(source, "s3://"):
		opener = r.S3
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		opener = r.HTTP
	case strings.Contains(source, "://"):
		opener = nil
	default:
		opener = r.File
	}
	if opener == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
	return opener.Open(ctx, source)
}

// UsesS3 reports whether any of the sources is an s3:// URI.
func UsesS3(sources ...string) bool {
	for _, s := range sources {
		if strings.HasPrefix(s, "s3://") {
			return true
		}
	}
	return false
}

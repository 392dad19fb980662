// Package source loads images from local files or http(s) URLs.
package source

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spf13/afero"

	"github.com/darkawower/palettegen/internal/colors"
)

// MaxDownloadSize caps how much of a remote response is read.
const MaxDownloadSize = 64 << 20

// SupportedExtensions are the image file extensions we decode.
var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Image is a decoded image and where it came from.
type Image struct {
	Image    image.Image
	Format   string
	Location string
	Remote   bool
}

// Loader reads images from a filesystem or over HTTP.
type Loader struct {
	fs        afero.Fs
	client    *http.Client
	userAgent string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs sets the filesystem local paths are read from.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithClient sets the HTTP client used for URLs.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.client = &http.Client{Timeout: d} }
}

// WithUserAgent sets the User-Agent header for remote requests.
func WithUserAgent(ua string) Option {
	return func(l *Loader) { l.userAgent = ua }
}

// NewLoader creates a loader over the OS filesystem.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:        afero.NewOsFs(),
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "palettegen",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load decodes the image at location.
func (l *Loader) Load(ctx context.Context, location string) (*Image, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: no image location given", colors.ErrInvalidInput)
	}
	if IsRemote(location) {
		return l.fetch(ctx, location)
	}
	return l.open(location)
}

func (l *Loader) open(path string) (*Image, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", colors.ErrInvalidInput, path, err)
	}
	return &Image{Image: img, Format: format, Location: path}, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", colors.ErrInvalidInput, url, err)
	}
	return &Image{Image: img, Format: format, Location: url, Remote: true}, nil
}

// List returns the supported images directly inside dir, sorted by name.
func (l *Loader) List(dir string) ([]string, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if SupportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// cachedImage is a decoded image together with the format name reported by
// the decoder.
type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// The MCP server answers several tool calls about the same file (recognize,
// then inspect features, then render a feature area), so decoded images are
// kept until Evict or Clear is called.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the decoded image for path, reading it from disk on first use.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The path string is
// the cache key, so a relative and an absolute path to the same file are
// cached separately.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a decodable image
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	img, format, err := Decode(path)
	if err != nil {
		return cachedImage{}, err
	}
	entry := cachedImage{img: img, format: format}

	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Decode reads and decodes the image file at path without caching it.
//
// Parameters:
//   - path: the image file; the format is detected from its content
//
// Returns the decoded image and the decoder name, e.g. "png" or "jpeg".
//
// # Errors
//
//   - Returns error if the file cannot be opened
//   - Returns error if no registered decoder accepts the content
//   - Returns error if the decoded image has no pixels
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, "", fmt.Errorf("failed to decode image: %s has no pixels", path)
	}
	return img, format, nil
}

// Save writes img to path. The output format is chosen from the file
// extension (png, jpg, gif, tif, bmp).
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and reports its dimensions,
// decoder format and file size.
//
// Parameters:
//   - cache: the cache the decoded image is read from and stored in
//   - path: the image file
//
// Returns the image metadata. The size is read from disk on every call, the
// pixels only on the first one.
//
// # Errors
//
//   - Returns the Load error if the file cannot be read or decoded
//   - Returns error if the file cannot be stat'ed
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := entry.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        entry.format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// Package imageprobe reads the facts og:image checks need (dimensions,
// byte size, format) from a local image without decoding pixel data.
package imageprobe

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/dtnitsch/seo-meta-lint/models"
	_ "golang.org/x/image/webp"
)

// Info describes a probed image.
type Info struct {
	Width  int
	Height int
	Bytes  int64
	MIME   string
}

// countingReader tracks how many bytes were consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Probe decodes the image header from r, then drains the rest to measure
// the total size.
func Probe(r io.Reader) (Info, error) {
	cr := &countingReader{r: r}
	br := bufio.NewReader(cr)

	cfg, format, err := image.DecodeConfig(br)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read image header: %w", err)
	}
	if _, err := io.Copy(io.Discard, br); err != nil {
		return Info{}, fmt.Errorf("failed to read image: %w", err)
	}

	return Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  cr.n,
		MIME:   "image/" + format,
	}, nil
}

// ProbeFile probes an image on disk.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return Probe(f)
}

// Apply fills og_image facts that meta does not already carry.
func (i Info) Apply(meta models.PageMetadata) models.PageMetadata {
	if meta.OGImageWidth == nil {
		meta.OGImageWidth = models.Int(i.Width)
	}
	if meta.OGImageHeight == nil {
		meta.OGImageHeight = models.Int(i.Height)
	}
	if meta.OGImageBytes == nil {
		meta.OGImageBytes = models.Int64(i.Bytes)
	}
	if meta.OGImageType == nil {
		meta.OGImageType = models.Str(i.MIME)
	}
	return meta
}

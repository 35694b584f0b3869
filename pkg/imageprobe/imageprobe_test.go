package imageprobe

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/seo-meta-lint/models"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestProbePNG(t *testing.T) {
	data := encodePNG(t, 1200, 630)

	info, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Width != 1200 || info.Height != 630 {
		t.Errorf("dimensions = %dx%d, want 1200x630", info.Width, info.Height)
	}
	if info.Bytes != int64(len(data)) {
		t.Errorf("bytes = %d, want %d", info.Bytes, len(data))
	}
	if info.MIME != "image/png" {
		t.Errorf("mime = %q, want image/png", info.MIME)
	}
}

func TestProbeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "og.png")
	if err := os.WriteFile(path, encodePNG(t, 40, 20), 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	info, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile() error = %v", err)
	}
	if info.Width != 40 || info.Height != 20 {
		t.Errorf("dimensions = %dx%d, want 40x20", info.Width, info.Height)
	}
}

func TestProbeRejectsNonImage(t *testing.T) {
	if _, err := Probe(strings.NewReader("definitely not an image")); err == nil {
		t.Error("expected error for non-image input")
	}
}

func TestApplyKeepsExistingFacts(t *testing.T) {
	info := Info{Width: 1200, Height: 630, Bytes: 1000, MIME: "image/png"}
	meta := models.PageMetadata{OGImageWidth: models.Int(800)}

	out := info.Apply(meta)
	if *out.OGImageWidth != 800 {
		t.Errorf("width = %d, want existing 800", *out.OGImageWidth)
	}
	if *out.OGImageHeight != 630 || *out.OGImageBytes != 1000 || *out.OGImageType != "image/png" {
		t.Errorf("facts not filled: %+v", out)
	}
	if meta.OGImageHeight != nil {
		t.Error("input record was modified")
	}
}

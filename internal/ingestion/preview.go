package ingestion

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbnailMaxSide = 320
	// Larger images are not decoded; a tiny compressed file can declare
	// dimensions that need gigabytes once expanded.
	maxPreviewPixels = 40_000_000
)

// Preview is what the client shows before submitting.
type Preview struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	DataURL     string `json:"data_url"`
}

type selectedImage struct {
	fileName    string
	contentType string
	data        []byte
}

// sniffImage checks that data is a non-empty image and returns its MIME type.
func sniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidImage
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrInvalidImage
	}
	return mt.String(), nil
}

// BuildPreview renders a local preview without any network access. Formats
// the decoders cannot read (e.g. HEIC) and images above maxPreviewPixels fall
// back to the raw bytes.
func BuildPreview(fileName string, data []byte) (*Preview, error) {
	contentType, err := sniffImage(data)
	if err != nil {
		return nil, err
	}

	preview := &Preview{FileName: fileName, ContentType: contentType, SizeBytes: len(data)}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		preview.DataURL = dataURL(contentType, data)
		return preview, nil
	}
	preview.Width, preview.Height = cfg.Width, cfg.Height
	if int64(cfg.Width)*int64(cfg.Height) > maxPreviewPixels {
		preview.DataURL = dataURL(contentType, data)
		return preview, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		preview.DataURL = dataURL(contentType, data)
		return preview, nil
	}

	thumb := scaleDown(src, thumbnailMaxSide)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		preview.DataURL = dataURL(contentType, data)
		return preview, nil
	}
	preview.DataURL = dataURL("image/jpeg", buf.Bytes())
	return preview, nil
}

func scaleDown(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

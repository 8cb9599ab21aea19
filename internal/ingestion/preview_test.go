package ingestion

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildPreviewScalesLargeImages(t *testing.T) {
	data := pngBytes(t, 1280, 640)

	preview, err := BuildPreview("board.png", data)
	require.NoError(t, err)

	assert.Equal(t, "image/png", preview.ContentType)
	assert.Equal(t, 1280, preview.Width)
	assert.Equal(t, 640, preview.Height)
	assert.Equal(t, len(data), preview.SizeBytes)
	require.True(t, strings.HasPrefix(preview.DataURL, "data:image/jpeg;base64,"))
}

func TestScaleDownKeepsAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	got := scaleDown(src, 320).Bounds()
	assert.Equal(t, 320, got.Dx())
	assert.Equal(t, 160, got.Dy())

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Equal(t, small, scaleDown(small, 320))
}

func TestBuildPreviewRejectsNonImages(t *testing.T) {
	_, err := BuildPreview("notes.txt", []byte("just some text, not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = BuildPreview("empty.png", nil)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

// grayPNG streams a blank 8-bit grayscale PNG without holding the pixels in
// memory, so the encoded file stays tiny whatever the dimensions.
func grayPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")

	chunk := func(kind string, data []byte) {
		_ = binary.Write(&out, binary.BigEndian, uint32(len(data)))
		out.WriteString(kind)
		out.Write(data)
		crc := crc32.NewIEEE()
		crc.Write([]byte(kind))
		crc.Write(data)
		_ = binary.Write(&out, binary.BigEndian, crc.Sum32())
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(h))
	ihdr[8] = 8 // bit depth; color type, compression, filter, interlace stay 0
	chunk("IHDR", ihdr)

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	row := make([]byte, w+1)
	for y := 0; y < h; y++ {
		_, err := zw.Write(row)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	chunk("IDAT", idat.Bytes())
	chunk("IEND", nil)
	return out.Bytes()
}

func TestBuildPreviewSkipsDecodingHugeImages(t *testing.T) {
	data := grayPNG(t, 8000, 6000)
	require.Less(t, len(data), 1<<20)

	preview, err := BuildPreview("bomb.png", data)
	require.NoError(t, err)

	assert.Equal(t, 8000, preview.Width)
	assert.Equal(t, 6000, preview.Height)
	assert.True(t, strings.HasPrefix(preview.DataURL, "data:image/png;base64,"),
		"oversized images keep the original bytes instead of a decoded thumbnail")
}

func TestBuildPreviewDecodesBelowPixelCap(t *testing.T) {
	preview, err := BuildPreview("small.png", grayPNG(t, 400, 300))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(preview.DataURL, "data:image/jpeg;base64,"))
}

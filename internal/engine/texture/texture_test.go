package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tgaHeader builds an 18 byte header for a true-color image.
func tgaHeader(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, bottom-up, BGR.
	data := append(tgaHeader(TGATypeUncompressed, 2, 1, 24, false),
		0, 0, 255, // red
		255, 0, 0, // blue
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.At(1, 0))
}

func TestDecodeTGAOrientation(t *testing.T) {
	// 1x2; first pixel in the file is the bottom row unless top-to-bottom.
	pixels := []byte{0, 255, 0, 255, 0, 0, 0, 255}

	bottomUp, err := DecodeTGA(append(tgaHeader(TGATypeUncompressed, 1, 2, 32, false), pixels...))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, bottomUp.At(0, 1))

	topDown, err := DecodeTGA(append(tgaHeader(TGATypeUncompressed, 1, 2, 32, true), pixels...))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, topDown.At(0, 0))
	assert.Equal(t, color.RGBA{A: 255}, topDown.At(0, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1 top-down: run of two red, then one raw green.
	data := append(tgaHeader(TGATypeRLE, 3, 1, 24, true),
		0x81, 0, 0, 255,
		0x00, 0, 255, 0,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.At(1, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.At(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(TGATypeUncompressed, 1, 1, 24, false); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, false)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, false)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, false), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 4, 1, 24, false), 0x81, 1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}

	_, err := DecodeTGA(append(tgaHeader(TGATypeUncompressed, 2, 2, 24, false), 1, 2, 3))
	assert.True(t, errors.Is(err, ErrTruncatedTGA))
}

func TestDecodePNGAndPrepare(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 128})
	src.Set(0, 1, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(buf.Bytes(), "hull.png")
	require.NoError(t, err)

	opaque := Prepare(img, false, true)
	require.Equal(t, 2, opaque.Bounds().Dy())
	// Flipped: the blue bottom row is now row 0.
	assert.Equal(t, color.RGBA{B: 255, A: 255}, opaque.RGBAAt(0, 0))
	assert.Equal(t, uint8(255), opaque.RGBAAt(0, 1).A)

	kept := Prepare(img, true, false)
	assert.Equal(t, uint8(128), kept.RGBAAt(0, 0).A)
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode([]byte("not an image"), "skin.png")
	assert.Error(t, err)

	_, err = Decode([]byte{0}, "skin.TGA")
	assert.ErrorIs(t, err, ErrTruncatedTGA)
}

func TestFlipVerticalOddHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 1})
	img.SetRGBA(0, 1, color.RGBA{R: 2})
	img.SetRGBA(0, 2, color.RGBA{R: 3})

	FlipVertical(img)
	assert.Equal(t, uint8(3), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(2), img.RGBAAt(0, 1).R)
	assert.Equal(t, uint8(1), img.RGBAAt(0, 2).R)
}

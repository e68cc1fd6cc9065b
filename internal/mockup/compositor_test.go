package mockup

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redSquarePNG renders a solid red square for use as a design.
func redSquarePNG(t *testing.T, size int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, red)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompose_ProducesCanvasSizedPNG(t *testing.T) {
	out, err := Compose(redSquarePNG(t, 100), "white")
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, canvasWidth, decoded.Bounds().Dx())
	assert.Equal(t, canvasHeight, decoded.Bounds().Dy())
}

func TestCompose_DesignLandsInPrintArea(t *testing.T) {
	out, err := Compose(redSquarePNG(t, 100), "white")
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// Center of the print area is red; the top-left corner is garment fabric.
	r, _, _, _ := decoded.At(canvasWidth/2, printAreaTop+printAreaWidth/2).RGBA()
	assert.Greater(t, r>>8, uint32(200), "print area center should carry the design")

	r, g, b, _ := decoded.At(5, 5).RGBA()
	assert.InDelta(t, 0xF5, int(r>>8), 3)
	assert.InDelta(t, 0xF5, int(g>>8), 3)
	assert.InDelta(t, 0xF4, int(b>>8), 3)
}

func TestCompose_BlackGarment(t *testing.T) {
	out, err := Compose(redSquarePNG(t, 100), "Black")
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, g, b, _ := decoded.At(5, 5).RGBA()
	assert.InDelta(t, 0x1C, int(r>>8), 3)
	assert.InDelta(t, 0x1C, int(g>>8), 3)
	assert.InDelta(t, 0x1E, int(b>>8), 3)
}

func TestCompose_UnknownColorFallsBackToWhite(t *testing.T) {
	out, err := Compose(redSquarePNG(t, 100), "chartreuse")
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, _, _, _ := decoded.At(5, 5).RGBA()
	assert.InDelta(t, 0xF5, int(r>>8), 3)
}

func TestCompose_EmptyDesign(t *testing.T) {
	_, err := Compose(nil, "white")
	assert.ErrorIs(t, err, ErrEmptyDesign)
}

func TestCompose_GarbageBytes(t *testing.T) {
	_, err := Compose([]byte("not a png"), "white")
	assert.Error(t, err)
}

func TestDecodeDataURL(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4E, 0x47}
	encoded := base64.StdEncoding.EncodeToString(raw)

	// With the data: prefix
	decoded, err := DecodeDataURL("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	// Bare base64
	decoded, err = DecodeDataURL(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	// Invalid payload
	_, err = DecodeDataURL("data:image/png;base64,!!!!")
	assert.Error(t, err)
}

package mockup

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Canvas and print-area geometry, loosely matching a front-print garment
// photo: the design sits centered in the chest area.
const (
	canvasWidth  = 1200
	canvasHeight = 1400

	printAreaWidth = 480
	printAreaTop   = 380
)

var ErrEmptyDesign = errors.New("design image is empty")

// garmentColors maps catalog colors to fabric fill colors for the rendered
// mockup.
var garmentColors = map[string]color.NRGBA{
	"white": {R: 0xF5, G: 0xF5, B: 0xF4, A: 0xFF},
	"black": {R: 0x1C, G: 0x1C, B: 0x1E, A: 0xFF},
}

// Compose renders the design onto a garment-colored canvas and returns the
// result as PNG bytes. The design is resized to the print area preserving
// aspect ratio and centered horizontally.
func Compose(designPNG []byte, garmentColor string) ([]byte, error) {
	if len(designPNG) == 0 {
		return nil, ErrEmptyDesign
	}

	design, err := imaging.Decode(bytes.NewReader(designPNG))
	if err != nil {
		return nil, fmt.Errorf("decode design: %w", err)
	}

	fill, ok := garmentColors[strings.ToLower(garmentColor)]
	if !ok {
		fill = garmentColors["white"]
	}

	canvas := imaging.New(canvasWidth, canvasHeight, fill)

	fitted := imaging.Resize(design, printAreaWidth, 0, imaging.Lanczos)
	offsetX := (canvasWidth - fitted.Bounds().Dx()) / 2

	composed := imaging.Overlay(canvas, fitted, image.Pt(offsetX, printAreaTop), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, composed, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode mockup: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeDataURL extracts raw image bytes from a base64 data URL. Plain
// base64 without the data: prefix is accepted too.
func DecodeDataURL(dataURL string) ([]byte, error) {
	payload := dataURL
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}
	return raw, nil
}

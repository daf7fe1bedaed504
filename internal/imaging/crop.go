package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is an image encoded as base64 PNG for JSON transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropRegion extracts r from img, grown by pad pixels on every side and
// clipped to the image, and returns it as base64 PNG. r is given in
// coordinates relative to the image's top-left corner. A scale other than 1
// resizes the crop with a Lanczos filter.
func CropRegion(img image.Image, r image.Rectangle, pad int, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()
	region := r.Inset(-pad).Add(bounds.Min).Intersect(bounds)
	if region.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}

	cropped := imaging.Crop(img, region)
	if scale > 0 && scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f collapses region %v", scale, region)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return EncodePNG(cropped)
}

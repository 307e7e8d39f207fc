package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"campusfind/pkg/errors"
)

const (
	// Images are stored inline on documents, so they are capped at 800px on
	// the longer edge and re-encoded as JPEG.
	MaxEdge     = 800
	JPEGQuality = 70
)

// Normalize decodes a base64-encoded image, downscales it so the longer edge
// is at most MaxEdge pixels, and returns the result re-encoded as base64 JPEG.
// Payloads already within bounds are still re-encoded so every stored image
// carries the same format.
func Normalize(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.BadRequest("Invalid image encoding", err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", errors.BadRequest("Unsupported image format", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > MaxEdge || height > MaxEdge {
		if width > height {
			height = height * MaxEdge / width
			width = MaxEdge
		} else {
			width = width * MaxEdge / height
			height = MaxEdge
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", errors.Internal("Failed to encode image", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

package controls

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"

	// Extra decoders for thumbstick artwork.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image is the artwork for a thumbstick, read from Reader when attached.
type Image struct {
	Name   string
	Reader io.Reader

	// Width and Height override the decoded image size when non-zero.
	Width  float64
	Height float64

	// MaxDimension downsizes larger images to fit within a square of this
	// many pixels before embedding (0 = embed as-is).
	MaxDimension int
}

type decodedImage struct {
	dataURI string
	width   float64
	height  float64
}

// decode reads the image, checks that it decodes, and builds its data URI.
func (img *Image) decode() (*decodedImage, error) {
	if img.Reader == nil {
		return nil, fmt.Errorf("thumbstick image %s: no content", img.Name)
	}
	raw, err := io.ReadAll(img.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading thumbstick image %s: %w", img.Name, err)
	}
	decoded, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding thumbstick image %s: %w", img.Name, err)
	}

	mime := http.DetectContentType(raw)
	bounds := decoded.Bounds()
	if img.MaxDimension > 0 && (bounds.Dx() > img.MaxDimension || bounds.Dy() > img.MaxDimension) {
		fitted := imaging.Fit(decoded, img.MaxDimension, img.MaxDimension, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
			return nil, fmt.Errorf("re-encoding thumbstick image %s: %w", img.Name, err)
		}
		raw = buf.Bytes()
		mime = "image/png"
		bounds = fitted.Bounds()
	}

	out := &decodedImage{
		dataURI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw),
		width:   float64(bounds.Dx()),
		height:  float64(bounds.Dy()),
	}
	if img.Width > 0 {
		out.width = img.Width
	}
	if img.Height > 0 {
		out.height = img.Height
	}
	return out, nil
}

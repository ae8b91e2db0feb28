package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder

	"volunteerhub/internal/domain"
)

// MaxImagePixels caps the declared canvas size. A small compressed file can
// declare a canvas far larger than the file size ceiling allows for.
const MaxImagePixels = 50_000_000

// CompressImage decodes an image, scales it so its longest edge is at most
// maxEdge, and re-encodes it as a JPEG data URL.
func CompressImage(data []byte, maxEdge, quality int) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: reading image header: %v", domain.ErrUnprocessable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return "", fmt.Errorf("%w: image dimensions %dx%d exceed %d pixels",
			domain.ErrUnprocessable, cfg.Width, cfg.Height, MaxImagePixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decoding image: %v", domain.ErrUnprocessable, err)
	}

	dst := fit(src, maxEdge)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fit returns src scaled down to maxEdge on its longest side, flattened onto
// an opaque RGBA canvas.
func fit(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxEdge || h > maxEdge {
		if w >= h {
			h = max(1, h*maxEdge/w)
			w = maxEdge
		} else {
			w = max(1, w*maxEdge/h)
			h = maxEdge
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha: paint white first so transparent areas do not turn black
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

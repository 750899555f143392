package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Result is the encoded image ready for storage.
type Result struct {
	Data        []byte
	Format      string // "jpeg", "png", "gif", "webp"
	ContentType string
	Width       int
	Height      int
}

// Ext returns the file extension matching the encoded format
func (r *Result) Ext() string {
	if r.Format == "jpeg" {
		return ".jpg"
	}
	return "." + r.Format
}

type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Fit downscales images wider than maxWidth, keeping the aspect ratio.
// Images that already fit are returned byte-for-byte. Resized webp and gif
// images are re-encoded as jpeg and png respectively.
func (p *Processor) Fit(data []byte, maxWidth int) (*Result, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return &Result{
			Data:        data,
			Format:      format,
			ContentType: "image/" + format,
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := scaleToWidth(img, maxWidth)

	var buf bytes.Buffer
	outFormat := format
	switch format {
	case "png", "gif":
		outFormat = "png"
		err = png.Encode(&buf, resized)
	default:
		outFormat = "jpeg"
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", outFormat, err)
	}

	b := resized.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		Format:      outFormat,
		ContentType: "image/" + outFormat,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

func scaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

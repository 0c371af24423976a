package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrUnsupportedFormat is returned for decodable formats we cannot re-encode
var ErrUnsupportedFormat = errors.New("imaging: format cannot be re-encoded")

const jpegQuality = 85

// Downscale shrinks an encoded image so neither side exceeds maxDimension,
// keeping the aspect ratio and the original format. The input is returned
// untouched (resized == false) when it already fits or maxDimension <= 0.
func Downscale(data []byte, maxDimension int) (out []byte, resized bool, err error) {
	if maxDimension <= 0 {
		return data, false, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("imaging: decode config: %w", err)
	}
	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return data, false, nil
	}
	if format != "jpeg" && format != "png" {
		return nil, false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("imaging: decode %s: %w", format, err)
	}

	newWidth, newHeight := fit(cfg.Width, cfg.Height, maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, false, fmt.Errorf("imaging: encode %s: %w", format, err)
	}
	return buf.Bytes(), true, nil
}

// fit computes dimensions bounded by limit on the longer side
func fit(width, height, limit int) (int, int) {
	if width >= height {
		if width <= limit {
			return width, height
		}
		h := int(float64(height) * float64(limit) / float64(width))
		if h < 1 {
			h = 1
		}
		return limit, h
	}
	if height <= limit {
		return width, height
	}
	w := int(float64(width) * float64(limit) / float64(height))
	if w < 1 {
		w = 1
	}
	return w, limit
}

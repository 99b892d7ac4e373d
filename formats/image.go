package formats

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/erraggy/formatconv/registry"
)

// Option keys understood by the image family.
const (
	// OptQuality sets JPEG encoding quality in 1..100.
	OptQuality = "quality"
)

// defaultJPEGQuality is used when no quality option is given.
const defaultJPEGQuality = 90

// RegisterImage installs the image family: re-encodings between raster
// formats. Every direction is an explicit unit so lossiness is tracked
// per direction; nothing here is derived. WebP decodes only, so its
// pairs are one-way.
func RegisterImage(reg *registry.Registry) error {
	return registerUnits(reg,
		imageUnit("png", "jpeg", true),
		imageUnit("jpeg", "png", false),
		imageUnit("png", "gif", true),
		imageUnit("gif", "png", false),
		imageUnit("png", "bmp", false),
		imageUnit("bmp", "png", false),
		imageUnit("png", "tiff", false),
		imageUnit("tiff", "png", false),
		imageUnit("jpeg", "gif", true),
		imageUnit("gif", "jpeg", true),
		imageUnit("jpeg", "bmp", false),
		imageUnit("bmp", "jpeg", true),
		webpUnit("png", false),
		webpUnit("jpeg", true),
	)
}

func imageUnit(source, target string, lossy bool) *registry.Func {
	return registry.NewUnit(registry.Def{
		Source:      source,
		Target:      target,
		Family:      "image",
		Input:       registry.ShapeBytes,
		Output:      registry.ShapeBytes,
		Lossy:       lossy,
		Description: fmt.Sprintf("re-encode a %s image as %s", source, target),
		Convert:     reencode(source, target),
	})
}

func webpUnit(target string, lossy bool) *registry.Func {
	return registry.NewUnit(registry.Def{
		Source:      "webp",
		Target:      target,
		Family:      "image",
		Input:       registry.ShapeBytes,
		Output:      registry.ShapeBytes,
		OneWay:      true,
		Lossy:       lossy,
		Description: fmt.Sprintf("decode a webp image and re-encode it as %s", target),
		Convert:     reencode("webp", target),
	})
}

func reencode(source, target string) registry.ConvertFunc {
	return func(value any, opts registry.Options) (any, error) {
		img, err := decodeImage(source, value.([]byte))
		if err != nil {
			return nil, conversionErr(source, target, "corrupt or truncated "+source+" data", err)
		}
		out, err := encodeImage(target, img, opts)
		if err != nil {
			return nil, conversionErr(source, target, target+" encoding failed", err)
		}
		return out, nil
	}
}

func decodeImage(format string, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case "png":
		return png.Decode(r)
	case "jpeg":
		return jpeg.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	case "tiff":
		return tiff.Decode(r)
	case "webp":
		return webp.Decode(r)
	default:
		return nil, fmt.Errorf("no decoder for image format %q", format)
	}
}

func encodeImage(format string, img image.Image, opts registry.Options) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = encodeJPEG(&buf, img, opts)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		err = fmt.Errorf("no encoder for image format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeJPEG flattens any alpha channel onto a white background first;
// JPEG has no transparency.
func encodeJPEG(w io.Writer, img image.Image, opts registry.Options) error {
	quality := opts.Int(OptQuality, defaultJPEGQuality)
	if quality < 1 || quality > 100 {
		return fmt.Errorf("jpeg quality %d out of range 1..100", quality)
	}
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return jpeg.Encode(w, flat, &jpeg.Options{Quality: quality})
}

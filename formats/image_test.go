package formats

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/formatconv/converrors"
	"github.com/erraggy/formatconv/registry"
)

func imageRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, RegisterImage(reg))
	return reg
}

// testPNG renders a small two-tone image as PNG bytes.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 30, G: 30, B: 200, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImagePNGToJPEG(t *testing.T) {
	reg := imageRegistry(t)
	src := testPNG(t, 8, 6)

	out := mustConvert(t, reg, src, "png", "jpeg",
		registry.Options{OptQuality: 95}).([]byte)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx(), "dimensions are preserved")
	assert.Equal(t, 6, decoded.Bounds().Dy())
}

func TestImageRoundTrips(t *testing.T) {
	reg := imageRegistry(t)
	src := testPNG(t, 4, 4)

	targets := []string{"jpeg", "gif", "bmp", "tiff"}
	for _, target := range targets {
		t.Run("png via "+target, func(t *testing.T) {
			encoded := mustConvert(t, reg, src, "png", target, nil).([]byte)
			back := mustConvert(t, reg, encoded, target, "png", nil).([]byte)

			decoded, err := png.Decode(bytes.NewReader(back))
			require.NoError(t, err)
			assert.Equal(t, 4, decoded.Bounds().Dx())
			assert.Equal(t, 4, decoded.Bounds().Dy())
		})
	}
}

func TestImageJPEGTransparencyFlattened(t *testing.T) {
	reg := imageRegistry(t)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	// fully transparent; should flatten to white, not black
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out := mustConvert(t, reg, buf.Bytes(), "png", "jpeg", nil).([]byte)
	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Greater(t, r, uint32(0xF000))
	assert.Greater(t, g, uint32(0xF000))
	assert.Greater(t, b, uint32(0xF000))
}

func TestImageQualityOutOfRange(t *testing.T) {
	reg := imageRegistry(t)
	src := testPNG(t, 2, 2)

	unit, err := reg.ResolvePair("png", "jpeg")
	require.NoError(t, err)
	_, err = unit.Convert(src, registry.Options{OptQuality: 150})
	assert.True(t, errors.Is(err, converrors.ErrConversion))
}

func TestImageCorruptInput(t *testing.T) {
	reg := imageRegistry(t)

	unit, err := reg.ResolvePair("png", "jpeg")
	require.NoError(t, err)
	_, err = unit.Convert([]byte("definitely not a png"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrConversion))
}

func TestImageLossyDirections(t *testing.T) {
	reg := imageRegistry(t)

	for _, entry := range reg.Entries() {
		assert.False(t, entry.Derived, "image units are always explicit: %s", entry.Key)
	}

	unit, err := reg.ResolvePair("png", "jpeg")
	require.NoError(t, err)
	fn, ok := unit.(*registry.Func)
	require.True(t, ok)
	assert.True(t, fn.Lossy())

	unit, err = reg.ResolvePair("jpeg", "png")
	require.NoError(t, err)
	fn, ok = unit.(*registry.Func)
	require.True(t, ok)
	assert.False(t, fn.Lossy())
}

func TestImageWebPIsOneWay(t *testing.T) {
	reg := imageRegistry(t)

	_, err := reg.ResolvePair("webp", "png")
	assert.NoError(t, err)
	_, err = reg.ResolvePair("png", "webp")
	assert.True(t, errors.Is(err, converrors.ErrUnsupportedConversion),
		"no webp encoder exists")
}

// Package imageio provides the small pixel-buffer surface the physics
// layer consumes: width, height, format, and raw bytes. Only RGB and
// RGBA layouts are supported; anything else is rejected at load time.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Format is a pixel layout.
type Format int

const (
	RGB Format = iota
	RGBA
)

func (f Format) String() string {
	switch f {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	}
	return "UNKNOWN"
}

// PixelSize returns the number of bytes per pixel.
func (f Format) PixelSize() int {
	if f == RGBA {
		return 4
	}
	return 3
}

// Image is a dense pixel buffer, rows packed top to bottom with no
// stride padding.
type Image struct {
	width  int
	height int
	format Format
	pix    []byte
}

func NewRGB(width, height int, pix []byte) (*Image, error) {
	return newImage(width, height, RGB, pix)
}

func NewRGBA(width, height int, pix []byte) (*Image, error) {
	return newImage(width, height, RGBA, pix)
}

func newImage(width, height int, format Format, pix []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	want := width * height * format.PixelSize()
	if len(pix) != want {
		return nil, fmt.Errorf("pixel buffer length %d, want %d for %dx%d %s", len(pix), want, width, height, format)
	}
	return &Image{width: width, height: height, format: format, pix: pix}, nil
}

func (im *Image) Width() int     { return im.width }
func (im *Image) Height() int    { return im.height }
func (im *Image) Format() Format { return im.format }
func (im *Image) Pix() []byte    { return im.pix }

// Load decodes an image file into an RGBA buffer. PNG and JPEG decoders
// come from the standard library; BMP and TIFF from golang.org/x/image.
// JPEG's YCbCr output is converted to RGBA; decoded images that are not
// backed by an 8-bit RGBA-compatible layout (grayscale, paletted,
// CMYK, ...) are rejected.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return fromDecoded(src)
}

func fromDecoded(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img := src.(type) {
	case *image.RGBA:
		return NewRGBA(w, h, compact(img.Pix, img.Stride, w*4, h))
	case *image.NRGBA:
		return NewRGBA(w, h, compact(img.Pix, img.Stride, w*4, h))
	case *image.YCbCr:
		// JPEG decodes to YCbCr; convert to an RGBA buffer.
		rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
		return NewRGBA(w, h, compact(rgba.Pix, rgba.Stride, w*4, h))
	default:
		return nil, fmt.Errorf("unsupported pixel format %T: only RGB and RGBA images are supported", src)
	}
}

// compact strips per-row stride padding from a pixel buffer.
func compact(pix []byte, stride, rowBytes, rows int) []byte {
	if stride == rowBytes {
		out := make([]byte, rowBytes*rows)
		copy(out, pix)
		return out
	}
	out := make([]byte, 0, rowBytes*rows)
	for y := 0; y < rows; y++ {
		out = append(out, pix[y*stride:y*stride+rowBytes]...)
	}
	return out
}

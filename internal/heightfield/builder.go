package heightfield

import (
	"fmt"

	"github.com/san-kum/rigid/internal/imageio"
)

// luminanceDivisor converts a summed R+G+B value to a 0..1 height
// fraction. 768 rather than 765 (3*255) is kept for compatibility with
// existing terrain: changing it would shift every simulated height.
const luminanceDivisor = 768.0

// BuildFromImage derives a gridWidth x gridHeight field from an image
// that encodes height as pixel luminance. Each pixel maps to
// (R+G+B)/768 scaled into [minHeight, maxHeight]; each grid cell then
// samples those per-pixel heights bilinearly at the image coordinate
// obtained by scaling the cell's column and row by
// (imageDimension-1)/(gridDimension-1). Grid row 0 maps to the image's
// bottom row, so the grid's z axis runs opposite the image's y axis.
func BuildFromImage(img *imageio.Image, gridWidth, gridHeight int, minHeight, maxHeight float32) (*Field, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	if gridWidth < 2 || gridHeight < 2 {
		return nil, fmt.Errorf("heightfield grid must be at least 2x2, got %dx%d", gridWidth, gridHeight)
	}
	switch img.Format() {
	case imageio.RGB, imageio.RGBA:
	default:
		return nil, fmt.Errorf("unsupported pixel format %s: heightmaps require RGB or RGBA", img.Format())
	}

	imgW := img.Width()
	imgH := img.Height()
	pixelSize := img.Format().PixelSize()
	pix := img.Pix()

	// Per-pixel heights from luminance.
	heights := make([]float32, imgW*imgH)
	scale := maxHeight - minHeight
	for y := 0; y < imgH; y++ {
		for x := 0; x < imgW; x++ {
			off := (x + y*imgW) * pixelSize
			sum := float32(pix[off]) + float32(pix[off+1]) + float32(pix[off+2])
			heights[x+y*imgW] = sum/luminanceDivisor*scale + minHeight
		}
	}

	// Resample onto the world-unit grid, flipping rows so that grid
	// row 0 lands on the image's maximum-z row.
	data := make([]float32, gridWidth*gridHeight)
	widthFactor := float32(imgW-1) / float32(gridWidth-1)
	heightFactor := float32(imgH-1) / float32(gridHeight-1)
	for row := 0; row < gridHeight; row++ {
		iy := float32(gridHeight-1-row) * heightFactor
		for col := 0; col < gridWidth; col++ {
			ix := float32(col) * widthFactor
			data[row*gridWidth+col] = Interpolate(heights, imgW, imgH, ix, iy)
		}
	}

	return New(data, gridWidth, gridHeight, minHeight, maxHeight), nil
}

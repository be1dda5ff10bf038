// Package heightfield holds dense row-major grids of terrain heights and
// the bilinear sampling shared by grid construction and runtime height
// queries.
package heightfield

import (
	"github.com/chewxy/math32"
)

// Field is a row-major grid of heights, one sample per world-grid cell.
// Data is immutable after construction and has length Width*Height.
type Field struct {
	Data      []float32
	Width     int
	Height    int
	MinHeight float32
	MaxHeight float32
}

// New wraps existing sample data. The data slice is owned by the field
// from here on.
func New(data []float32, width, height int, minHeight, maxHeight float32) *Field {
	return &Field{Data: data, Width: width, Height: height, MinHeight: minHeight, MaxHeight: maxHeight}
}

// At returns the sample at integer grid coordinates.
func (f *Field) At(x, y int) float32 {
	return f.Data[x+y*f.Width]
}

// Sample bilinearly interpolates the field at a fractional grid
// coordinate.
func (f *Field) Sample(x, y float32) float32 {
	return Interpolate(f.Data, f.Width, f.Height, x, y)
}

// Interpolate samples data at fractional coordinate (x, y). The four
// surrounding samples are blended bilinearly; when a neighbor column or
// row falls off the grid the blend collapses to a linear interpolation
// along the in-bounds axis, or to a direct lookup at the far corner.
func Interpolate(data []float32, width, height int, x, y float32) float32 {
	x1 := int(x)
	y1 := int(y)
	// Queries may land on the far boundary; clamp so the corner lookup
	// below stays in bounds.
	if x1 >= width {
		x1 = width - 1
	}
	if y1 >= height {
		y1 = height - 1
	}
	x2 := x1 + 1
	y2 := y1 + 1
	fx := x - math32.Floor(x)
	fy := y - math32.Floor(y)
	ifx := 1.0 - fx
	ify := 1.0 - fy

	switch {
	case x2 >= width && y2 >= height:
		return data[x1+y1*width]
	case x2 >= width:
		return data[x1+y1*width]*ify + data[x1+y2*width]*fy
	case y2 >= height:
		return data[x1+y1*width]*ifx + data[x2+y1*width]*fx
	default:
		return data[x1+y1*width]*ifx*ify + data[x1+y2*width]*ifx*fy +
			data[x2+y2*width]*fx*fy + data[x2+y1*width]*fx*ify
	}
}

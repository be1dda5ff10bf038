package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rigid/internal/heightfield"
)

// ProfileSVG renders one row of a heightfield as an SVG polyline, a
// quick way to eyeball a terrain cross-section outside the terminal.
func ProfileSVG(field *heightfield.Field, row int, scale float64) (string, error) {
	if field == nil {
		return "", fmt.Errorf("nil heightfield")
	}
	if row < 0 || row >= field.Height {
		return "", fmt.Errorf("row %d outside heightfield with %d rows", row, field.Height)
	}
	if scale <= 0 {
		scale = 4
	}

	width := float64(field.Width-1) * scale
	span := float64(field.MaxHeight - field.MinHeight)
	if span <= 0 {
		span = 1
	}
	height := span * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="#00ff00" stroke-width="1.5" points="`, width, height, width, height))

	for x := 0; x < field.Width; x++ {
		h := float64(field.At(x, row) - field.MinHeight)
		px := float64(x) * scale
		py := height - h*scale
		if x > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", px, py))
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String(), nil
}

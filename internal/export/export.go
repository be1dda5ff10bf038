// Package export writes terrain and trajectory data to CSV and SVG.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/heightfield"
)

// SaveTerrainCSV writes a heightfield as rows of x,z,height.
func SaveTerrainCSV(path string, field *heightfield.Field) error {
	if field == nil {
		return fmt.Errorf("nil heightfield")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "z", "height"}); err != nil {
		return err
	}
	for z := 0; z < field.Height; z++ {
		for x := 0; x < field.Width; x++ {
			row := []string{
				strconv.Itoa(x),
				strconv.Itoa(z),
				strconv.FormatFloat(float64(field.At(x, z)), 'f', 6, 32),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveTrajectoryCSV writes per-step body positions as time,x,y,z rows.
func SaveTrajectoryCSV(path string, times []float32, positions []mgl32.Vec3) error {
	if len(times) != len(positions) {
		return fmt.Errorf("times and positions length mismatch: %d vs %d", len(times), len(positions))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "x", "y", "z"}); err != nil {
		return err
	}
	for i, t := range times {
		p := positions[i]
		row := []string{
			strconv.FormatFloat(float64(t), 'f', 6, 32),
			strconv.FormatFloat(float64(p.X()), 'f', 6, 32),
			strconv.FormatFloat(float64(p.Y()), 'f', 6, 32),
			strconv.FormatFloat(float64(p.Z()), 'f', 6, 32),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

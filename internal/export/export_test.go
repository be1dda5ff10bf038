package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/heightfield"
)

func testField(t *testing.T) *heightfield.Field {
	t.Helper()
	return heightfield.New([]float32{
		0, 1, 2,
		3, 4, 5,
	}, 3, 2, 0, 5)
}

func TestSaveTerrainCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.csv")
	if err := SaveTerrainCSV(path, testField(t)); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 7 {
		t.Fatalf("row count %d, want header + 6 samples", len(rows))
	}
	if rows[0][0] != "x" || rows[0][2] != "height" {
		t.Errorf("header %v", rows[0])
	}
	// Row-major order: second data row is sample (1,0) with height 1.
	if rows[2][0] != "1" || rows[2][1] != "0" || !strings.HasPrefix(rows[2][2], "1.0") {
		t.Errorf("sample row %v", rows[2])
	}
}

func TestSaveTerrainCSVNilField(t *testing.T) {
	if err := SaveTerrainCSV(filepath.Join(t.TempDir(), "x.csv"), nil); err == nil {
		t.Error("expected error for nil field")
	}
}

func TestSaveTrajectoryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.csv")
	times := []float32{0, 0.5}
	positions := []mgl32.Vec3{{0, 10, 0}, {0, 8.75, 0}}

	if err := SaveTrajectoryCSV(path, times, positions); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count %d, want header + 2", len(rows))
	}
	if !strings.HasPrefix(rows[2][2], "8.75") {
		t.Errorf("trajectory row %v", rows[2])
	}

	if err := SaveTrajectoryCSV(path, times, positions[:1]); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestProfileSVG(t *testing.T) {
	svg, err := ProfileSVG(testField(t), 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing polyline element")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("svg not closed")
	}
	// Three samples in the row means three coordinate pairs.
	start := strings.Index(svg, `points="`)
	end := strings.Index(svg[start:], `"/>`)
	points := strings.Fields(svg[start+len(`points="`) : start+end])
	if len(points) != 3 {
		t.Errorf("point count %d, want 3", len(points))
	}
}

func TestProfileSVGRowOutOfRange(t *testing.T) {
	if _, err := ProfileSVG(testField(t), 5, 1); err == nil {
		t.Error("expected error for out-of-range row")
	}
	if _, err := ProfileSVG(nil, 0, 1); err == nil {
		t.Error("expected error for nil field")
	}
}

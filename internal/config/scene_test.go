package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/physics"
)

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte(`gravity: [0, -5, 0]
nodes:
  - name: floor
    bounds:
      min: [-10, -1, -10]
      max: [10, 0, 10]
    body:
      type: BOX
      mass: 0
  - name: ball
    position: [0, 5, 0]
    bounds:
      min: [-1, -1, -1]
      max: [1, 1, 1]
    body:
      type: SPHERE
      mass: 1
      material: rubber
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Nodes) != 2 {
		t.Fatalf("node count %d, want 2", len(s.Nodes))
	}
	if s.Gravity == nil || *s.Gravity != [3]float32{0, -5, 0} {
		t.Errorf("gravity %v, want [0 -5 0]", s.Gravity)
	}
}

func TestLoadSceneEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("nodes: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(path); err == nil {
		t.Error("expected error for scene with no nodes")
	}
}

func TestSceneBuild(t *testing.T) {
	s := &Scene{
		Gravity: &[3]float32{0, -5, 0},
		Nodes: []NodeConfig{
			{
				Name:     "ball",
				Position: [3]float32{0, 5, 0},
				Bounds:   &BoundsConfig{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}},
				Body:     &physics.Def{Type: "SPHERE", Mass: 1},
			},
			{
				Name: "marker",
			},
			{
				// Body definition fails: node is kept, body skipped.
				Name:   "broken",
				Bounds: &BoundsConfig{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}},
				Body:   &physics.Def{Type: "CONE"},
			},
		},
	}

	w := physics.NewWorld()
	nodes, bodies, err := s.Build(w)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 {
		t.Errorf("node count %d, want 3", len(nodes))
	}
	if len(bodies) != 1 {
		t.Fatalf("body count %d, want 1", len(bodies))
	}
	if w.Gravity() != (mgl32.Vec3{0, -5, 0}) {
		t.Errorf("world gravity %v, want scene value", w.Gravity())
	}
	if nodes[0].Position() != (mgl32.Vec3{0, 5, 0}) {
		t.Errorf("node position %v, want [0 5 0]", nodes[0].Position())
	}
	if bodies[0].CollisionShape().Kind != physics.Sphere {
		t.Errorf("shape %s, want SPHERE", bodies[0].CollisionShape().Kind)
	}

	if _, _, err := s.Build(nil); err == nil {
		t.Error("expected error for nil world")
	}
}

func TestSceneBuildVertexMesh(t *testing.T) {
	s := &Scene{
		Nodes: []NodeConfig{
			{
				Name:     "ramp",
				Rotation: &[3]float32{0, 90, 0},
				Vertices: []float32{0, 0, 0, 4, 0, 0, 4, 2, 0},
				Body:     &physics.Def{Type: "MESH"},
			},
		},
	}

	w := physics.NewWorld()
	nodes, bodies, err := s.Build(w)
	if err != nil {
		t.Fatal(err)
	}
	if len(bodies) != 1 {
		t.Fatalf("body count %d, want 1", len(bodies))
	}
	if bodies[0].CollisionShape().Kind != physics.Mesh {
		t.Errorf("shape %s, want MESH", bodies[0].CollisionShape().Kind)
	}
	if nodes[0].Rotation() == (mgl32.QuatIdent()) {
		t.Error("rotation not applied")
	}

	s.Nodes[0].Vertices = []float32{0, 0, 0, 1}
	if _, _, err := s.Build(physics.NewWorld()); err == nil {
		t.Error("expected error for partial triangle data")
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigid/internal/physics"
	"github.com/san-kum/rigid/internal/scene"
)

// Scene describes a set of nodes with optional rigid bodies. Nodes
// with bounds get a box mesh spanning them; a heightfield body sizes
// its grid from those bounds.
type Scene struct {
	Gravity *[3]float32  `yaml:"gravity"`
	Nodes   []NodeConfig `yaml:"nodes"`
}

type NodeConfig struct {
	Name     string        `yaml:"name"`
	Position [3]float32    `yaml:"position"`
	Rotation *[3]float32   `yaml:"rotation"`
	Scale    *[3]float32   `yaml:"scale"`
	Bounds   *BoundsConfig `yaml:"bounds"`
	Vertices []float32     `yaml:"vertices"`
	Body     *physics.Def  `yaml:"body"`
}

type BoundsConfig struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// LoadScene reads a scene description from a yaml file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if len(s.Nodes) == 0 {
		return nil, fmt.Errorf("scene %s defines no nodes", path)
	}
	return &s, nil
}

// Build instantiates the scene into a world: one node per entry, plus
// a rigid body for every entry with a body definition. Definitions
// that fail to produce a body are skipped; the node is still created.
func (s *Scene) Build(w *physics.World) ([]*scene.Node, []*physics.RigidBody, error) {
	if w == nil {
		return nil, nil, fmt.Errorf("nil world")
	}
	if s.Gravity != nil {
		w.SetGravity(mgl32.Vec3(*s.Gravity))
	}

	nodes := make([]*scene.Node, 0, len(s.Nodes))
	bodies := make([]*physics.RigidBody, 0, len(s.Nodes))
	for _, nc := range s.Nodes {
		n := scene.NewNode(nc.Name)
		n.SetPosition(mgl32.Vec3(nc.Position))
		if nc.Rotation != nil {
			// Euler angles in degrees, applied x then y then z.
			r := *nc.Rotation
			n.SetRotation(mgl32.AnglesToQuat(
				mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ))
		}
		if nc.Scale != nil {
			n.SetScale(mgl32.Vec3(*nc.Scale))
		}
		switch {
		case nc.Bounds != nil:
			mesh := scene.NewBoxMesh(mgl32.Vec3(nc.Bounds.Min), mgl32.Vec3(nc.Bounds.Max))
			n.SetModel(scene.NewModel(mesh))
		case len(nc.Vertices) > 0:
			if len(nc.Vertices)%9 != 0 {
				return nil, nil, fmt.Errorf("node %q: vertices must be whole triangles, got %d floats", nc.Name, len(nc.Vertices))
			}
			idx := make([]uint32, len(nc.Vertices)/3)
			for i := range idx {
				idx[i] = uint32(i)
			}
			mesh := scene.NewMesh(scene.Triangles, nc.Vertices, [][]uint32{idx})
			n.SetModel(scene.NewModel(mesh))
		}
		nodes = append(nodes, n)

		if nc.Body != nil {
			if body := physics.NewBodyFromDef(w, n, nc.Body); body != nil {
				bodies = append(bodies, body)
			}
		}
	}
	return nodes, bodies, nil
}

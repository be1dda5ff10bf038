package physics

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigid/internal/imageio"
	"github.com/san-kum/rigid/internal/scene"
)

// defaultFriction applies when a definition names neither a friction
// value nor a material.
const defaultFriction = 0.5

// Def is a declarative rigid-body definition, the yaml equivalent of a
// rigidbody properties block. Pointer fields distinguish "not set"
// from an explicit zero.
type Def struct {
	Type                string      `yaml:"type"`
	Mass                float32     `yaml:"mass"`
	Material            string      `yaml:"material"`
	Friction            *float32    `yaml:"friction"`
	Restitution         *float32    `yaml:"restitution"`
	LinearDamping       *float32    `yaml:"linearDamping"`
	AngularDamping      *float32    `yaml:"angularDamping"`
	Kinematic           bool        `yaml:"kinematic"`
	Gravity             *[3]float32 `yaml:"gravity"`
	AnisotropicFriction *[3]float32 `yaml:"anisotropicFriction"`
	Image               string      `yaml:"image"`
	Radius              *float32    `yaml:"radius"`
	Height              *float32    `yaml:"height"`
}

type defFile struct {
	RigidBody *Def `yaml:"rigidbody"`
}

// LoadDef reads a body definition from a yaml file with a top-level
// rigidbody block.
func LoadDef(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rigid body definition: %w", err)
	}
	var f defFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rigid body definition %s: %w", path, err)
	}
	if f.RigidBody == nil {
		return nil, fmt.Errorf("rigid body definition %s has no rigidbody block", path)
	}
	return f.RigidBody, nil
}

// Params resolves the definition's mass properties: material values
// first, explicit fields overriding them, friction defaulting to 0.5.
func (d *Def) Params() Params {
	p := Params{Mass: d.Mass, Friction: defaultFriction}
	if d.Material != "" {
		if m, ok := MaterialByName(d.Material); ok {
			p.Friction = m.Friction
			p.Restitution = m.Restitution
			p.LinearDamping = m.LinearDamping
			p.AngularDamping = m.AngularDamping
		} else {
			log.Warn("unknown rigid body material", "material", d.Material, "known", MaterialNames())
		}
	}
	if d.Friction != nil {
		p.Friction = *d.Friction
	}
	if d.Restitution != nil {
		p.Restitution = *d.Restitution
	}
	if d.LinearDamping != nil {
		p.LinearDamping = *d.LinearDamping
	}
	if d.AngularDamping != nil {
		p.AngularDamping = *d.AngularDamping
	}
	return p
}

// NewBodyFromDef builds a body from a definition. Failures are
// non-fatal: a warning is logged and nil returned, so callers must
// treat nil as failure. Heightfield definitions need an image path;
// capsule definitions need both radius and height; mesh definitions
// need triangle-list topology on the node's mesh.
func NewBodyFromDef(w *World, node *scene.Node, def *Def) *RigidBody {
	if def == nil {
		log.Warn("nil rigid body definition")
		return nil
	}
	p := def.Params()

	var body *RigidBody
	var err error
	switch def.Type {
	case "BOX":
		body, err = NewBody(w, node, Box, p)
	case "SPHERE":
		body, err = NewBody(w, node, Sphere, p)
	case "MESH":
		body, err = NewBody(w, node, Mesh, p)
	case "HEIGHTFIELD":
		if def.Image == "" {
			log.Warn("heightfield rigid body requires an image path", "node", nodeName(node))
			return nil
		}
		var img *imageio.Image
		img, err = imageio.Load(def.Image)
		if err == nil {
			body, err = NewHeightfieldBody(w, node, img, p)
		}
	case "CAPSULE":
		if def.Radius == nil || def.Height == nil {
			log.Warn("capsule rigid body requires both radius and height", "node", nodeName(node))
			return nil
		}
		body, err = NewCapsuleBody(w, node, *def.Radius, *def.Height, p)
	default:
		log.Warn("unsupported rigid body type", "type", def.Type, "node", nodeName(node))
		return nil
	}
	if err != nil {
		log.Warn("failed to create rigid body", "node", nodeName(node), "type", def.Type, "err", err)
		return nil
	}

	if def.Kinematic {
		body.SetKinematic(true)
	}
	if def.Gravity != nil {
		body.SetGravity(mgl32.Vec3(*def.Gravity))
	}
	if def.AnisotropicFriction != nil {
		body.SetAnisotropicFriction(mgl32.Vec3(*def.AnisotropicFriction))
	}
	return body
}

func nodeName(node *scene.Node) string {
	if node == nil {
		return ""
	}
	return node.Name()
}

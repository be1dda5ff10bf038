package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/heightfield"
)

// ShapeKind selects a collision shape variant.
type ShapeKind int

const (
	None ShapeKind = iota
	Box
	Sphere
	Mesh
	Capsule
	Heightfield
)

func (k ShapeKind) String() string {
	switch k {
	case Box:
		return "BOX"
	case Sphere:
		return "SPHERE"
	case Mesh:
		return "MESH"
	case Capsule:
		return "CAPSULE"
	case Heightfield:
		return "HEIGHTFIELD"
	}
	return "NONE"
}

// Shape is a collision shape: a kind tag plus the payload for that
// variant. Shapes are sized at creation time with the node's world
// scale baked in; they are never rescaled afterwards.
type Shape struct {
	Kind ShapeKind

	// Box
	HalfExtents mgl32.Vec3

	// Sphere and Capsule
	Radius float32

	// Capsule
	Height float32

	// Mesh: scaled vertex copy plus one index buffer per part.
	Vertices []float32
	Parts    [][]uint32

	// Heightfield
	Field *heightfield.Field
}

// LocalInertia computes the shape's local inertia tensor diagonal for
// the given mass. Mesh and heightfield shapes report zero: concave
// shapes carry no mass properties.
func (s *Shape) LocalInertia(mass float32) mgl32.Vec3 {
	if mass == 0 {
		return mgl32.Vec3{}
	}
	switch s.Kind {
	case Box:
		he := s.HalfExtents
		return mgl32.Vec3{
			mass / 3.0 * (he.Y()*he.Y() + he.Z()*he.Z()),
			mass / 3.0 * (he.X()*he.X() + he.Z()*he.Z()),
			mass / 3.0 * (he.X()*he.X() + he.Y()*he.Y()),
		}
	case Sphere:
		i := 0.4 * mass * s.Radius * s.Radius
		return mgl32.Vec3{i, i, i}
	case Capsule:
		// Approximated by the capsule's bounding box.
		hx := s.Radius
		hy := s.Height/2 + s.Radius
		hz := s.Radius
		return mgl32.Vec3{
			mass / 3.0 * (hy*hy + hz*hz),
			mass / 3.0 * (hx*hx + hz*hz),
			mass / 3.0 * (hx*hx + hy*hy),
		}
	}
	return mgl32.Vec3{}
}

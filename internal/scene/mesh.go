package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive is the topology of a mesh's index data.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case Lines:
		return "LINES"
	case LineStrip:
		return "LINE_STRIP"
	case Points:
		return "POINTS"
	}
	return "UNKNOWN"
}

// BoundingBox is an axis-aligned box in mesh-local coordinates.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundingSphere is a center/radius bound in mesh-local coordinates.
type BoundingSphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Mesh holds raw geometry plus precomputed bounds. Vertices are packed
// XYZ floats; Parts holds one index buffer per mesh part.
type Mesh struct {
	Primitive Primitive
	Vertices  []float32
	Parts     [][]uint32
	Box       BoundingBox
	Sphere    BoundingSphere
}

// NewMesh builds a mesh and computes its bounds from the vertex data.
func NewMesh(primitive Primitive, vertices []float32, parts [][]uint32) *Mesh {
	m := &Mesh{Primitive: primitive, Vertices: vertices, Parts: parts}
	m.ComputeBounds()
	return m
}

// NewBoxMesh builds a triangle-list mesh whose bounds span min..max.
// The corner vertices are enough for shape construction; render geometry
// is out of scope here.
func NewBoxMesh(min, max mgl32.Vec3) *Mesh {
	vertices := []float32{
		min.X(), min.Y(), min.Z(),
		max.X(), min.Y(), min.Z(),
		max.X(), max.Y(), min.Z(),
		min.X(), max.Y(), min.Z(),
		min.X(), min.Y(), max.Z(),
		max.X(), min.Y(), max.Z(),
		max.X(), max.Y(), max.Z(),
		min.X(), max.Y(), max.Z(),
	}
	parts := [][]uint32{{
		0, 1, 2, 0, 2, 3,
		5, 4, 7, 5, 7, 6,
		4, 0, 3, 4, 3, 7,
		1, 5, 6, 1, 6, 2,
		3, 2, 6, 3, 6, 7,
		4, 5, 1, 4, 1, 0,
	}}
	return NewMesh(Triangles, vertices, parts)
}

// ComputeBounds recomputes Box and Sphere from the vertex buffer.
// The sphere is centered on the box center with radius reaching the
// farthest vertex.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) < 3 {
		m.Box = BoundingBox{}
		m.Sphere = BoundingSphere{}
		return
	}
	min := mgl32.Vec3{m.Vertices[0], m.Vertices[1], m.Vertices[2]}
	max := min
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		v := mgl32.Vec3{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	m.Box = BoundingBox{Min: min, Max: max}

	center := min.Add(max).Mul(0.5)
	radius := float32(0)
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		v := mgl32.Vec3{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
		d := v.Sub(center).Len()
		if d > radius {
			radius = d
		}
	}
	m.Sphere = BoundingSphere{Center: center, Radius: radius}
}

// TriangleCount returns the number of triangles across all parts.
// Zero for non-triangle-list meshes.
func (m *Mesh) TriangleCount() int {
	if m.Primitive != Triangles {
		return 0
	}
	n := 0
	for _, part := range m.Parts {
		n += len(part) / 3
	}
	return n
}

// Model attaches a mesh to a node. Render state lives elsewhere; the
// physics layer only needs geometry and bounds.
type Model struct {
	Mesh *Mesh
}

func NewModel(mesh *Mesh) *Model {
	return &Model{Mesh: mesh}
}

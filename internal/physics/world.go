package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/heightfield"
	"github.com/san-kum/rigid/internal/scene"
)

// ObjectType identifies what kind of collision object is registered
// with a world.
type ObjectType int

const (
	TypeNone ObjectType = iota
	TypeRigidBody
)

// CollisionObject is anything a world tracks: a node, an object type,
// and a collision shape.
type CollisionObject interface {
	Node() *scene.Node
	Type() ObjectType
	CollisionShape() *Shape
}

// Observer is called after every world step.
type Observer interface {
	OnStep(w *World, t float32)
}

// World is an explicit handle to a physics world: the registry of
// collision objects, global gravity, and the shape factory. All body
// construction and destruction goes through a world; there is no
// process-wide singleton.
//
// A world is stepped from a single simulation goroutine; it does no
// internal locking.
type World struct {
	gravity   mgl32.Vec3
	objects   []CollisionObject
	observers []Observer
	time      float32
}

func NewWorld() *World {
	return &World{gravity: mgl32.Vec3{0, -9.8, 0}}
}

func (w *World) Gravity() mgl32.Vec3 { return w.gravity }

func (w *World) SetGravity(g mgl32.Vec3) { w.gravity = g }

// Time returns the accumulated simulated time.
func (w *World) Time() float32 { return w.time }

func (w *World) AddObserver(o Observer) {
	if o != nil {
		w.observers = append(w.observers, o)
	}
}

// Objects returns the registered collision objects in registration
// order.
func (w *World) Objects() []CollisionObject { return w.objects }

// Bodies returns the registered rigid bodies in registration order.
func (w *World) Bodies() []*RigidBody {
	out := make([]*RigidBody, 0, len(w.objects))
	for _, obj := range w.objects {
		if rb, ok := obj.(*RigidBody); ok {
			out = append(out, rb)
		}
	}
	return out
}

// Contains reports whether obj is registered with the world.
func (w *World) Contains(obj CollisionObject) bool {
	for _, o := range w.objects {
		if o == obj {
			return true
		}
	}
	return false
}

func (w *World) addObject(obj CollisionObject) {
	w.objects = append(w.objects, obj)
}

func (w *World) removeObject(obj CollisionObject) {
	for i, o := range w.objects {
		if o == obj {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return
		}
	}
}

// Step advances every awake dynamic body by dt: accumulated forces and
// gravity are integrated into velocity, damping applied, and the new
// pose pushed onto the owning node through the motion-state bridge.
// Collision detection and constraint solving are not performed here.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, obj := range w.objects {
		rb, ok := obj.(*RigidBody)
		if !ok {
			continue
		}
		rb.step(w, dt)
	}
	w.time += dt
	for _, o := range w.observers {
		o.OnStep(w, w.time)
	}
}

// CreateBox builds a box shape from mesh-local min/max corners with the
// node's world scale baked into the half extents.
func (w *World) CreateBox(min, max, scale mgl32.Vec3) *Shape {
	he := max.Sub(min).Mul(0.5)
	return &Shape{
		Kind:        Box,
		HalfExtents: mgl32.Vec3{he.X() * scale.X(), he.Y() * scale.Y(), he.Z() * scale.Z()},
	}
}

// CreateSphere builds a sphere shape, scaling the radius by the largest
// world-scale axis.
func (w *World) CreateSphere(radius float32, scale mgl32.Vec3) *Shape {
	s := scale.X()
	if scale.Y() > s {
		s = scale.Y()
	}
	if scale.Z() > s {
		s = scale.Z()
	}
	return &Shape{Kind: Sphere, Radius: radius * s}
}

// CreateMesh builds a triangle-soup shape from a mesh, applying the
// world scale to a private copy of the vertex data. Only plain triangle
// lists are supported.
func (w *World) CreateMesh(mesh *scene.Mesh, scale mgl32.Vec3) (*Shape, error) {
	if mesh == nil {
		return nil, fmt.Errorf("nil mesh")
	}
	if mesh.Primitive != scene.Triangles {
		return nil, fmt.Errorf("mesh rigid bodies require %s primitive topology, got %s", scene.Triangles, mesh.Primitive)
	}
	vertices := make([]float32, len(mesh.Vertices))
	for i := 0; i+2 < len(mesh.Vertices); i += 3 {
		vertices[i] = mesh.Vertices[i] * scale.X()
		vertices[i+1] = mesh.Vertices[i+1] * scale.Y()
		vertices[i+2] = mesh.Vertices[i+2] * scale.Z()
	}
	parts := make([][]uint32, len(mesh.Parts))
	for i, part := range mesh.Parts {
		parts[i] = make([]uint32, len(part))
		copy(parts[i], part)
	}
	return &Shape{Kind: Mesh, Vertices: vertices, Parts: parts}, nil
}

// CreateCapsule builds a capsule shape from explicit dimensions; unlike
// box and sphere shapes these are not derived from mesh bounds.
func (w *World) CreateCapsule(radius, height float32) *Shape {
	return &Shape{Kind: Capsule, Radius: radius, Height: height}
}

// CreateHeightfield wraps a sample grid in a collision shape. The field
// is referenced, not copied: it must outlive the shape.
func (w *World) CreateHeightfield(field *heightfield.Field) *Shape {
	return &Shape{Kind: Heightfield, Field: field}
}

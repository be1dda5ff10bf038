package physics

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/heightfield"
	"github.com/san-kum/rigid/internal/imageio"
	"github.com/san-kum/rigid/internal/scene"
)

// epsilon bounds negligible squared magnitudes: forces and impulses
// below it are dropped without waking the body.
const epsilon = 1e-6

// Params are the mass properties wired into a body at construction.
type Params struct {
	Mass           float32
	Friction       float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
}

// RigidBody binds a scene node to a collision shape and simulated
// velocity state. Exactly one shape per body; a heightfield body
// additionally owns its sample grid, and a mesh body owns scaled
// copies of the source vertex and index data.
type RigidBody struct {
	world  *World
	node   *scene.Node
	shape  *Shape
	motion *MotionState

	mass           float32
	friction       float32
	restitution    float32
	linearDamping  float32
	angularDamping float32
	kinematic      bool
	asleep         bool

	linearVelocity  mgl32.Vec3
	angularVelocity mgl32.Vec3
	force           mgl32.Vec3
	torque          mgl32.Vec3
	localInertia    mgl32.Vec3

	gravity             *mgl32.Vec3
	anisotropicFriction *mgl32.Vec3

	field        *heightfield.Field
	inverse      mgl32.Mat4
	inverseDirty bool

	constraints []*Constraint
	destroyed   bool
}

// NewBody creates a box, sphere, or mesh body sized from the node's
// mesh bounds. The node's world scale is applied at shape creation;
// shapes are not rescaled afterwards.
func NewBody(w *World, node *scene.Node, kind ShapeKind, p Params) (*RigidBody, error) {
	if w == nil || node == nil {
		return nil, fmt.Errorf("world and node are required")
	}
	mesh := nodeMesh(node)
	if mesh == nil {
		return nil, fmt.Errorf("node %q has no mesh to derive a shape from", node.Name())
	}
	scale := node.WorldScale()

	var shape *Shape
	var err error
	switch kind {
	case Box:
		shape = w.CreateBox(mesh.Box.Min, mesh.Box.Max, scale)
	case Sphere:
		shape = w.CreateSphere(mesh.Sphere.Radius, scale)
	case Mesh:
		shape, err = w.CreateMesh(mesh, scale)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported shape kind %s for bounds-derived body", kind)
	}

	// Center of mass sits at the negated, scale-adjusted bounding-sphere
	// center. Mesh shapes carry no mass properties, so no offset.
	var offset *mgl32.Vec3
	if kind != Mesh {
		c := mesh.Sphere.Center
		c = mgl32.Vec3{-c.X() * scale.X(), -c.Y() * scale.Y(), -c.Z() * scale.Z()}
		if c.LenSqr() > epsilon {
			offset = &c
		}
	}
	return finishBody(w, node, shape, p, offset), nil
}

// NewCapsuleBody creates a capsule body from explicit radius and
// height.
func NewCapsuleBody(w *World, node *scene.Node, radius, height float32, p Params) (*RigidBody, error) {
	if w == nil || node == nil {
		return nil, fmt.Errorf("world and node are required")
	}
	shape := w.CreateCapsule(radius, height)

	var offset *mgl32.Vec3
	if mesh := nodeMesh(node); mesh != nil {
		scale := node.WorldScale()
		c := mesh.Sphere.Center
		c = mgl32.Vec3{-c.X() * scale.X(), -c.Y() * scale.Y(), -c.Z() * scale.Z()}
		if c.LenSqr() > epsilon {
			offset = &c
		}
	}
	return finishBody(w, node, shape, p, offset), nil
}

// NewHeightfieldBody creates a terrain body from a heightmap image.
// The grid spans the node mesh's X/Z extent at one sample per world
// unit; per-pixel luminance maps into the mesh's Y range. The body
// listens for node transform changes to invalidate its cached inverse.
func NewHeightfieldBody(w *World, node *scene.Node, img *imageio.Image, p Params) (*RigidBody, error) {
	if w == nil || node == nil {
		return nil, fmt.Errorf("world and node are required")
	}
	mesh := nodeMesh(node)
	if mesh == nil {
		return nil, fmt.Errorf("node %q has no mesh to size the heightfield from", node.Name())
	}

	width := mesh.Box.Max.X() - mesh.Box.Min.X()
	length := mesh.Box.Max.Z() - mesh.Box.Min.Z()
	minHeight := mesh.Box.Min.Y()
	maxHeight := mesh.Box.Max.Y()

	gridW := int(math32.Ceil(width)) + 1
	gridH := int(math32.Ceil(length)) + 1
	field, err := heightfield.BuildFromImage(img, gridW, gridH, minHeight, maxHeight)
	if err != nil {
		return nil, fmt.Errorf("build heightfield for node %q: %w", node.Name(), err)
	}
	shape := w.CreateHeightfield(field)

	// The physics origin of a heightfield shape sits at the vertical
	// center of its height range, so shift the center of mass to match.
	scale := node.WorldScale()
	c := mgl32.Vec3{0, -(maxHeight - 0.5*(maxHeight-minHeight)) / scale.Y(), 0}
	var offset *mgl32.Vec3
	if c.LenSqr() > epsilon {
		offset = &c
	}

	rb := finishBody(w, node, shape, p, offset)
	rb.field = field
	rb.inverseDirty = true
	node.AddListener(rb)
	return rb, nil
}

func finishBody(w *World, node *scene.Node, shape *Shape, p Params, offset *mgl32.Vec3) *RigidBody {
	rb := &RigidBody{
		world:          w,
		node:           node,
		shape:          shape,
		mass:           p.Mass,
		friction:       p.Friction,
		restitution:    p.Restitution,
		linearDamping:  p.LinearDamping,
		angularDamping: p.AngularDamping,
	}
	// Dynamic bodies get local inertia from the shape; triangle meshes
	// never report inertia.
	if p.Mass != 0 && shape.Kind != Mesh {
		rb.localInertia = shape.LocalInertia(p.Mass)
	}
	rb.motion = newMotionState(node, offset)
	w.addObject(rb)
	return rb
}

func nodeMesh(node *scene.Node) *scene.Mesh {
	if node.Model() == nil {
		return nil
	}
	return node.Model().Mesh
}

// Node returns the scene node this body drives.
func (rb *RigidBody) Node() *scene.Node { return rb.node }

// Type reports the collision object type.
func (rb *RigidBody) Type() ObjectType { return TypeRigidBody }

// CollisionShape returns the body's shape.
func (rb *RigidBody) CollisionShape() *Shape { return rb.shape }

// MotionState returns the node synchronization bridge.
func (rb *RigidBody) MotionState() *MotionState { return rb.motion }

func (rb *RigidBody) Mass() float32 { return rb.mass }

// IsStatic reports whether the body has zero mass and never moves.
func (rb *RigidBody) IsStatic() bool { return rb.mass == 0 }

func (rb *RigidBody) Friction() float32 { return rb.friction }

func (rb *RigidBody) SetFriction(f float32) { rb.friction = f }

func (rb *RigidBody) Restitution() float32 { return rb.restitution }

func (rb *RigidBody) SetRestitution(r float32) { rb.restitution = r }

func (rb *RigidBody) LinearDamping() float32 { return rb.linearDamping }

func (rb *RigidBody) AngularDamping() float32 { return rb.angularDamping }

func (rb *RigidBody) IsKinematic() bool { return rb.kinematic }

// SetKinematic marks the body as driven by the node rather than the
// integrator.
func (rb *RigidBody) SetKinematic(k bool) { rb.kinematic = k }

func (rb *RigidBody) LinearVelocity() mgl32.Vec3 { return rb.linearVelocity }

func (rb *RigidBody) SetLinearVelocity(v mgl32.Vec3) { rb.linearVelocity = v }

func (rb *RigidBody) AngularVelocity() mgl32.Vec3 { return rb.angularVelocity }

func (rb *RigidBody) SetAngularVelocity(v mgl32.Vec3) { rb.angularVelocity = v }

// LocalInertia returns the inertia tensor diagonal computed at
// construction; zero for static, mesh, and heightfield bodies.
func (rb *RigidBody) LocalInertia() mgl32.Vec3 { return rb.localInertia }

// GravityOverride returns the per-body gravity, if one is set.
func (rb *RigidBody) GravityOverride() (mgl32.Vec3, bool) {
	if rb.gravity == nil {
		return mgl32.Vec3{}, false
	}
	return *rb.gravity, true
}

// SetGravity overrides world gravity for this body.
func (rb *RigidBody) SetGravity(g mgl32.Vec3) {
	v := g
	rb.gravity = &v
}

// ClearGravity removes the per-body gravity override.
func (rb *RigidBody) ClearGravity() { rb.gravity = nil }

// AnisotropicFriction returns the per-axis friction scale, if set.
func (rb *RigidBody) AnisotropicFriction() (mgl32.Vec3, bool) {
	if rb.anisotropicFriction == nil {
		return mgl32.Vec3{}, false
	}
	return *rb.anisotropicFriction, true
}

func (rb *RigidBody) SetAnisotropicFriction(f mgl32.Vec3) {
	v := f
	rb.anisotropicFriction = &v
}

// IsActive reports whether the body is awake.
func (rb *RigidBody) IsActive() bool { return !rb.asleep }

// Activate wakes a sleeping body.
func (rb *RigidBody) Activate() { rb.asleep = false }

// PutToSleep stops the body until the next significant force, impulse,
// or explicit Activate.
func (rb *RigidBody) PutToSleep() { rb.asleep = true }

// ApplyForce accumulates a force for the next step, optionally applied
// at a point relative to the center of mass. Forces with squared
// magnitude at or below epsilon are dropped without waking the body.
func (rb *RigidBody) ApplyForce(force mgl32.Vec3, relativePosition *mgl32.Vec3) {
	if force.LenSqr() <= epsilon {
		return
	}
	rb.Activate()
	rb.force = rb.force.Add(force)
	if relativePosition != nil {
		rb.torque = rb.torque.Add(relativePosition.Cross(force))
	}
}

// ApplyImpulse changes velocity immediately, optionally at a point
// relative to the center of mass. Negligible impulses are dropped
// without waking the body.
func (rb *RigidBody) ApplyImpulse(impulse mgl32.Vec3, relativePosition *mgl32.Vec3) {
	if impulse.LenSqr() <= epsilon {
		return
	}
	rb.Activate()
	if rb.mass > 0 {
		rb.linearVelocity = rb.linearVelocity.Add(impulse.Mul(1 / rb.mass))
	}
	if relativePosition != nil {
		rb.angularVelocity = rb.angularVelocity.Add(rb.scaleByInvInertia(relativePosition.Cross(impulse)))
	}
}

// ApplyTorque accumulates a torque for the next step. Negligible
// torques are dropped without waking the body.
func (rb *RigidBody) ApplyTorque(torque mgl32.Vec3) {
	if torque.LenSqr() <= epsilon {
		return
	}
	rb.Activate()
	rb.torque = rb.torque.Add(torque)
}

// ApplyTorqueImpulse changes angular velocity immediately. Negligible
// torque impulses are dropped without waking the body.
func (rb *RigidBody) ApplyTorqueImpulse(torque mgl32.Vec3) {
	if torque.LenSqr() <= epsilon {
		return
	}
	rb.Activate()
	rb.angularVelocity = rb.angularVelocity.Add(rb.scaleByInvInertia(torque))
}

func (rb *RigidBody) scaleByInvInertia(v mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		if rb.localInertia[i] > 0 {
			out[i] = v[i] / rb.localInertia[i]
		}
	}
	return out
}

// HeightAt returns the terrain height at a world-space X/Z coordinate.
// Valid only on heightfield bodies; other shapes warn and return zero.
// Coordinates that map outside the grid warn and return zero.
func (rb *RigidBody) HeightAt(worldX, worldZ float32) float32 {
	if rb.shape.Kind != Heightfield || rb.field == nil {
		log.Warn("height query on rigid body without heightfield data",
			"node", rb.node.Name(), "shape", rb.shape.Kind.String())
		return 0
	}

	if rb.inverseDirty {
		rb.inverse = rb.node.WorldMatrix().Inv()
		rb.inverseDirty = false
	}
	v := mgl32.TransformCoordinate(mgl32.Vec3{worldX, 0, worldZ}, rb.inverse)

	w := float32(rb.field.Width)
	h := float32(rb.field.Height)
	x := (v.X() + 0.5*(w-1)) * w / (w - 1)
	z := (v.Z() + 0.5*(h-1)) * h / (h - 1)

	if x < 0 || x > w || z < 0 || z > h {
		log.Warn("height query outside heightfield range",
			"node", rb.node.Name(), "x", x, "z", z,
			"width", rb.field.Width, "height", rb.field.Height)
		return 0
	}
	return rb.field.Sample(x, z)
}

// TransformChanged invalidates the cached inverse world transform.
// Registered on the node for heightfield bodies only.
func (rb *RigidBody) TransformChanged(*scene.Node) {
	rb.inverseDirty = true
}

// AddConstraint registers a constraint for lifecycle cleanup. Owned
// constraints are destroyed when the body is destroyed.
func (rb *RigidBody) AddConstraint(c *Constraint) {
	if c == nil {
		return
	}
	rb.constraints = append(rb.constraints, c)
}

// RemoveConstraint detaches a constraint from the body's cleanup set
// without destroying it.
func (rb *RigidBody) RemoveConstraint(c *Constraint) {
	for i, x := range rb.constraints {
		if x == c {
			rb.constraints = append(rb.constraints[:i], rb.constraints[i+1:]...)
			return
		}
	}
}

// Constraints returns the attached constraints in attachment order.
func (rb *RigidBody) Constraints() []*Constraint { return rb.constraints }

// SupportsConstraints reports whether constraints may attach to this
// body. Mesh and heightfield shapes do not support them.
func (rb *RigidBody) SupportsConstraints() bool {
	return rb.shape.Kind != Mesh && rb.shape.Kind != Heightfield
}

// Destroy tears the body down: remaining constraints are destroyed,
// the body deregisters from its world and node, and owned buffers are
// released. Destroy is idempotent.
func (rb *RigidBody) Destroy() {
	if rb.destroyed {
		return
	}
	rb.destroyed = true

	for len(rb.constraints) > 0 {
		c := rb.constraints[len(rb.constraints)-1]
		rb.constraints = rb.constraints[:len(rb.constraints)-1]
		c.Destroy()
	}
	rb.constraints = nil

	rb.world.removeObject(rb)
	if rb.shape.Kind == Heightfield {
		rb.node.RemoveListener(rb)
	}

	rb.field = nil
	rb.gravity = nil
	rb.anisotropicFriction = nil
	rb.motion = nil
	if rb.shape != nil {
		rb.shape.Vertices = nil
		rb.shape.Parts = nil
		rb.shape.Field = nil
	}
}

// step integrates one timestep. Static, kinematic, and sleeping bodies
// do not move.
func (rb *RigidBody) step(w *World, dt float32) {
	if rb.mass == 0 || rb.kinematic || rb.asleep || rb.motion == nil {
		rb.force = mgl32.Vec3{}
		rb.torque = mgl32.Vec3{}
		return
	}

	g := w.gravity
	if rb.gravity != nil {
		g = *rb.gravity
	}
	accel := g.Add(rb.force.Mul(1 / rb.mass))
	rb.linearVelocity = rb.linearVelocity.Add(accel.Mul(dt))
	rb.linearVelocity = rb.linearVelocity.Mul(1 / (1 + rb.linearDamping*dt))

	rb.angularVelocity = rb.angularVelocity.Add(rb.scaleByInvInertia(rb.torque).Mul(dt))
	rb.angularVelocity = rb.angularVelocity.Mul(1 / (1 + rb.angularDamping*dt))

	rb.force = mgl32.Vec3{}
	rb.torque = mgl32.Vec3{}

	pos, rot := rb.motion.WorldTransform()
	pos = pos.Add(rb.linearVelocity.Mul(dt))
	if speed := rb.angularVelocity.Len(); speed*dt > 1e-8 {
		axis := rb.angularVelocity.Mul(1 / speed)
		rot = mgl32.QuatRotate(speed*dt, axis).Mul(rot).Normalize()
	}
	rb.motion.SetWorldTransform(pos, rot)
}

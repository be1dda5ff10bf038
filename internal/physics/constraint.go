package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ConstraintKind selects a constraint variant.
type ConstraintKind int

const (
	Fixed ConstraintKind = iota
	Hinge
	Socket
	Spring
)

func (k ConstraintKind) String() string {
	switch k {
	case Fixed:
		return "FIXED"
	case Hinge:
		return "HINGE"
	case Socket:
		return "SOCKET"
	case Spring:
		return "SPRING"
	}
	return "UNKNOWN"
}

// Constraint links one or two rigid bodies. The bodies reference the
// constraint for lifecycle cleanup: destroying a body destroys its
// remaining constraints, and destroying a constraint detaches it from
// both bodies.
type Constraint struct {
	kind ConstraintKind
	a    *RigidBody
	b    *RigidBody

	// Anchor points relative to each body's origin.
	AnchorA mgl32.Vec3
	AnchorB mgl32.Vec3

	// BreakImpulse is the impulse above which the constraint breaks;
	// zero means unbreakable.
	BreakImpulse float32

	enabled   bool
	destroyed bool
}

// NewConstraint links a to b (b may be nil to pin a against the world).
// Bodies with mesh or heightfield shapes cannot carry constraints.
func NewConstraint(kind ConstraintKind, a, b *RigidBody) (*Constraint, error) {
	if a == nil {
		return nil, fmt.Errorf("constraint requires a primary body")
	}
	if !a.SupportsConstraints() {
		return nil, fmt.Errorf("%s body on node %q does not support constraints", a.shape.Kind, a.node.Name())
	}
	if b != nil && !b.SupportsConstraints() {
		return nil, fmt.Errorf("%s body on node %q does not support constraints", b.shape.Kind, b.node.Name())
	}
	c := &Constraint{kind: kind, a: a, b: b, enabled: true}
	a.AddConstraint(c)
	if b != nil {
		b.AddConstraint(c)
	}
	return c, nil
}

func (c *Constraint) Kind() ConstraintKind { return c.kind }

func (c *Constraint) BodyA() *RigidBody { return c.a }

func (c *Constraint) BodyB() *RigidBody { return c.b }

func (c *Constraint) Enabled() bool { return c.enabled }

func (c *Constraint) SetEnabled(e bool) { c.enabled = e }

// Destroyed reports whether Destroy has run.
func (c *Constraint) Destroyed() bool { return c.destroyed }

// Destroy detaches the constraint from both bodies. Idempotent.
func (c *Constraint) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.enabled = false
	if c.a != nil {
		c.a.RemoveConstraint(c)
	}
	if c.b != nil {
		c.b.RemoveConstraint(c)
	}
}

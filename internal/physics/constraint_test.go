package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func twoBoxes(t *testing.T) (*World, *RigidBody, *RigidBody) {
	t.Helper()
	w := NewWorld()
	a, err := NewBody(w, boxNode(t, "a", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), Box, Params{Mass: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBody(w, boxNode(t, "b", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), Box, Params{Mass: 1})
	if err != nil {
		t.Fatal(err)
	}
	return w, a, b
}

func TestConstraintLinksBothBodies(t *testing.T) {
	_, a, b := twoBoxes(t)

	c, err := NewConstraint(Hinge, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind() != Hinge {
		t.Errorf("kind %s, want HINGE", c.Kind())
	}
	if !c.Enabled() {
		t.Error("new constraint must start enabled")
	}
	if len(a.Constraints()) != 1 || len(b.Constraints()) != 1 {
		t.Error("constraint not registered with both bodies")
	}
	if c.BodyA() != a || c.BodyB() != b {
		t.Error("constraint bodies mismatched")
	}
}

func TestConstraintAgainstWorld(t *testing.T) {
	_, a, _ := twoBoxes(t)

	c, err := NewConstraint(Fixed, a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.BodyB() != nil {
		t.Error("world-pinned constraint must have nil second body")
	}
	if len(a.Constraints()) != 1 {
		t.Error("constraint not registered with primary body")
	}
}

func TestConstraintRejectsUnsupportedShapes(t *testing.T) {
	w, a, _ := twoBoxes(t)
	terrain := terrainBody(t, w, 0)

	if _, err := NewConstraint(Socket, terrain, nil); err == nil {
		t.Error("heightfield body must reject constraints")
	}
	if _, err := NewConstraint(Socket, a, terrain); err == nil {
		t.Error("heightfield second body must reject constraints")
	}
	if _, err := NewConstraint(Socket, nil, a); err == nil {
		t.Error("nil primary body must be rejected")
	}
}

func TestConstraintDestroyDetaches(t *testing.T) {
	_, a, b := twoBoxes(t)

	c, err := NewConstraint(Spring, a, b)
	if err != nil {
		t.Fatal(err)
	}
	c.Destroy()
	if !c.Destroyed() || c.Enabled() {
		t.Error("destroyed constraint must report destroyed and disabled")
	}
	if len(a.Constraints()) != 0 || len(b.Constraints()) != 0 {
		t.Error("destroyed constraint still attached")
	}
	c.Destroy()
}

func TestBodyDestroyDestroysConstraints(t *testing.T) {
	_, a, b := twoBoxes(t)

	c1, err := NewConstraint(Fixed, a, b)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := NewConstraint(Hinge, a, nil)
	if err != nil {
		t.Fatal(err)
	}

	a.Destroy()
	if !c1.Destroyed() || !c2.Destroyed() {
		t.Error("body destroy must destroy attached constraints")
	}
	if len(b.Constraints()) != 0 {
		t.Error("shared constraint still attached to surviving body")
	}
}

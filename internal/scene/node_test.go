package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type recordingListener struct {
	calls int
	last  *Node
}

func (r *recordingListener) TransformChanged(n *Node) {
	r.calls++
	r.last = n
}

func TestWorldMatrixComposesParents(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(mgl32.Vec3{1, 0, 0})
	child := NewNode("child")
	child.SetPosition(mgl32.Vec3{0, 2, 0})
	parent.AddChild(child)

	p := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, child.WorldMatrix())
	want := mgl32.Vec3{1, 2, 0}
	if !p.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("child world origin %v, want %v", p, want)
	}
}

func TestWorldScale(t *testing.T) {
	n := NewNode("scaled")
	n.SetScale(mgl32.Vec3{2, 3, 4})

	s := n.WorldScale()
	want := mgl32.Vec3{2, 3, 4}
	if !s.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("world scale %v, want %v", s, want)
	}
}

func TestWorldScaleWithRotation(t *testing.T) {
	n := NewNode("rotated")
	n.SetScale(mgl32.Vec3{2, 2, 2})
	n.SetRotation(mgl32.QuatRotate(float32(math.Pi/4), mgl32.Vec3{0, 1, 0}))

	s := n.WorldScale()
	want := mgl32.Vec3{2, 2, 2}
	if !s.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("world scale under rotation %v, want %v", s, want)
	}
}

func TestListenersFireOnTransformChange(t *testing.T) {
	n := NewNode("n")
	l := &recordingListener{}
	n.AddListener(l)

	n.SetPosition(mgl32.Vec3{1, 2, 3})
	if l.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", l.calls)
	}
	if l.last != n {
		t.Error("listener received wrong node")
	}

	n.RemoveListener(l)
	n.SetPosition(mgl32.Vec3{4, 5, 6})
	if l.calls != 1 {
		t.Errorf("expected no notification after removal, got %d", l.calls)
	}
}

func TestChildNotifiedOnParentChange(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	l := &recordingListener{}
	child.AddListener(l)

	parent.SetPosition(mgl32.Vec3{1, 0, 0})
	if l.calls != 1 {
		t.Errorf("expected child listener to fire on parent move, got %d calls", l.calls)
	}
}

func TestBoxMeshBounds(t *testing.T) {
	min := mgl32.Vec3{-2, 0, -3}
	max := mgl32.Vec3{2, 10, 3}
	m := NewBoxMesh(min, max)

	if m.Primitive != Triangles {
		t.Errorf("box mesh primitive %s, want TRIANGLES", m.Primitive)
	}
	if !m.Box.Min.ApproxEqualThreshold(min, 1e-6) || !m.Box.Max.ApproxEqualThreshold(max, 1e-6) {
		t.Errorf("box bounds %v..%v, want %v..%v", m.Box.Min, m.Box.Max, min, max)
	}

	wantCenter := mgl32.Vec3{0, 5, 0}
	if !m.Sphere.Center.ApproxEqualThreshold(wantCenter, 1e-6) {
		t.Errorf("sphere center %v, want %v", m.Sphere.Center, wantCenter)
	}
	wantRadius := max.Sub(wantCenter).Len()
	if math.Abs(float64(m.Sphere.Radius-wantRadius)) > 1e-5 {
		t.Errorf("sphere radius %f, want %f", m.Sphere.Radius, wantRadius)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("box mesh has %d triangles, want 12", m.TriangleCount())
	}
}

func TestTriangleCountNonTriangles(t *testing.T) {
	m := NewMesh(LineStrip, []float32{0, 0, 0, 1, 0, 0}, [][]uint32{{0, 1}})
	if m.TriangleCount() != 0 {
		t.Errorf("line strip triangle count %d, want 0", m.TriangleCount())
	}
}

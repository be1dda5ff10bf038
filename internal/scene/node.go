package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TransformListener is notified whenever a node's transform changes.
type TransformListener interface {
	TransformChanged(n *Node)
}

// Node is a scene-graph node: a named local transform with an optional
// parent and an optional model. Mutating the transform notifies
// registered listeners, which covers child nodes too since their world
// matrices depend on every ancestor.
type Node struct {
	name      string
	local     Transform
	parent    *Node
	children  []*Node
	model     *Model
	listeners []TransformListener
}

func NewNode(name string) *Node {
	return &Node{name: name, local: NewTransform()}
}

func (n *Node) Name() string { return n.name }

func (n *Node) Parent() *Node { return n.parent }

// AddChild attaches child to n. A child's world matrix is its local
// matrix pre-multiplied by the parent chain.
func (n *Node) AddChild(child *Node) {
	if child == nil || child.parent == n {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.notify()
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) Model() *Model { return n.model }

func (n *Node) SetModel(m *Model) { n.model = m }

func (n *Node) Transform() Transform { return n.local }

func (n *Node) SetTransform(t Transform) {
	n.local = t
	n.notify()
}

func (n *Node) SetPosition(p mgl32.Vec3) {
	n.local.Position = p
	n.notify()
}

func (n *Node) SetRotation(q mgl32.Quat) {
	n.local.Rotation = q
	n.notify()
}

func (n *Node) SetScale(s mgl32.Vec3) {
	n.local.Scale = s
	n.notify()
}

func (n *Node) Position() mgl32.Vec3 { return n.local.Position }

func (n *Node) Rotation() mgl32.Quat { return n.local.Rotation }

// Translate moves the node by d in local space.
func (n *Node) Translate(d mgl32.Vec3) {
	n.local.Position = n.local.Position.Add(d)
	n.notify()
}

// WorldMatrix returns the node's transform composed with its ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return n.local.Matrix()
	}
	return n.parent.WorldMatrix().Mul4(n.local.Matrix())
}

// WorldScale extracts the per-axis scale from the world matrix as the
// lengths of its basis columns.
func (n *Node) WorldScale() mgl32.Vec3 {
	m := n.WorldMatrix()
	return mgl32.Vec3{
		math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2]),
		math32.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6]),
		math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10]),
	}
}

// AddListener registers a transform-change listener. Listeners are
// compared by identity on removal.
func (n *Node) AddListener(l TransformListener) {
	if l == nil {
		return
	}
	n.listeners = append(n.listeners, l)
}

func (n *Node) RemoveListener(l TransformListener) {
	for i, x := range n.listeners {
		if x == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

func (n *Node) notify() {
	for _, l := range n.listeners {
		l.TransformChanged(n)
	}
	for _, c := range n.children {
		c.notify()
	}
}

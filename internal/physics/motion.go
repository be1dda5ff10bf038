package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/scene"
)

// MotionState bridges a simulated pose and the owning scene node. The
// body's origin sits at its center of mass; the node's origin is the
// shape's geometric origin. The stored offset is the translation from
// node origin to body origin, so the two conversions below round-trip.
type MotionState struct {
	node      *scene.Node
	offset    mgl32.Vec3
	hasOffset bool
}

func newMotionState(node *scene.Node, centerOfMassOffset *mgl32.Vec3) *MotionState {
	ms := &MotionState{node: node}
	if centerOfMassOffset != nil {
		ms.offset = *centerOfMassOffset
		ms.hasOffset = true
	}
	return ms
}

// CenterOfMassOffset returns the offset and whether one was set.
func (ms *MotionState) CenterOfMassOffset() (mgl32.Vec3, bool) {
	return ms.offset, ms.hasOffset
}

// WorldTransform returns the body pose derived from the node.
func (ms *MotionState) WorldTransform() (pos mgl32.Vec3, rot mgl32.Quat) {
	rot = ms.node.Rotation()
	pos = ms.node.Position()
	if ms.hasOffset {
		pos = pos.Add(rot.Rotate(ms.offset))
	}
	return pos, rot
}

// SetWorldTransform writes a simulated body pose back onto the node.
func (ms *MotionState) SetWorldTransform(pos mgl32.Vec3, rot mgl32.Quat) {
	if ms.hasOffset {
		pos = pos.Sub(rot.Rotate(ms.offset))
	}
	ms.node.SetRotation(rot)
	ms.node.SetPosition(pos)
}

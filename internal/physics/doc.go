// Package physics binds scene-graph nodes to rigid-body representations
// in a [World].
//
// A [RigidBody] owns a collision [Shape] sized from its node's mesh
// bounds (or from a heightmap image, or explicit capsule dimensions)
// and a [MotionState] bridge that keeps the node's transform in sync
// with the simulated pose:
//
//	w := physics.NewWorld()
//	body, err := physics.NewBody(w, node, physics.Box, physics.Params{Mass: 10})
//
// Bodies can also be built declaratively from a [Def] loaded from a
// yaml rigidbody block; see [NewBodyFromDef].
//
// The world steps bodies with per-body gravity overrides and damping
// but performs no collision detection or constraint solving; it is a
// registry and integration loop, not a solver.
package physics

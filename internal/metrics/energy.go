// Package metrics computes energy summaries for rigid bodies. The
// integrator applies damping, so total energy is a diagnostic, not a
// conserved quantity.
package metrics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/physics"
)

// KineticEnergy returns the body's translational plus rotational
// kinetic energy. Static bodies carry none.
func KineticEnergy(rb *physics.RigidBody) float32 {
	if rb.Mass() == 0 {
		return 0
	}
	v := rb.LinearVelocity()
	e := 0.5 * rb.Mass() * v.LenSqr()

	w := rb.AngularVelocity()
	inertia := rb.LocalInertia()
	for i := 0; i < 3; i++ {
		e += 0.5 * inertia[i] * w[i] * w[i]
	}
	return e
}

// PotentialEnergy returns the body's gravitational potential relative
// to the world origin, using the body's gravity override when set.
func PotentialEnergy(rb *physics.RigidBody, worldGravity mgl32.Vec3) float32 {
	if rb.Mass() == 0 {
		return 0
	}
	g := worldGravity
	if og, ok := rb.GravityOverride(); ok {
		g = og
	}
	return -rb.Mass() * g.Dot(rb.Node().Position())
}

// TotalEnergy sums kinetic and potential energy over every dynamic
// body in the world.
func TotalEnergy(w *physics.World) float32 {
	var e float32
	for _, rb := range w.Bodies() {
		e += KineticEnergy(rb) + PotentialEnergy(rb, w.Gravity())
	}
	return e
}

// EnergyTracker samples total world energy after every step. Useful
// for plotting how damping bleeds energy out of a scene.
type EnergyTracker struct {
	Samples []float32
}

func NewEnergyTracker() *EnergyTracker {
	return &EnergyTracker{}
}

// OnStep records the current total energy.
func (e *EnergyTracker) OnStep(w *physics.World, t float32) {
	e.Samples = append(e.Samples, TotalEnergy(w))
}

// MaxDrift returns the largest relative deviation from the initial
// sample; zero when fewer than two samples exist.
func (e *EnergyTracker) MaxDrift() float32 {
	if len(e.Samples) < 2 || e.Samples[0] == 0 {
		return 0
	}
	initial := e.Samples[0]
	var max float32
	for _, s := range e.Samples[1:] {
		d := (s - initial) / initial
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

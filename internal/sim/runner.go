// Package sim drives a physics world over a time span at a fixed
// timestep, recording trajectories for tracked bodies.
package sim

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/rigid/internal/physics"
)

type Config struct {
	Dt       float32
	Duration float32
}

// Result holds the sampled run: one time entry per step plus the
// initial state, and a position track per tracked body keyed by node
// name.
type Result struct {
	Times      []float32
	Tracks     map[string][]mgl32.Vec3
	StepsTaken int
}

// Runner steps a world for a duration. Tracked bodies get their node
// positions sampled every step.
type Runner struct {
	world   *physics.World
	tracked []*physics.RigidBody
}

func NewRunner(w *physics.World) *Runner {
	return &Runner{world: w}
}

// Track adds a body whose position is recorded during Run.
func (r *Runner) Track(rb *physics.RigidBody) {
	if rb != nil {
		r.tracked = append(r.tracked, rb)
	}
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// Run steps the world for the configured duration, sampling tracked
// body positions each step. A cancelled context returns the partial
// result along with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:  make([]float32, 0, steps+1),
		Tracks: make(map[string][]mgl32.Vec3, len(r.tracked)),
	}
	r.sample(result, r.world.Time())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.world.Step(cfg.Dt)
		result.StepsTaken++
		r.sample(result, r.world.Time())
	}
	return result, nil
}

// RunWithCallback steps the world, invoking callback after every step.
// The callback returning false stops the run early without error.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(t float32) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.world.Step(cfg.Dt)
		if !callback(r.world.Time()) {
			return nil
		}
	}
	return nil
}

func (r *Runner) sample(result *Result, t float32) {
	result.Times = append(result.Times, t)
	for _, rb := range r.tracked {
		name := rb.Node().Name()
		result.Tracks[name] = append(result.Tracks[name], rb.Node().Position())
	}
}

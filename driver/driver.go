// Package driver implements the per-step integrator of spec.md §4.F:
// rebuild the quadtree from the active layout level, accumulate attractive
// and repulsive forces, advance positions, adapt the step size from the
// system's energy trend, and detect convergence.
package driver

import (
	"context"
	"math"

	"github.com/vseledkin/paperlayout/force"
	"github.com/vseledkin/paperlayout/layout"
	"github.com/vseledkin/paperlayout/logging"
	"github.com/vseledkin/paperlayout/quadtree"
)

// Options configures a Driver's integrator.
type Options struct {
	Force force.Params

	// InitialStepSize is the step size used for the first iteration.
	InitialStepSize float64
	// StepGrowth multiplies the step size after an iteration whose energy
	// decreased monotonically relative to the previous one.
	StepGrowth float64
	// StepShrink multiplies the step size after an iteration whose energy
	// increased (oscillation), per spec.md §4.F.
	StepShrink float64
	// MinStepSize and MaxStepSize bound step-size adaptation.
	MinStepSize, MaxStepSize float64

	// ConvergenceMaxForce stops iteration once every node's force
	// magnitude falls below this threshold.
	ConvergenceMaxForce float64

	Logger logging.Logger
}

// DefaultOptions returns reasonable defaults grounded on the C source's
// iteration constants, suitable for a config.Config to override.
func DefaultOptions() Options {
	return Options{
		Force: force.Params{
			LinkStrength:             1,
			AntiGravityFalloffRsq:    2500,
			AntiGravityFalloffRsqInv: 1.0 / 2500,
			DoCloseRepulsion:         true,
			CloseRepulsionA:          1,
			CloseRepulsionB:          100,
			CloseRepulsionC:          1,
			CloseRepulsionD:          0,
		},
		InitialStepSize:     0.1,
		StepGrowth:          1.1,
		StepShrink:          0.5,
		MinStepSize:         1e-4,
		MaxStepSize:         5,
		ConvergenceMaxForce: 1e-3,
		Logger:              logging.NullLogger{},
	}
}

// Driver runs the force iteration over one layout.Layout level.
type Driver struct {
	opts       Options
	pool       *quadtree.Pool
	stepSize   float64
	prevEnergy float64
	haveEnergy bool
}

// New returns a Driver ready to Step an active layout level.
func New(opts Options) *Driver {
	return &Driver{
		opts:     opts,
		pool:     quadtree.NewPool(0),
		stepSize: opts.InitialStepSize,
	}
}

// StepResult summarises one iteration, per spec.md §4.F's "track max force
// magnitude and total system energy" requirement.
type StepResult struct {
	MaxForce  float64
	Energy    float64
	StepSize  float64
	Converged bool
}

// Step runs one integration step over l: rebuild the quadtree, zero
// forces, accumulate attractive and repulsive forces, advance positions by
// the current step size, and adapt the step size from the energy trend.
func (d *Driver) Step(ctx context.Context, l *layout.Layout) (StepResult, error) {
	if l == nil {
		return StepResult{}, ErrNoLayout
	}

	tree := force.BuildTree(d.pool, l)
	force.ZeroForces(l)
	force.ApplyAttractive(l, d.opts.Force)
	if err := force.ApplyRepulsive(ctx, tree, d.opts.Force); err != nil {
		return StepResult{}, err
	}

	var maxForce, energy float64
	for _, n := range l.Nodes {
		mag := math.Hypot(n.FX, n.FY)
		if mag > maxForce {
			maxForce = mag
		}
		energy += mag * mag

		if n.Mass <= 0 {
			continue
		}
		n.X += d.stepSize * n.FX / n.Mass
		n.Y += d.stepSize * n.FY / n.Mass
		n.Flags |= layout.PosValid
	}

	d.adaptStepSize(energy)

	result := StepResult{
		MaxForce:  maxForce,
		Energy:    energy,
		StepSize:  d.stepSize,
		Converged: maxForce < d.opts.ConvergenceMaxForce,
	}
	d.opts.Logger.Debug("step: maxForce=%.6f energy=%.6f stepSize=%.6f", result.MaxForce, result.Energy, result.StepSize)
	return result, nil
}

// adaptStepSize shrinks the step when energy increased since the previous
// step (oscillation) and grows it when energy decreased monotonically,
// per spec.md §4.F.
func (d *Driver) adaptStepSize(energy float64) {
	if d.haveEnergy {
		if energy > d.prevEnergy {
			d.stepSize *= d.opts.StepShrink
		} else {
			d.stepSize *= d.opts.StepGrowth
		}
		if d.stepSize < d.opts.MinStepSize {
			d.stepSize = d.opts.MinStepSize
		}
		if d.stepSize > d.opts.MaxStepSize {
			d.stepSize = d.opts.MaxStepSize
		}
	}
	d.prevEnergy = energy
	d.haveEnergy = true
}

// Run steps l until convergence or maxIterations is reached, whichever
// comes first, returning the final StepResult.
func (d *Driver) Run(ctx context.Context, l *layout.Layout, maxIterations int) (StepResult, error) {
	var result StepResult
	for i := 0; i < maxIterations; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var err error
		result, err = d.Step(ctx, l)
		if err != nil {
			return result, err
		}
		if result.Converged {
			break
		}
	}
	return result, nil
}

// PromoteToFiner propagates the converged coarse solution at l down to its
// ChildLayout and returns that finer level, or nil if l is already the
// finest level.
func PromoteToFiner(l *layout.Layout) *layout.Layout {
	if l.ChildLayout == nil {
		return nil
	}
	layout.PropagatePositionsToChildren(l)
	return l.ChildLayout
}

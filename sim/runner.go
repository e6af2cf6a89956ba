// Package sim drives a physics.Graph the way an interactive host would: it
// supplies elapsed time to each step, keeps nodes inside a viewport and
// reports progress.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TFMV/springgraph/physics"
)

// StepInfo is passed to observers after every step.
type StepInfo struct {
	Step    int
	Delta   float64
	Clamped int
	Stats   physics.Stats
}

// Runner advances a graph one tick at a time.
type Runner struct {
	Graph    *physics.Graph
	Source   DeltaSource
	Viewport Viewport
	Logger   *log.Logger

	// OnStep, when set, is called after every completed step.
	OnStep func(StepInfo)

	steps int
}

// NewRunner creates a runner for g. A nil source defaults to a wall clock
// and a nil logger to log.Default().
func NewRunner(g *physics.Graph, src DeltaSource, vp Viewport, logger *log.Logger) *Runner {
	if src == nil {
		src = NewClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Graph:    g,
		Source:   src,
		Viewport: vp,
		Logger:   logger,
	}
}

// Steps returns the number of steps completed by this runner.
func (r *Runner) Steps() int {
	return r.steps
}

// Step advances the graph by the next delta and clamps it to the viewport.
func (r *Runner) Step() (StepInfo, error) {
	dt := r.Source.Tick()

	start := time.Now()
	if err := r.Graph.Advance(dt); err != nil {
		return StepInfo{}, fmt.Errorf("step %d: %w", r.steps+1, err)
	}
	stepDuration.Observe(time.Since(start).Seconds())

	clamped := r.Viewport.Clamp(r.Graph)
	r.steps++

	info := StepInfo{
		Step:    r.steps,
		Delta:   dt,
		Clamped: clamped,
		Stats:   r.Graph.Stats(),
	}
	stepsTotal.Inc()
	clampedNodes.Add(float64(clamped))
	maxDisplacement.Set(info.Stats.MaxDisplacement)

	if r.OnStep != nil {
		r.OnStep(info)
	}
	return info, nil
}

// Run performs n steps. Cancellation is checked between steps; a step that
// has started always completes.
func (r *Runner) Run(ctx context.Context, n int) error {
	start := time.Now()
	r.Logger.Debug("simulation started",
		"nodes", r.Graph.NodeCount(),
		"links", r.Graph.LinkCount(),
		"steps", n)

	var last StepInfo
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			r.Logger.Warn("simulation interrupted", "completed", i, "requested", n)
			return err
		}
		info, err := r.Step()
		if err != nil {
			return err
		}
		last = info
	}

	r.Logger.Info("simulation finished",
		"steps", n,
		"max_displacement", last.Stats.MaxDisplacement,
		"duration", time.Since(start))
	return nil
}

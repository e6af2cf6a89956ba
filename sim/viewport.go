package sim

import (
	"math"

	"github.com/TFMV/springgraph/physics"
)

// Viewport confines node positions to a rectangle after each step.
type Viewport struct {
	Width   float64
	Height  float64
	Padding float64
}

// Enabled reports whether the viewport has an area to clamp to.
func (v Viewport) Enabled() bool {
	return v.Width > 0 && v.Height > 0
}

// ClampPoint returns p moved inside the viewport.
func (v Viewport) ClampPoint(p physics.Vec2) physics.Vec2 {
	pad := math.Min(v.Padding, math.Min(v.Width, v.Height)/2)
	return physics.Vec2{
		X: math.Max(pad, math.Min(v.Width-pad, p.X)),
		Y: math.Max(pad, math.Min(v.Height-pad, p.Y)),
	}
}

// Clamp moves every node of g inside the viewport and returns how many
// nodes were moved. A disabled viewport leaves the graph untouched.
func (v Viewport) Clamp(g *physics.Graph) int {
	if !v.Enabled() {
		return 0
	}
	moved := 0
	nodes := g.Nodes()
	for i := range nodes {
		p := nodes[i].Position()
		c := v.ClampPoint(p)
		if c != p {
			nodes[i].SetPosition(c)
			moved++
		}
	}
	return moved
}

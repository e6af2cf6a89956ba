package sim

import (
	"math"

	"github.com/TFMV/springgraph/physics"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// noiseScale spreads node indices across the noise field.
const noiseScale = 0.37

// Scatter offsets nodes that sit within physics.Epsilon of an earlier node.
// Coincident nodes exert no force on each other, so without a nudge they
// never separate. Offsets come from simplex noise seeded with seed and have
// a magnitude of at most amount; the same seed always gives the same layout.
// It returns the number of nodes moved.
func Scatter(g *physics.Graph, amount float64, seed int64) int {
	if amount <= 0 {
		return 0
	}
	noise := opensimplex.New(seed)
	nodes := g.Nodes()
	moved := 0

	for i := range nodes {
		p := nodes[i].Position()
		if !coincidesWithEarlier(nodes[:i], p) {
			continue
		}

		t := float64(i) * noiseScale
		angle := noise.Eval2(t, 0) * math.Pi
		radius := 0.5 + 0.5*math.Min(1, math.Abs(noise.Eval2(0, t+100)))
		offset := physics.V(math.Cos(angle), math.Sin(angle)).Scale(amount * radius)

		nodes[i].SetPosition(p.Add(offset))
		moved++
	}
	return moved
}

func coincidesWithEarlier(earlier []physics.Node, p physics.Vec2) bool {
	for j := range earlier {
		if physics.Dist(earlier[j].Position(), p) <= physics.Epsilon {
			return true
		}
	}
	return false
}

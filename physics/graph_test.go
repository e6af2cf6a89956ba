package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, positions []Vec2, pairs [][2]NodeID) *Graph {
	t.Helper()
	g := New()
	nodes := make([]Node, len(positions))
	for i, p := range positions {
		nodes[i] = NewNode(p)
	}
	_, err := g.AddNodes(nodes...)
	require.NoError(t, err)
	links := make([]Link, len(pairs))
	for i, p := range pairs {
		links[i] = NewLink(p[0], p[1])
	}
	require.NoError(t, g.AddLinks(links...))
	return g
}

func positions(g *Graph) []Vec2 {
	out := make([]Vec2, g.NodeCount())
	for i := range g.Nodes() {
		out[i] = g.Nodes()[i].Position()
	}
	return out
}

func TestAddNodesReturnsHandles(t *testing.T) {
	g := New()
	ids, err := g.AddNodes(NewNode(V(0, 0)), NewNode(V(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, []NodeID{0, 1}, ids)

	ids, err = g.AddNodes(NewNode(V(2, 2)))
	require.NoError(t, err)
	assert.Equal(t, []NodeID{2}, ids)
	assert.Equal(t, 3, g.NodeCount())
}

func TestAddLinksValidation(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(1, 0)}, nil)

	err := g.AddLinks(NewLink(0, 1), NewLink(0, 2))
	require.ErrorIs(t, err, ErrUnknownNode)
	assert.Zero(t, g.LinkCount(), "rejected batch must not be partially applied")

	err = g.AddLinks(NewLink(1, 1))
	require.ErrorIs(t, err, ErrSelfLoop)

	err = g.AddLinks(NewLink(-1, 0))
	require.ErrorIs(t, err, ErrUnknownNode)

	require.NoError(t, g.AddLinks(NewLink(0, 1), NewLink(1, 0)))
	assert.Equal(t, 2, g.LinkCount())
	assert.Equal(t, NodeID(1), g.Links()[1].First())
}

func TestAdvanceRejectsBadDelta(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0)}, nil)
	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, g.Advance(dt), ErrNegativeDelta)
	}
	assert.NoError(t, g.Advance(0))
}

func TestAdvanceDeterministic(t *testing.T) {
	start := []Vec2{V(0, 0), V(30, 5), V(12, 40), V(60, 60), V(61, 59)}
	pairs := [][2]NodeID{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}
	deltas := []float64{0.016, 0.02, 0.1, 0.033, 0.5, 0.016}

	a := buildGraph(t, start, pairs)
	b := buildGraph(t, start, pairs)
	for _, dt := range deltas {
		require.NoError(t, a.Advance(dt))
		require.NoError(t, b.Advance(dt))
		assert.Equal(t, positions(a), positions(b))
	}
}

func TestAttractionSymmetry(t *testing.T) {
	// Farther apart than the repulsion cutoff, so only attraction acts.
	g := buildGraph(t, []Vec2{V(0, 0), V(150, 80)}, [][2]NodeID{{0, 1}})
	before := positions(g)
	mid := before[0].Add(before[1]).Scale(0.5)

	require.NoError(t, g.Advance(0.1))
	after := positions(g)

	moveA := after[0].Sub(before[0])
	moveB := after[1].Sub(before[1])
	assert.InDelta(t, moveA.Len(), moveB.Len(), 1e-9)
	assert.InDelta(t, 0, moveA.Add(moveB).Len(), 1e-9)
	assert.InDelta(t, 10, moveA.Len(), 1e-9) // 200 * 0.5 * 0.1

	newMid := after[0].Add(after[1]).Scale(0.5)
	assert.InDelta(t, mid.X, newMid.X, 1e-9)
	assert.InDelta(t, mid.Y, newMid.Y, 1e-9)
	assert.Less(t, Dist(after[0], after[1]), Dist(before[0], before[1]))
}

func TestRepulsionMonotonic(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(20, 0)}, nil)
	cutoff := g.Params().RepulsionDistance

	prev := Dist(g.Nodes()[0].Position(), g.Nodes()[1].Position())
	for i := 0; i < 200; i++ {
		require.NoError(t, g.Advance(0.05))
		d := Dist(g.Nodes()[0].Position(), g.Nodes()[1].Position())
		if prev < cutoff-1e-6 {
			assert.Greater(t, d, prev, "step %d", i)
		}
		assert.LessOrEqual(t, d, cutoff+1e-9)
		prev = d
	}
	assert.InDelta(t, cutoff, prev, 1e-3)
}

func TestRepulsionBeyondCutoff(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(100.5, 0)}, nil)
	before := positions(g)
	for i := 0; i < 10; i++ {
		require.NoError(t, g.Advance(0.1))
	}
	assert.Equal(t, before, positions(g))
	assert.Zero(t, g.Stats().MaxDisplacement)
}

func TestRepulsionMagnitude(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(0, 25)}, nil)
	require.NoError(t, g.Advance(0.1))
	// 200 * (100-25)/100 * 0.1 = 15 units each, pointing away.
	assert.InDelta(t, -15, g.Nodes()[0].Position().Y, 1e-9)
	assert.InDelta(t, 40, g.Nodes()[1].Position().Y, 1e-9)
	assert.Equal(t, 1, g.Stats().Steps)
	assert.InDelta(t, 15, g.Stats().MaxDisplacement, 1e-9)
	assert.InDelta(t, 30, g.Stats().SumDisplacement, 1e-9)
}

func TestCoincidentNodesStayFinite(t *testing.T) {
	tests := []struct {
		name  string
		pairs [][2]NodeID
	}{
		{"Unlinked", nil},
		{"Linked", [][2]NodeID{{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, []Vec2{V(42, 42), V(42, 42)}, tt.pairs)
			for i := 0; i < 100; i++ {
				require.NoError(t, g.Advance(0.1))
			}
			for _, p := range positions(g) {
				assert.True(t, p.IsFinite())
				assert.Equal(t, V(42, 42), p)
			}
		})
	}
}

func TestChainConvergesColinear(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(10, 0), V(20, 0)}, [][2]NodeID{{0, 1}, {1, 2}})
	for i := 0; i < 100; i++ {
		require.NoError(t, g.Advance(0.1))
		p := positions(g)
		for _, v := range p {
			assert.InDelta(t, 0, v.Y, 1e-9)
		}
		assert.Less(t, p[0].X, p[1].X)
		assert.Less(t, p[1].X, p[2].X)
	}

	p := positions(g)
	assert.InDelta(t, 50, p[1].X-p[0].X, 1e-3)
	assert.InDelta(t, 50, p[2].X-p[1].X, 1e-3)
}

func TestHostCanMoveNodes(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(1, 1)}, nil)
	g.Nodes()[1].SetPosition(V(500, 500))
	n, err := g.Node(1)
	require.NoError(t, err)
	assert.Equal(t, V(500, 500), n.Position())

	_, err = g.Node(5)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestDestroy(t *testing.T) {
	g := buildGraph(t, []Vec2{V(0, 0), V(1, 1)}, [][2]NodeID{{0, 1}})
	g.Destroy()

	assert.True(t, g.Destroyed())
	assert.Zero(t, g.NodeCount())
	assert.Zero(t, g.LinkCount())
	assert.ErrorIs(t, g.Advance(0.1), ErrDestroyed)
	assert.ErrorIs(t, g.AddLinks(), ErrDestroyed)
	_, err := g.AddNodes(NewNode(V(0, 0)))
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	bad := []Params{
		{RepulsionDistance: 0, RepulsionForce: 1, AttractionForce: 1},
		{RepulsionDistance: 1, RepulsionForce: -1, AttractionForce: 1},
		{RepulsionDistance: 1, RepulsionForce: 1, AttractionForce: math.NaN()},
	}
	for _, p := range bad {
		assert.Error(t, p.Validate())
	}
}

func TestWithParams(t *testing.T) {
	p := Params{RepulsionDistance: 10, RepulsionForce: 0, AttractionForce: 40}
	g := New(WithParams(p))
	assert.Equal(t, p, g.Params())
}

// Package physics implements the pairwise force simulation that lays out a
// graph in 2D. Nodes repel each other within a cutoff distance, linked nodes
// attract each other, and every call to Advance integrates one step.
//
// The engine holds no timing state and never draws anything: the host feeds
// elapsed time into Advance and reads positions back through Nodes.
package physics

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the distance at or below which two points are treated as
// coincident and exert no force on each other.
const Epsilon = 1e-9

var (
	// ErrDestroyed is returned by any mutating call made after Destroy.
	ErrDestroyed = errors.New("graph destroyed")

	// ErrNegativeDelta is returned by Advance for a negative or non-finite step.
	ErrNegativeDelta = errors.New("delta time must be finite and non-negative")

	// ErrUnknownNode is returned when a link endpoint is not part of the graph.
	ErrUnknownNode = errors.New("link references unknown node")

	// ErrSelfLoop is returned when both link endpoints are the same node.
	ErrSelfLoop = errors.New("link connects a node to itself")
)

// Params are the force model constants.
type Params struct {
	RepulsionDistance float64 // cutoff beyond which nodes do not repel
	RepulsionForce    float64 // repulsion strength at zero distance
	AttractionForce   float64 // attraction strength along each link
}

// DefaultParams returns the standard force model.
func DefaultParams() Params {
	return Params{
		RepulsionDistance: 100,
		RepulsionForce:    200,
		AttractionForce:   200,
	}
}

// Validate reports whether all constants are usable.
func (p Params) Validate() error {
	if !(p.RepulsionDistance > 0) || math.IsInf(p.RepulsionDistance, 0) {
		return fmt.Errorf("repulsion distance must be positive, got %v", p.RepulsionDistance)
	}
	if p.RepulsionForce < 0 || math.IsNaN(p.RepulsionForce) || math.IsInf(p.RepulsionForce, 0) {
		return fmt.Errorf("repulsion force must be non-negative, got %v", p.RepulsionForce)
	}
	if p.AttractionForce < 0 || math.IsNaN(p.AttractionForce) || math.IsInf(p.AttractionForce, 0) {
		return fmt.Errorf("attraction force must be non-negative, got %v", p.AttractionForce)
	}
	return nil
}

// Stats describes the most recent Advance call.
type Stats struct {
	Steps           int     // number of completed Advance calls
	MaxDisplacement float64 // largest per-node move in the last step
	SumDisplacement float64 // sum of all per-node moves in the last step
}

// Graph owns a set of nodes and the links between them and advances the
// simulation. A Graph is not safe for concurrent use.
type Graph struct {
	params    Params
	nodes     []Node
	links     []Link
	forces    [][]Vec2
	stats     Stats
	destroyed bool
}

// Option configures a Graph.
type Option func(*Graph)

// WithParams replaces the default force model.
func WithParams(p Params) Option {
	return func(g *Graph) {
		g.params = p
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{params: DefaultParams()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params returns the force model constants used by the graph.
func (g *Graph) Params() Params {
	return g.params
}

// AddNodes appends nodes and returns their handles in the same order.
func (g *Graph) AddNodes(nodes ...Node) ([]NodeID, error) {
	if g.destroyed {
		return nil, ErrDestroyed
	}
	ids := make([]NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = NodeID(len(g.nodes))
		g.nodes = append(g.nodes, n)
	}
	return ids, nil
}

// AddLinks appends links. Either every link is added or none is: an unknown
// endpoint or a self-loop rejects the whole batch.
func (g *Graph) AddLinks(links ...Link) error {
	if g.destroyed {
		return ErrDestroyed
	}
	for i, l := range links {
		if !g.has(l.first) || !g.has(l.second) {
			return fmt.Errorf("link %d (%d-%d): %w", i, l.first, l.second, ErrUnknownNode)
		}
		if l.first == l.second {
			return fmt.Errorf("link %d (%d-%d): %w", i, l.first, l.second, ErrSelfLoop)
		}
	}
	g.links = append(g.links, links...)
	return nil
}

// has reports whether id is a handle of this graph.
func (g *Graph) has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Nodes returns the node slice itself, indexed by NodeID. Hosts may call
// SetPosition on its elements between steps but must not append to it.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Node returns the node with the given handle.
func (g *Graph) Node(id NodeID) (*Node, error) {
	if !g.has(id) {
		return nil, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return &g.nodes[id], nil
}

// Links returns the links in insertion order. The slice must not be modified.
func (g *Graph) Links() []Link {
	return g.links
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

// Stats returns statistics about the last step.
func (g *Graph) Stats() Stats {
	return g.stats
}

// Destroyed reports whether Destroy has been called.
func (g *Graph) Destroyed() bool {
	return g.destroyed
}

// Destroy releases all nodes and links. The graph is unusable afterwards:
// Advance, AddNodes and AddLinks return ErrDestroyed.
func (g *Graph) Destroy() {
	g.nodes = nil
	g.links = nil
	g.forces = nil
	g.stats = Stats{}
	g.destroyed = true
}

// Advance performs one simulation step scaled by dt seconds.
func (g *Graph) Advance(dt float64) error {
	if g.destroyed {
		return ErrDestroyed
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("advance by %v: %w", dt, ErrNegativeDelta)
	}

	g.resetForces()

	// Repulsion: each ordered pair contributes to its first node only.
	for i := range g.nodes {
		for j := range g.nodes {
			if i == j {
				continue
			}
			if f, ok := g.repulsion(g.nodes[i].position, g.nodes[j].position, dt); ok {
				g.forces[i] = append(g.forces[i], f)
			}
		}
	}

	// Attraction: equal and opposite along every link.
	for _, l := range g.links {
		if f, ok := g.attraction(g.nodes[l.first].position, g.nodes[l.second].position, dt); ok {
			g.forces[l.first] = append(g.forces[l.first], f.Neg())
			g.forces[l.second] = append(g.forces[l.second], f)
		}
	}

	var maxMove, sumMove float64
	for i := range g.nodes {
		move := g.nodes[i].ApplyForces(g.forces[i]).Len()
		sumMove += move
		if move > maxMove {
			maxMove = move
		}
	}

	g.stats = Stats{
		Steps:           g.stats.Steps + 1,
		MaxDisplacement: maxMove,
		SumDisplacement: sumMove,
	}
	return nil
}

// resetForces empties every accumulator while keeping its capacity.
func (g *Graph) resetForces() {
	if cap(g.forces) < len(g.nodes) {
		g.forces = make([][]Vec2, len(g.nodes))
	}
	g.forces = g.forces[:len(g.nodes)]
	for i := range g.forces {
		g.forces[i] = g.forces[i][:0]
	}
}

// repulsion returns the force a node at a feels from a node at b.
func (g *Graph) repulsion(a, b Vec2, dt float64) (Vec2, bool) {
	delta := a.Sub(b)
	dist := delta.Len()
	if dist > g.params.RepulsionDistance || dist <= Epsilon {
		return Vec2{}, false
	}
	falloff := (g.params.RepulsionDistance - dist) / g.params.RepulsionDistance
	return delta.Div(dist).Scale(g.params.RepulsionForce * falloff * dt), true
}

// attraction returns the force applied to the second endpoint of a link;
// the first endpoint receives its negation.
func (g *Graph) attraction(first, second Vec2, dt float64) (Vec2, bool) {
	delta := first.Sub(second)
	dist := delta.Len()
	if dist <= Epsilon {
		return Vec2{}, false
	}
	return delta.Div(dist).Scale(g.params.AttractionForce * 0.5 * dt), true
}

package models

import (
	"fmt"
	"math"
)

// FindNodeByID returns a node by its ID
func (g *Graph) FindNodeByID(id string) (*Node, error) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("node with ID %s not found", id)
}

// FindEdgeByID returns an edge by its ID
func (g *Graph) FindEdgeByID(id string) (*Edge, error) {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i], nil
		}
	}
	return nil, fmt.Errorf("edge with ID %s not found", id)
}

// Endpoints resolves both ends of an edge
func (g *Graph) Endpoints(e Edge) (*Node, *Node, error) {
	src, err := g.FindNodeByID(e.Source)
	if err != nil {
		return nil, nil, err
	}
	dst, err := g.FindNodeByID(e.Target)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

// Bounds is an axis-aligned bounding box
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width of the box
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height of the box
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the box enclosing every node. An empty graph yields the
// zero box.
func (g *Graph) Bounds() Bounds {
	if len(g.Nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range g.Nodes {
		b.MinX = math.Min(b.MinX, n.X)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxX = math.Max(b.MaxX, n.X)
		b.MaxY = math.Max(b.MaxY, n.Y)
	}
	return b
}

// Degree returns the number of edges touching the node with the given ID
func (g *Graph) Degree(id string) int {
	d := 0
	for _, e := range g.Edges {
		if e.Source == id || e.Target == id {
			d++
		}
	}
	return d
}

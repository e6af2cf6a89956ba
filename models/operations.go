package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/TFMV/springgraph/physics"
)

const (
	defaultNodeSize  = 4.0 // radius used when drawing nodes
	defaultNodeColor = "#000000"
	defaultEdgeColor = "#000000"
)

// NewNode creates a new snapshot node with a unique ID
func NewNode(index int, label string, x, y float64) *Node {
	if label == "" {
		label = strconv.Itoa(index)
	}
	return &Node{
		ID:    uuid.New().String(),
		Index: index,
		Label: label,
		Size:  defaultNodeSize,
		Color: defaultNodeColor,
		X:     x,
		Y:     y,
	}
}

// NewEdge creates a new snapshot edge with a unique ID
func NewEdge(source, target *Node) *Edge {
	return &Edge{
		ID:     uuid.New().String(),
		Source: source.ID,
		Target: target.ID,
		Length: physics.Dist(physics.V(source.X, source.Y), physics.V(target.X, target.Y)),
		Color:  defaultEdgeColor,
	}
}

// NewGraph creates an empty snapshot with a unique ID
func NewGraph(name string, width, height float64) *Graph {
	return &Graph{
		ID:        uuid.New().String(),
		Name:      name,
		Nodes:     []Node{},
		Edges:     []Edge{},
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
	}
}

// AddNode appends a node to the snapshot
func (g *Graph) AddNode(node *Node) {
	g.Nodes = append(g.Nodes, *node)
}

// AddEdge appends an edge to the snapshot
func (g *Graph) AddEdge(edge *Edge) {
	g.Edges = append(g.Edges, *edge)
}

// Snapshot copies the current state of a physics graph. labels is indexed
// by NodeID; missing labels default to the 1-based node index.
func Snapshot(name string, pg *physics.Graph, labels []string, width, height float64) *Graph {
	g := NewGraph(name, width, height)
	g.Step = pg.Stats().Steps

	nodes := pg.Nodes()
	for i := range nodes {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		p := nodes[i].Position()
		g.AddNode(NewNode(i+1, label, p.X, p.Y))
	}
	for _, l := range pg.Links() {
		g.AddEdge(NewEdge(&g.Nodes[l.First()], &g.Nodes[l.Second()]))
	}
	return g
}

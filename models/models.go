// Package models provides the read-only snapshot types hosts use to export
// and render a layout. A snapshot is a copy: mutating it never affects the
// simulation it was taken from.
package models

import (
	"time"
)

// Node is a positioned vertex in a snapshot
type Node struct {
	ID    string  `json:"id"`
	Index int     `json:"index"` // 1-based position in load order
	Label string  `json:"label"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge is an undirected link between two snapshot nodes
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"` // ID of the first endpoint
	Target string  `json:"target"` // ID of the second endpoint
	Length float64 `json:"length"`
	Color  string  `json:"color"`
}

// Graph is a snapshot of a layout at a given step
type Graph struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Step      int       `json:"step"`
	CreatedAt time.Time `json:"created_at"`
}

// Package ingest turns graph descriptions into physics graphs. Every loader
// validates the whole input before constructing anything, so callers get
// either a complete graph or an *Error.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TFMV/springgraph/physics"
)

// Result is a loaded graph together with display labels for its nodes,
// indexed by physics.NodeID.
type Result struct {
	Graph  *physics.Graph
	Labels []string
}

// DataProcessor defines the interface that all input formats implement
type DataProcessor interface {
	// ProcessData takes raw bytes and returns a validated graph
	ProcessData(data []byte) (*Result, error)

	// GetName returns the name of the processor
	GetName() string
}

// AdjacencyProcessor handles the whitespace-delimited adjacency list format
type AdjacencyProcessor struct {
	opts Options
}

// NewAdjacencyProcessor creates an adjacency list processor
func NewAdjacencyProcessor(opts Options) *AdjacencyProcessor {
	return &AdjacencyProcessor{opts: opts}
}

// GetName returns the name of the processor
func (p *AdjacencyProcessor) GetName() string {
	return "Adjacency Processor"
}

// ProcessData parses adjacency list text
func (p *AdjacencyProcessor) ProcessData(data []byte) (*Result, error) {
	g, err := ParseAdjacency(bytes.NewReader(data), p.opts)
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Labels: indexLabels(g.NodeCount())}, nil
}

// JSONProcessor handles JSON documents of the form
//
//	{"nodes": [{"x": 0, "y": 0, "label": "a"}], "links": [{"source": 1, "target": 2}]}
//
// Link endpoints are 1-based like the adjacency format.
type JSONProcessor struct {
	opts Options
}

// NewJSONProcessor creates a JSON processor
func NewJSONProcessor(opts Options) *JSONProcessor {
	return &JSONProcessor{opts: opts}
}

// GetName returns the name of the processor
func (p *JSONProcessor) GetName() string {
	return "JSON Processor"
}

// ProcessData parses a JSON document
func (p *JSONProcessor) ProcessData(data []byte) (*Result, error) {
	var doc struct {
		Nodes []struct {
			X     *float64 `json:"x"`
			Y     *float64 `json:"y"`
			Label string   `json:"label"`
		} `json:"nodes"`
		Links []struct {
			Source int `json:"source"`
			Target int `json:"target"`
		} `json:"links"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapError(KindMalformedInput, 0, err, "parse JSON")
	}

	nodes := make([]physics.Node, len(doc.Nodes))
	labels := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n.X == nil || n.Y == nil {
			return nil, newError(KindMalformedInput, 0, "node %d is missing a coordinate", i+1)
		}
		if math.IsNaN(*n.X) || math.IsInf(*n.X, 0) || math.IsNaN(*n.Y) || math.IsInf(*n.Y, 0) {
			return nil, newError(KindMalformedInput, 0, "node %d has a non-finite coordinate", i+1)
		}
		nodes[i] = p.opts.newNode(physics.V(*n.X, *n.Y))
		labels[i] = n.Label
		if labels[i] == "" {
			labels[i] = strconv.Itoa(i + 1)
		}
	}

	count := len(nodes)
	links := make([]physics.Link, len(doc.Links))
	for i, l := range doc.Links {
		if l.Source < 1 || l.Source > count || l.Target < 1 || l.Target > count {
			return nil, newError(KindInvalidReference, 0, "link %d (%d-%d) out of range [1, %d]", i+1, l.Source, l.Target, count)
		}
		if l.Source == l.Target {
			return nil, newError(KindInvalidReference, 0, "link %d connects node %d to itself", i+1, l.Source)
		}
		links[i] = physics.NewLink(physics.NodeID(l.Source-1), physics.NodeID(l.Target-1))
	}

	g, err := assemble(p.opts, nodes, links)
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Labels: labels}, nil
}

// GetProcessor returns the processor for a format name ("adjacency", "json")
func GetProcessor(format string, opts Options) (DataProcessor, error) {
	switch strings.ToLower(format) {
	case "", "adjacency", "txt":
		return NewAdjacencyProcessor(opts), nil
	case "json":
		return NewJSONProcessor(opts), nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// FormatForPath guesses the input format from a file extension.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "adjacency"
}

// LoadFile reads and parses the file at path.
func LoadFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	p, err := GetProcessor(FormatForPath(path), opts)
	if err != nil {
		return nil, err
	}
	return p.ProcessData(data)
}

func indexLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}

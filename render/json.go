package render

import (
	"encoding/json"
	"time"

	"github.com/TFMV/springgraph/models"
)

// JSONRenderer outputs the snapshot as JSON
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description returns a description of the renderer
func (r *JSONRenderer) Description() string {
	return "Renders the layout as JSON data for machine consumption or custom visualizations"
}

// Render creates a JSON representation of the graph
func (r *JSONRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	type jsonNode struct {
		ID    string  `json:"id"`
		Index int     `json:"index"`
		Label string  `json:"label"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
	}

	type jsonLink struct {
		Source int     `json:"source"` // 1-based, matching the input formats
		Target int     `json:"target"`
		Length float64 `json:"length"`
	}

	type jsonGraph struct {
		Nodes    []jsonNode     `json:"nodes"`
		Links    []jsonLink     `json:"links"`
		Metadata map[string]any `json:"metadata"`
	}

	out := jsonGraph{
		Nodes: make([]jsonNode, 0, len(graph.Nodes)),
		Links: make([]jsonLink, 0, len(graph.Edges)),
		Metadata: map[string]any{
			"id":        graph.ID,
			"name":      graph.Name,
			"step":      graph.Step,
			"width":     options.Width,
			"height":    options.Height,
			"nodeCount": len(graph.Nodes),
			"linkCount": len(graph.Edges),
		},
	}
	if options.Timestamp {
		out.Metadata["timestamp"] = time.Now().Format(time.RFC3339)
	}

	for _, node := range graph.Nodes {
		out.Nodes = append(out.Nodes, jsonNode{
			ID:    node.ID,
			Index: node.Index,
			Label: node.Label,
			X:     node.X,
			Y:     node.Y,
		})
	}

	for _, edge := range graph.Edges {
		src, dst, err := graph.Endpoints(edge)
		if err != nil {
			return nil, err
		}
		out.Links = append(out.Links, jsonLink{
			Source: src.Index,
			Target: dst.Index,
			Length: edge.Length,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

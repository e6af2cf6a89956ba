package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/TFMV/springgraph/models"
)

// AdjacencyRenderer writes the snapshot back in the adjacency list input
// format, so a layout can be saved and resumed later.
type AdjacencyRenderer struct{}

// Name returns the name of the renderer
func (r *AdjacencyRenderer) Name() string {
	return "Adjacency Renderer"
}

// Description returns a description of the renderer
func (r *AdjacencyRenderer) Description() string {
	return "Writes current positions and links in the adjacency list input format"
}

// Render creates the adjacency list text
func (r *AdjacencyRenderer) Render(graph *models.Graph, _ *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%d\n", len(graph.Nodes))
	for _, node := range graph.Nodes {
		buf.WriteString(strconv.FormatFloat(node.X, 'g', -1, 64))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatFloat(node.Y, 'g', -1, 64))
		buf.WriteByte('\n')
	}

	for _, edge := range graph.Edges {
		src, dst, err := graph.Endpoints(edge)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", edge.ID, err)
		}
		fmt.Fprintf(&buf, "%d %d\n", src.Index, dst.Index)
	}
	return buf.Bytes(), nil
}

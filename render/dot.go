package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/TFMV/springgraph/models"
)

// DOTRenderer outputs Graphviz DOT format with pinned positions
type DOTRenderer struct{}

// Name returns the name of the renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description returns a description of the renderer
func (r *DOTRenderer) Description() string {
	return "Renders the layout in Graphviz DOT format; positions are pinned for neato -n"
}

// Render creates a DOT representation of the graph. Graphviz uses a y-up
// coordinate system, so y is flipped against the viewport height.
func (r *DOTRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=%q];\n", options.Background)
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#000000\", fixedsize=true, width=0.1, label=\"\"];\n")

	for _, node := range graph.Nodes {
		fmt.Fprintf(&buf, "  n%d [xlabel=%s, pos=\"%g,%g!\"];\n",
			node.Index, strconv.Quote(node.Label), node.X, options.Height-node.Y)
	}

	for _, edge := range graph.Edges {
		src, dst, err := graph.Endpoints(edge)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", edge.ID, err)
		}
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", src.Index, dst.Index)
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

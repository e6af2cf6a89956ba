package render

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/TFMV/springgraph/models"
)

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer
func (r *SVGRenderer) Description() string {
	return "Renders the layout as Scalable Vector Graphics: black nodes joined by black lines"
}

// Render creates an SVG representation of the graph
func (r *SVGRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, options.Width, options.Height, options.Width, options.Height, options.Background)

	// Links first so nodes sit on top of them.
	for _, edge := range graph.Edges {
		src, dst, err := graph.Endpoints(edge)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", edge.ID, err)
		}
		color := edge.Color
		if color == "" {
			color = "#000000"
		}
		fmt.Fprintf(&buf, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"/>
`, src.X, src.Y, dst.X, dst.Y, color, options.EdgeWidth)
	}

	for _, node := range graph.Nodes {
		radius := node.Size
		if radius <= 0 {
			radius = options.NodeSize
		}
		color := node.Color
		if color == "" {
			color = "#000000"
		}
		fmt.Fprintf(&buf, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>
`, node.X, node.Y, radius, color)

		if options.ShowLabels && node.Label != "" {
			fmt.Fprintf(&buf, `<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="#333333" text-anchor="middle">%s</text>
`, node.X, node.Y+radius+options.FontSize+2, options.FontSize, html.EscapeString(node.Label))
		}
	}

	if options.Title != "" {
		fmt.Fprintf(&buf, `<text x="5" y="15" font-family="sans-serif" font-size="10" fill="#808080">%s</text>
`, html.EscapeString(options.Title))
	}
	if options.Timestamp {
		fmt.Fprintf(&buf, `<text x="5" y="%g" font-family="sans-serif" font-size="8" fill="#808080">%s</text>
`, options.Height-5, time.Now().Format("2006-01-02 15:04:05"))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// Package render draws layout snapshots. Renderers only read models.Graph;
// they never touch the simulation.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TFMV/springgraph/models"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format     string  // Output format (svg, ascii, json, dot, adjacency)
	Width      float64 // Width of the viewport in layout units
	Height     float64 // Height of the viewport in layout units
	Background string  // Background color
	NodeSize   float64 // Default node radius
	EdgeWidth  float64 // Default edge width
	FontSize   float64 // Font size for labels
	ShowLabels bool    // Show node labels
	Timestamp  bool    // Include a timestamp in the output
	Columns    int     // ASCII grid width; 0 derives it from Width
	Rows       int     // ASCII grid height; 0 derives it from Height
	Title      string  // Optional title
}

// Renderer interface defines methods that all rendering backends must implement
type Renderer interface {
	// Render creates a representation of the graph using the provided options
	Render(graph *models.Graph, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer
	Name() string

	// Description returns a description of the renderer
	Description() string
}

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      800,
		Height:     600,
		Background: "#ffffff",
		NodeSize:   4.0,
		EdgeWidth:  1.0,
		FontSize:   10.0,
		ShowLabels: false,
	}
}

var renderers = map[string]func() Renderer{
	"svg":       func() Renderer { return &SVGRenderer{} },
	"ascii":     func() Renderer { return &ASCIIRenderer{} },
	"json":      func() Renderer { return &JSONRenderer{} },
	"dot":       func() Renderer { return &DOTRenderer{} },
	"adjacency": func() Renderer { return &AdjacencyRenderer{} },
}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	newRenderer, ok := renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return newRenderer(), nil
}

// Formats lists the supported output formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for f := range renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Extension returns the conventional file extension for a format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "svg":
		return ".svg"
	case "json":
		return ".json"
	case "dot":
		return ".dot"
	default:
		return ".txt"
	}
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

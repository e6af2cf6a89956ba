package render

import (
	"strings"
	"time"

	"github.com/TFMV/springgraph/models"
)

// ASCIIRenderer outputs ASCII art format
type ASCIIRenderer struct{}

// Name returns the name of the renderer
func (r *ASCIIRenderer) Name() string {
	return "ASCII Renderer"
}

// Description returns a description of the renderer
func (r *ASCIIRenderer) Description() string {
	return "Renders the layout as ASCII art for terminal or text-based output"
}

// Render creates an ASCII representation of the graph
func (r *ASCIIRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	width := options.Columns
	if width <= 0 {
		width = max(int(options.Width/10), 40)
	}
	height := options.Rows
	if height <= 0 {
		height = max(int(options.Height/20), 20)
	}
	width = max(width, 3)
	height = max(height, 3)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for i := 0; i < width; i++ {
		grid[0][i] = '-'
		grid[height-1][i] = '-'
	}
	for i := 0; i < height; i++ {
		grid[i][0] = '|'
		grid[i][width-1] = '|'
	}
	grid[0][0], grid[0][width-1] = '+', '+'
	grid[height-1][0], grid[height-1][width-1] = '+', '+'

	// Map layout coordinates onto the interior of the border.
	toCell := func(x, y float64) (int, int) {
		cx, cy := 1, 1
		if options.Width > 0 {
			cx = int(x*float64(width-2)/options.Width) + 1
		}
		if options.Height > 0 {
			cy = int(y*float64(height-2)/options.Height) + 1
		}
		return clamp(cx, 1, width-2), clamp(cy, 1, height-2)
	}

	for _, edge := range graph.Edges {
		src, dst, err := graph.Endpoints(edge)
		if err != nil {
			continue
		}
		x1, y1 := toCell(src.X, src.Y)
		x2, y2 := toCell(dst.X, dst.Y)
		drawLine(grid, x1, y1, x2, y2)
	}

	for _, node := range graph.Nodes {
		x, y := toCell(node.X, node.Y)
		grid[y][x] = 'O'

		if options.ShowLabels && node.Label != "" && y+1 < height-1 {
			for i, c := range []rune(node.Label) {
				if x+i >= width-1 {
					break
				}
				grid[y+1][x+i] = c
			}
		}
	}

	if options.Title != "" && height > 3 {
		for i, c := range []rune(options.Title) {
			if i+2 >= width-1 {
				break
			}
			grid[1][i+2] = c
		}
	}

	if options.Timestamp && height > 4 {
		for i, c := range time.Now().Format("2006-01-02 15:04") {
			if i+2 >= width-1 {
				break
			}
			grid[height-2][i+2] = c
		}
	}

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}
	return []byte(result.String()), nil
}

// drawLine rasterizes a segment with Bresenham's algorithm, leaving node
// cells to be drawn afterwards.
func drawLine(grid [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	var ch rune
	switch {
	case dy == 0:
		ch = '-'
	case dx == 0:
		ch = '|'
	case sx == sy:
		ch = '\\'
	default:
		ch = '/'
	}

	err := dx + dy
	for {
		if grid[y1][x1] == ' ' {
			grid[y1][x1] = ch
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

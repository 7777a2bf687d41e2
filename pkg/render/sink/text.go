package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/palette"
)

// TextOption configures terminal rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	theme   palette.Theme
	borders bool
	plain   bool
}

// WithTextTheme sets the colours used for palette entries.
func WithTextTheme(t palette.Theme) TextOption { return func(r *textRenderer) { r.theme = t } }

// WithoutTextBorders disables the black cell drawn where two rectangles meet.
func WithoutTextBorders() TextOption { return func(r *textRenderer) { r.borders = false } }

// WithTextPlain renders one letter per cell (w, b, r, y and # for borders)
// instead of coloured blocks.
func WithTextPlain() TextOption { return func(r *textRenderer) { r.plain = true } }

var plainGlyphs = map[palette.Color]byte{
	palette.White:  'w',
	palette.Blue:   'b',
	palette.Red:    'r',
	palette.Yellow: 'y',
}

const borderGlyph = '#'

// RenderText draws the layout as a cols×rows grid of terminal cells. Each
// cell takes the colour of the rectangle under its centre; where several
// rectangles cover a cell the last one in layout order wins. Cells along
// the right or bottom edge of a rectangle are drawn as borders.
//
// Terminal cells are roughly twice as tall as they are wide, so callers
// wanting a square image should pass cols ≈ 2*rows.
func RenderText(l layout.Layout, cols, rows int, opts ...TextOption) string {
	r := textRenderer{theme: palette.DefaultTheme(), borders: true}
	for _, opt := range opts {
		opt(&r)
	}
	if cols <= 0 || rows <= 0 {
		return ""
	}

	grid := cellGrid(l, cols, rows)
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		line := make([]cell, cols)
		for col := 0; col < cols; col++ {
			line[col] = r.cellAt(l, grid, col, row)
		}
		sb.WriteString(r.renderLine(line))
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// cell is one resolved terminal cell.
type cell struct {
	color  palette.Color
	border bool
}

func (r *textRenderer) cellAt(l layout.Layout, grid [][]int, col, row int) cell {
	idx := grid[row][col]
	c := cell{color: palette.White}
	if idx >= 0 {
		c.color = l.Rects[idx].Color
	}
	if r.borders && idx >= 0 {
		if col+1 < len(grid[row]) && grid[row][col+1] != idx {
			c.border = true
		}
		if row+1 < len(grid) && grid[row+1][col] != idx {
			c.border = true
		}
	}
	return c
}

// renderLine groups runs of identical cells so each run is styled once.
func (r *textRenderer) renderLine(line []cell) string {
	var sb strings.Builder
	for start := 0; start < len(line); {
		end := start + 1
		for end < len(line) && line[end] == line[start] {
			end++
		}
		sb.WriteString(r.renderRun(line[start], end-start))
		start = end
	}
	return sb.String()
}

func (r *textRenderer) renderRun(c cell, n int) string {
	if r.plain {
		glyph := plainGlyphs[c.color]
		if c.border {
			glyph = borderGlyph
		}
		return strings.Repeat(string(glyph), n)
	}
	bg := r.theme.Lipgloss(c.color)
	if c.border {
		bg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", n))
}

// cellGrid maps every cell centre to the index of the last rectangle that
// covers it, or -1.
func cellGrid(l layout.Layout, cols, rows int) [][]int {
	half := l.Size / 2
	cw := l.Size / float64(cols)
	ch := l.Size / float64(rows)

	grid := make([][]int, rows)
	for row := range grid {
		grid[row] = make([]int, cols)
		y := half - (float64(row)+0.5)*ch
		for col := range grid[row] {
			x := -half + (float64(col)+0.5)*cw
			grid[row][col] = rectAt(l.Rects, x, y)
		}
	}
	return grid
}

func rectAt(rects []layout.Rect, x, y float64) int {
	for i := len(rects) - 1; i >= 0; i-- {
		r := rects[i]
		if x >= r.Left() && x < r.Right() && y >= r.Bottom() && y < r.Top() {
			return i
		}
	}
	return -1
}

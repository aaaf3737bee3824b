package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

const yAxisWidth = 10

// ChartSeries is one plotted line
type ChartSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
	Glyph  rune
}

// LineChart plots yearly series on a character canvas. Marker, when
// non-negative, draws a vertical guide at that point index.
type LineChart struct {
	Title  string
	Series []ChartSeries
	Labels []string
	Width  int
	Height int
	Marker int
}

// NewLineChart creates an empty chart with room for a 60x12 plot
func NewLineChart(title string) *LineChart {
	return &LineChart{Title: title, Width: 60, Height: 12, Marker: -1}
}

// AddSeries appends a line. Glyphs cycle through a fixed set.
func (c *LineChart) AddSeries(name string, points []float64, color lipgloss.Color) *LineChart {
	glyphs := []rune{'●', '■', '▲', '♦'}
	c.Series = append(c.Series, ChartSeries{
		Name:   name,
		Points: points,
		Color:  color,
		Glyph:  glyphs[len(c.Series)%len(glyphs)],
	})
	return c
}

func (c *LineChart) WithLabels(labels []string) *LineChart {
	c.Labels = labels
	return c
}

func (c *LineChart) WithSize(width, height int) *LineChart {
	c.Width = width
	c.Height = height
	return c
}

func (c *LineChart) WithMarker(index int) *LineChart {
	c.Marker = index
	return c
}

// Render draws title, canvas, year labels and legend
func (c *LineChart) Render() string {
	if c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n\n")
	}

	cols := max(10, c.Width-yAxisWidth-3)
	rows := max(3, c.Height)
	lo, hi := c.bounds()
	canvas := newCanvas(cols, rows)

	n := c.pointCount()
	col := func(i int) int {
		if n == 1 {
			return 0
		}
		return i * (cols - 1) / (n - 1)
	}
	row := func(v float64) int {
		return rows - 1 - int(math.Round((v-lo)/(hi-lo)*float64(rows-1)))
	}

	if c.Marker >= 0 && c.Marker < n {
		x := col(c.Marker)
		for y := 0; y < rows; y++ {
			canvas.set(x, y, '┆', true)
		}
	}
	for _, s := range c.Series {
		for i, v := range s.Points {
			x, y := col(i), row(v)
			if i > 0 {
				canvas.line(col(i-1), row(s.Points[i-1]), x, y, '·')
			}
			canvas.set(x, y, s.Glyph, true)
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, line := range canvas.cells {
		label := ""
		if y == 0 || y == rows-1 || y == rows/2 {
			label = formatChartValue(hi - float64(y)/float64(rows-1)*(hi-lo))
		}
		b.WriteString(axis.Render(label))
		b.WriteString(" │ ")
		b.WriteString(string(line))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", cols+1))
	b.WriteString("\n")
	b.WriteString(c.renderLabels(cols, col))

	if len(c.Series) > 1 {
		b.WriteString("\n\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *LineChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		n = max(n, len(s.Points))
	}
	return n
}

// bounds is the value range across all series, widened when flat
func (c *LineChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		lo--
		hi++
	}
	return lo, hi
}

// renderLabels places up to six labels under their columns
func (c *LineChart) renderLabels(cols int, col func(int) int) string {
	if len(c.Labels) == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", cols+len(c.Labels[len(c.Labels)-1])))
	step := max(1, (len(c.Labels)+4)/5)
	next := 0
	for i := 0; i < len(c.Labels); i += step {
		x := col(i)
		if x < next {
			continue
		}
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
		next = x + len([]rune(c.Labels[i])) + 1
	}
	pad := strings.Repeat(" ", yAxisWidth+3)
	return pad + lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *LineChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		glyph := lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Glyph))
		items = append(items, glyph+" "+s.Name)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

type canvas struct {
	cells [][]rune
}

func newCanvas(cols, rows int) *canvas {
	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", cols))
	}
	return &canvas{cells: cells}
}

func (cv *canvas) set(x, y int, r rune, overwrite bool) {
	if y < 0 || y >= len(cv.cells) || x < 0 || x >= len(cv.cells[y]) {
		return
	}
	if overwrite || cv.cells[y][x] == ' ' {
		cv.cells[y][x] = r
	}
}

// line connects two cells with r, stepping along the longer axis
func (cv *canvas) line(x0, y0, x1, y1 int, r rune) {
	steps := max(absInt(x1-x0), absInt(y1-y0))
	for i := 1; i < steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		cv.set(x, y, r, false)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// formatChartValue formats a Y-axis value in crore, lakh or thousand rupees
func formatChartValue(value float64) string {
	switch abs := math.Abs(value); {
	case abs >= 1e7:
		return fmt.Sprintf("₹%.1fCr", value/1e7)
	case abs >= 1e5:
		return fmt.Sprintf("₹%.1fL", value/1e5)
	case abs >= 1e3:
		return fmt.Sprintf("₹%.0fK", value/1e3)
	}
	return fmt.Sprintf("₹%.0f", value)
}

// NewCrossoverChart plots monthly passive income, active income and expense
// per projected year and marks the year passive income covers expenses
func NewCrossoverChart(proj calculation.CrossoverProjection) *LineChart {
	n := len(proj.Points)
	passive := make([]float64, n)
	active := make([]float64, n)
	expense := make([]float64, n)
	labels := make([]string, n)
	for i, p := range proj.Points {
		passive[i] = p.Passive.InexactFloat64()
		active[i] = p.Active.InexactFloat64()
		expense[i] = p.Expense.InexactFloat64()
		labels[i] = p.Label
	}

	title := "Crossover: passive income never covers expenses"
	if proj.FreedomYear >= 0 {
		title = fmt.Sprintf("Crossover: passive income covers expenses in year %d", proj.FreedomYear)
	}

	return NewLineChart(title).
		AddSeries("Passive", passive, tuistyles.ColorChartLine1).
		AddSeries("Active", active, tuistyles.ColorChartLine2).
		AddSeries("Expense", expense, tuistyles.ColorChartLine3).
		WithLabels(labels).
		WithMarker(proj.FreedomYear)
}

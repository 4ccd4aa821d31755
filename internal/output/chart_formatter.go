package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/annuity-planner/internal/domain"
)

const (
	chartWidth  = 72
	chartHeight = 16
	yAxisWidth  = 12
)

var (
	chartTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32"))
	chartMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	chartAccumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32"))
	chartRetireStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E65100"))
)

// ChartFormatter draws the sampled trajectory as a terminal line chart.
// Accumulation points are drawn with '●' and retirement points with '■'.
type ChartFormatter struct{}

func (c ChartFormatter) Name() string { return "chart" }

func (c ChartFormatter) Format(r *domain.Report) ([]byte, error) {
	var out strings.Builder

	title := "Balance by age"
	if r.Name != "" {
		title = fmt.Sprintf("%s: %s", r.Name, title)
	}
	out.WriteString(chartTitleStyle.Render(title))
	out.WriteString("\n\n")

	if !r.Result.Success {
		out.WriteString(chartMutedStyle.Render("Calculation failed: " + r.Result.Reason))
		out.WriteString("\n")
		return []byte(out.String()), nil
	}
	if len(r.Trajectory) == 0 {
		out.WriteString(chartMutedStyle.Render("No data to display"))
		out.WriteString("\n")
		return []byte(out.String()), nil
	}

	out.WriteString(renderChart(r.Trajectory, chartWidth, chartHeight))
	out.WriteString(fmt.Sprintf("%s● accumulation  %s retirement\n",
		strings.Repeat(" ", yAxisWidth+3), chartRetireStyle.Render("■")))
	return []byte(out.String()), nil
}

// renderChart plots the points on a width x height grid. The x axis is
// scaled by age rather than by index so that sampled series keep their shape.
func renderChart(points []domain.WealthDataPoint, width, height int) string {
	plotWidth := width - yAxisWidth
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	minVal, maxVal := 0.0, 0.0
	for _, p := range points {
		maxVal = math.Max(maxVal, p.Wealth)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}
	maxVal *= 1.05

	minAge, maxAge := points[0].Age, points[len(points)-1].Age
	ageSpan := maxAge - minAge
	col := func(age float64) int {
		if ageSpan <= 0 {
			return 0
		}
		return int((age - minAge) / ageSpan * float64(plotWidth-1))
	}
	row := func(v float64) int {
		return height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
	}

	for i, p := range points {
		ch := '●'
		if p.Phase == domain.PhaseRetirement {
			ch = '■'
		}
		x, y := col(p.Age), row(p.Wealth)
		if i > 0 {
			drawLine(grid, col(points[i-1].Age), row(points[i-1].Wealth), x, y, ch)
		}
		if x >= 0 && x < plotWidth && y >= 0 && y < height {
			grid[y][x] = ch
		}
	}

	var out strings.Builder
	axisStyle := chartMutedStyle.Width(yAxisWidth).Align(lipgloss.Right)
	for i, line := range grid {
		yValue := maxVal - float64(i)/float64(height-1)*(maxVal-minVal)
		out.WriteString(axisStyle.Render(formatChartValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(colorize(string(line)))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth))
	out.WriteString("\n")

	left := fmt.Sprintf("age %.0f", minAge)
	right := fmt.Sprintf("age %.0f", maxAge)
	gap := plotWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth+3))
	out.WriteString(chartMutedStyle.Render(left + strings.Repeat(" ", gap) + right))
	out.WriteString("\n")
	return out.String()
}

// colorize styles runs of retirement markers on a grid line.
func colorize(line string) string {
	if !strings.ContainsRune(line, '■') {
		return chartAccumStyle.Render(line)
	}
	var b strings.Builder
	for _, r := range line {
		switch r {
		case '■':
			b.WriteString(chartRetireStyle.Render(string(r)))
		case '●':
			b.WriteString(chartAccumStyle.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// drawLine connects two grid cells using Bresenham's algorithm without
// overwriting cells that are already set.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, ch rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = ch
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// formatChartValue abbreviates a y-axis value in reais.
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("R$%.1fM", value/1_000_000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("R$%.0fK", value/1000)
	default:
		return fmt.Sprintf("R$%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

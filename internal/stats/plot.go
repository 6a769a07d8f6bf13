package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	fallbackTermWidth = 80
	axisMax           = "max"
	axisMin           = "min"
	axisSep           = " ┤ "
	colorReset        = "\x1b[0m"
)

var seriesColors = []string{"\x1b[36m", "\x1b[33m", "\x1b[35m", "\x1b[32m"}

// braille dot bits indexed by [row][col] inside a 2x4 cell.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCanvas is a grid of braille cells addressed in dot coordinates.
type brailleCanvas struct {
	cols, rows int
	cells      [][]uint8
	owner      [][]int
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	c := &brailleCanvas{cols: cols, rows: rows}
	c.cells = make([][]uint8, rows)
	c.owner = make([][]int, rows)
	for y := range c.cells {
		c.cells[y] = make([]uint8, cols)
		c.owner[y] = make([]int, cols)
		for x := range c.owner[y] {
			c.owner[y][x] = -1
		}
	}
	return c
}

func (c *brailleCanvas) set(dx, dy, series int) {
	cx, cy := dx/2, dy/4
	if dx < 0 || dy < 0 || cx >= c.cols || cy >= c.rows {
		return
	}
	c.cells[cy][cx] |= brailleBits[dy%4][dx%2]
	if c.owner[cy][cx] < 0 {
		c.owner[cy][cx] = series
	}
}

// line plots a straight segment between two dot coordinates.
func (c *brailleCanvas) line(x0, y0, x1, y1, series int) {
	steps := absInt(x1 - x0)
	if d := absInt(y1 - y0); d > steps {
		steps = d
	}
	if steps == 0 {
		c.set(x0, y0, series)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		c.set(x, y, series)
	}
}

// PlotSeries renders a braille line chart for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a braille line chart with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	kept := series[:0:0]
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	canvas := newBrailleCanvas(width, height)
	dotsX, dotsY := width*2, height*4
	var legend []string
	useColor := shouldUseColor(w, forceColor)
	for si, s := range kept {
		lo, hi := bounds(s.Values)
		values := resample(s.Values, dotsX)
		prevX, prevY := -1, -1
		for x, v := range values {
			y := int(math.Round((1 - (v-lo)/(hi-lo)) * float64(dotsY-1)))
			if prevX >= 0 {
				canvas.line(prevX, prevY, x, y, si)
			} else {
				canvas.set(x, y, si)
			}
			prevX, prevY = x, y
		}
		label := fmt.Sprintf("%s %.1f..%.1f", s.Name, lo, hi)
		if useColor {
			label = seriesColors[si%len(seriesColors)] + label + colorReset
		}
		legend = append(legend, label)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	pad := runewidth.StringWidth(axisMax)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisMax
		case height - 1:
			label = axisMin
		}
		b.WriteString(runewidth.FillLeft(label, pad))
		b.WriteString(axisSep)
		for x := 0; x < width; x++ {
			ch := rune(0x2800 + int(canvas.cells[y][x]))
			owner := canvas.owner[y][x]
			if useColor && owner >= 0 {
				b.WriteString(seriesColors[owner%len(seriesColors)])
				b.WriteRune(ch)
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	b.WriteString("Legend: ")
	b.WriteString(strings.Join(legend, "  "))
	b.WriteString("\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	width := totalWidth - runewidth.StringWidth(axisMax) - runewidth.StringWidth(axisSep)
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// bounds returns the value range, widened when the series is flat.
func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return lo, hi
}

// resample stretches or averages values onto n points.
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	if len(values) == 1 || n == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	if len(values) > n {
		for i := range out {
			start := i * len(values) / n
			end := (i + 1) * len(values) / n
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	for i := range out {
		pos := float64(i) * float64(len(values)-1) / float64(n-1)
		idx := int(pos)
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

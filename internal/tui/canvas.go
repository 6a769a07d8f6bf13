package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordfall/internal/game"
)

type cell struct {
	s     string
	style *lipgloss.Style
	// wide marks the trailing column of a double-width rune.
	wide bool
}

// canvas is a fixed grid of terminal cells the game scene is painted into.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: maxInt(0, w), h: maxInt(0, h)}
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.w)
	}
	return c
}

// text writes s starting at column x of row y, clipping at the edges.
func (c *canvas) text(x, y int, s string, style *lipgloss.Style) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= c.w {
			c.cells[y][x] = cell{s: string(r), style: style}
			for i := 1; i < rw; i++ {
				c.cells[y][x+i] = cell{wide: true}
			}
		}
		x += rw
		if x >= c.w {
			return
		}
	}
}

// fill paints every cell covered by r with ch.
func (c *canvas) fill(r game.Rect, ch string, style *lipgloss.Style) {
	top := int(math.Floor(r.Y))
	bottom := int(math.Ceil(r.Bottom()))
	left := int(math.Floor(r.X))
	right := int(math.Ceil(r.Right()))
	for y := maxInt(0, top); y < minInt(c.h, bottom); y++ {
		for x := maxInt(0, left); x < minInt(c.w, right); x++ {
			c.cells[y][x] = cell{s: ch, style: style}
		}
	}
}

// centered writes s in the middle of row y, truncated to fit.
func (c *canvas) centered(y int, s string, style *lipgloss.Style) {
	s = runewidth.Truncate(s, c.w, "…")
	c.text((c.w-runewidth.StringWidth(s))/2, y, s, style)
}

func (c *canvas) render() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			switch {
			case cl.wide:
			case cl.s == "":
				b.WriteByte(' ')
			case cl.style != nil:
				b.WriteString(cl.style.Render(cl.s))
			default:
				b.WriteString(cl.s)
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// paintScene draws the live entities and, for the runner, the actor.
func paintScene(c *canvas, sess *game.Session) {
	cfg := sess.Config()
	switch cfg.Variant {
	case game.VariantCatcher:
		for _, e := range sess.Entities() {
			row := int(math.Floor(e.Y))
			c.text(int(math.Round(e.X)), row, " "+e.Label+" ", &wordStyle)
		}
	case game.VariantRunner:
		for _, e := range sess.Entities() {
			c.fill(e.Rect, "█", &obstacleStyle)
		}
		c.fill(sess.Actor().Rect, "▲", &actorStyle)
	case game.VariantQuiz:
		for _, e := range sess.Entities() {
			c.centered(c.h/2-1, e.Prompt, &wordStyle)
			secs := int(math.Ceil(sess.Remaining().Seconds()))
			c.centered(c.h/2+1, countdownBar(secs, int(cfg.TargetTimeout.Seconds())), &mutedStyle)
		}
	}
}

func countdownBar(secs, total int) string {
	if total <= 0 {
		return ""
	}
	secs = minInt(maxInt(secs, 0), total)
	return strings.Repeat("■", secs) + strings.Repeat("·", total-secs)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

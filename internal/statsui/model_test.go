package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordfall/internal/model"
	"github.com/verte-zerg/wordfall/internal/store"
)

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter([]string{"Runner", "challenge", "2024-05-01", "10", "3"})
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Variant != "runner" || cfg.Mode != "challenge" || cfg.Last != 10 || cfg.CurveWindow != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Since == nil || cfg.Since.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}

	cfg, err = parseFilter([]string{"", "", "", "", ""})
	if err != nil {
		t.Fatalf("parse empty filter: %v", err)
	}
	if cfg.Variant != "" || cfg.CurveWindow != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if _, err := parseFilter([]string{"tetris", "", "", "", ""}); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := parseFilter([]string{"", "", "yesterday", "", ""}); err == nil {
		t.Fatalf("expected since error")
	}
	if _, err := parseFilter([]string{"", "", "", "", "0"}); err == nil {
		t.Fatalf("expected window error")
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if got := nextCurveWindow(1); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := nextCurveWindow(7); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := prevCurveWindow(10); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := prevCurveWindow(5); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestModelRendersSessions(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "wordfall.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	end := time.Now()
	_, err = st.InsertSession(context.Background(), model.SessionStats{
		StartedAt:    end.Add(-time.Minute),
		EndedAt:      end,
		Variant:      "catcher",
		Mode:         "free",
		Difficulty:   "easy",
		WordListPath: "builtin:easy",
		Score:        40,
		Spawned:      5,
		Caught:       4,
		Missed:       1,
		Outcome:      "stopped",
		DurationMs:   time.Minute.Milliseconds(),
	}, []model.WordStats{{Word: "cat", Caught: 4, Missed: 1}})
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}

	m := NewModel(st, model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	if !strings.Contains(view, "Best Score") || !strings.Contains(view, "40") {
		t.Fatalf("expected summary cards in view:\n%s", view)
	}
	if !strings.Contains(view, "Weak words: cat") {
		t.Fatalf("expected weak words in view:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view = m.View()
	if !strings.Contains(view, "cat") || !strings.Contains(view, "80.00%") {
		t.Fatalf("expected word table in view:\n%s", view)
	}
}

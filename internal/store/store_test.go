package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordfall/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "wordfall.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insert(t *testing.T, st *Store, variant, mode string, score int, at time.Time, words []model.WordStats) int64 {
	t.Helper()
	id, err := st.InsertSession(context.Background(), model.SessionStats{
		StartedAt:    at.Add(-time.Minute),
		EndedAt:      at,
		Variant:      variant,
		Mode:         mode,
		Difficulty:   "normal",
		WordListPath: "builtin:normal",
		Score:        score,
		Spawned:      5,
		Caught:       score / 10,
		Missed:       1,
		Outcome:      "stopped",
		DurationMs:   time.Minute.Milliseconds(),
	}, words)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return id
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	insert(t, st, "catcher", "free", 30, base, nil)
	insert(t, st, "runner", "free", 4, base.Add(time.Minute), nil)
	insert(t, st, "catcher", "challenge", 50, base.Add(2*time.Minute), nil)

	ctx := context.Background()
	all, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}
	catcher, err := st.ListSessions(ctx, model.StatsConfig{Variant: "catcher"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(catcher) != 2 || catcher[0].Score != 30 || catcher[1].Score != 50 {
		t.Fatalf("unexpected catcher sessions: %+v", catcher)
	}
	since := base.Add(90 * time.Second)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(recent) != 1 || recent[0].Mode != "challenge" {
		t.Fatalf("unexpected recent sessions: %+v", recent)
	}
}

func TestBestScore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	best, err := st.BestScore(ctx, "catcher", "free")
	if err != nil {
		t.Fatalf("best score: %v", err)
	}
	if best != 0 {
		t.Fatalf("expected 0 on empty db, got %d", best)
	}
	base := time.Unix(1700000000, 0).UTC()
	insert(t, st, "catcher", "free", 30, base, nil)
	insert(t, st, "catcher", "free", 70, base.Add(time.Minute), nil)
	insert(t, st, "catcher", "challenge", 90, base.Add(2*time.Minute), nil)
	best, err = st.BestScore(ctx, "catcher", "free")
	if err != nil {
		t.Fatalf("best score: %v", err)
	}
	if best != 70 {
		t.Fatalf("expected 70, got %d", best)
	}
}

func TestWordAggregates(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	words := []model.WordStats{
		{Word: "jump", Caught: 2, Missed: 1, LatencySumMs: 3000, LatencyCount: 2},
		{Word: "fly", Caught: 0, Missed: 2},
	}
	a := insert(t, st, "catcher", "free", 20, base, words)
	b := insert(t, st, "catcher", "free", 20, base.Add(time.Minute), words)
	insert(t, st, "quiz", "challenge", 1, base.Add(2*time.Minute), []model.WordStats{{Word: "paris", Caught: 1}})

	ctx := context.Background()
	aggs, err := st.ListWordAggregatesForSessions(ctx, []int64{a, b})
	if err != nil {
		t.Fatalf("aggregate words: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 words, got %+v", aggs)
	}
	for _, agg := range aggs {
		if agg.Word == "jump" && (agg.Caught != 4 || agg.Missed != 2 || agg.LatencyCount != 4) {
			t.Fatalf("unexpected jump aggregate: %+v", agg)
		}
	}
	weak, err := st.GetWeakWords(ctx, 1, "catcher")
	if err != nil {
		t.Fatalf("weak words: %v", err)
	}
	if len(weak) != 2 {
		t.Fatalf("expected words from the latest catcher session, got %+v", weak)
	}
	none, err := st.GetWeakWords(ctx, 0, "catcher")
	if err != nil || none != nil {
		t.Fatalf("zero window should return nothing: %v %v", none, err)
	}
}

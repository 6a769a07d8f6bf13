package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordfall/internal/game"
	"github.com/verte-zerg/wordfall/internal/model"
	"github.com/verte-zerg/wordfall/internal/store"
	"github.com/verte-zerg/wordfall/internal/voice"
)

func newTestModel(t *testing.T, variant game.Variant, mode game.Mode, st *store.Store) *Model {
	t.Helper()
	cfg := game.DefaultConfig(variant, mode, game.DifficultyNormal)
	cfg.Labels = []string{"jump"}
	cfg.Puzzles = []game.Puzzle{{Question: "2 + 2?", Answer: "four"}}
	cfg.Seed = 7
	m, err := NewModel(Options{
		Config:       model.Config{Variant: string(variant), Mode: string(mode)},
		Game:         cfg,
		WordListPath: "builtin:normal",
		Store:        st,
		Log:          zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Init()
	return m
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestInitStartsAndSpawns(t *testing.T) {
	m := newTestModel(t, game.VariantCatcher, game.ModeFree, nil)
	if m.Session().Status() != game.StatusRunning {
		t.Fatalf("expected running, got %s", m.Session().Status())
	}
	if len(m.Session().Entities()) != 1 {
		t.Fatalf("expected first word spawned on start")
	}
}

func TestTypedWordScoresOnNextFrame(t *testing.T) {
	m := newTestModel(t, game.VariantCatcher, game.ModeFree, nil)
	m.input.SetValue("Jump")
	m.Update(key(tea.KeyEnter))
	if m.Session().Score() != 0 {
		t.Fatalf("input must not resolve before the next tick")
	}
	m.Update(frameMsg{gen: m.gen})
	if m.Session().Score() != 10 {
		t.Fatalf("expected score 10, got %d", m.Session().Score())
	}
	if m.input.Value() != "" {
		t.Fatalf("expected prompt cleared")
	}
	if !strings.Contains(m.renderFooter(), "+10 jump") {
		t.Fatalf("expected catch notice in footer: %s", m.renderFooter())
	}
}

func TestPauseDropsStaleTicks(t *testing.T) {
	m := newTestModel(t, game.VariantCatcher, game.ModeFree, nil)
	gen := m.gen
	m.Update(key(tea.KeyEsc))
	if m.Session().Status() != game.StatusPaused {
		t.Fatalf("expected paused")
	}
	before := m.Session().Entities()[0].Y
	if _, cmd := m.Update(frameMsg{gen: gen}); cmd != nil {
		t.Fatalf("stale frame should not re-arm")
	}
	m.Update(spawnMsg{gen: gen})
	if got := m.Session().Entities(); len(got) != 1 || got[0].Y != before {
		t.Fatalf("paused session changed: %+v", got)
	}
	m.Update(key(tea.KeyEsc))
	if m.Session().Status() != game.StatusRunning {
		t.Fatalf("expected running after resume")
	}
	m.Update(frameMsg{gen: gen})
	if m.Session().Ticks() != 0 {
		t.Fatalf("tick from before the pause must stay dropped")
	}
	m.Update(frameMsg{gen: m.gen})
	if m.Session().Ticks() != 1 {
		t.Fatalf("expected one tick after resume, got %d", m.Session().Ticks())
	}
}

func TestRunnerSpaceLifts(t *testing.T) {
	m := newTestModel(t, game.VariantRunner, game.ModeFree, nil)
	ground := m.Session().Actor().Y
	m.Update(key(tea.KeySpace))
	m.Update(frameMsg{gen: m.gen})
	if m.Session().Actor().Y >= ground {
		t.Fatalf("expected actor to rise, y=%v ground=%v", m.Session().Actor().Y, ground)
	}
	if m.input.Value() != "" {
		t.Fatalf("space should not reach the prompt in runner")
	}
}

func TestStopPersistsSession(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "wordfall.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	m := newTestModel(t, game.VariantCatcher, game.ModeChallenge, st)
	m.Update(frameMsg{gen: m.gen})
	m.input.SetValue("jump")
	m.Update(key(tea.KeyEnter))
	m.Update(frameMsg{gen: m.gen})
	m.Update(key(tea.KeyCtrlE))
	m.Update(frameMsg{gen: m.gen})
	if m.Session().Status() != game.StatusEnded {
		t.Fatalf("expected ended, got %s", m.Session().Status())
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Fatalf("expected game over banner")
	}

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 saved session, got %d", len(sessions))
	}
	if sessions[0].Outcome != "stopped" || sessions[0].Score != 10 || sessions[0].Caught != 1 {
		t.Fatalf("unexpected saved session: %+v", sessions[0])
	}
	words, err := st.ListWordAggregatesForSessions(context.Background(), []int64{sessions[0].SessionID})
	if err != nil {
		t.Fatalf("list words: %v", err)
	}
	if len(words) != 1 || words[0].Word != "jump" || words[0].LatencyCount != 1 {
		t.Fatalf("unexpected word stats: %+v", words)
	}
	if words[0].LatencySumMs != 2*game.DefaultConfig(game.VariantCatcher, game.ModeFree, game.DifficultyNormal).TickDuration.Milliseconds() {
		t.Fatalf("unexpected latency: %d", words[0].LatencySumMs)
	}

	m.Update(key(tea.KeyEnter))
	if m.Session().Status() != game.StatusRunning || m.Session().Score() != 0 {
		t.Fatalf("expected a fresh round after enter")
	}
	if m.best != 10 {
		t.Fatalf("expected best score carried over, got %d", m.best)
	}
}

func TestQuizRendersQuestion(t *testing.T) {
	m := newTestModel(t, game.VariantQuiz, game.ModeFree, nil)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	view := m.View()
	if !strings.Contains(view, "2 + 2?") {
		t.Fatalf("expected question in view:\n%s", view)
	}
	if !strings.Contains(m.renderHeader(), "Time 20s") {
		t.Fatalf("expected countdown in header: %s", m.renderHeader())
	}
	lines := strings.Split(view, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected view to fill 20 rows, got %d", len(lines))
	}
}

type fakeRecognizer struct {
	results []voice.Result
}

func (f fakeRecognizer) Listen(ctx context.Context) <-chan voice.Result {
	ch := make(chan voice.Result, len(f.results))
	for _, r := range f.results {
		ch <- r
	}
	close(ch)
	return ch
}

func TestVoiceResultsFeedLoop(t *testing.T) {
	cfg := game.DefaultConfig(game.VariantCatcher, game.ModeFree, game.DifficultyNormal)
	cfg.Labels = []string{"fly"}
	cfg.Seed = 3
	m, err := NewModel(Options{
		Game: cfg,
		Recognizer: fakeRecognizer{results: []voice.Result{
			{Err: voice.ErrNoSpeech},
			{Text: "fly"},
		}},
		Log: zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Init()
	for i := 0; i < 3; i++ {
		msg := m.listen()()
		m.Update(msg)
	}
	if m.voiceCh != nil {
		t.Fatalf("expected closed recognizer channel to be released")
	}
	if m.heard != "fly" {
		t.Fatalf("expected heard utterance, got %q", m.heard)
	}
	m.Update(frameMsg{gen: m.gen})
	if m.Session().Score() != 10 {
		t.Fatalf("expected spoken word to score, got %d", m.Session().Score())
	}
}

func TestPageKeysAdjustMusicVolume(t *testing.T) {
	m := newTestModel(t, game.VariantCatcher, game.ModeFree, nil)
	m.volume = 0.95
	m.Update(key(tea.KeyPgUp))
	if m.volume != 1 {
		t.Fatalf("expected volume clamped to 1, got %v", m.volume)
	}
	m.Update(key(tea.KeyPgDown))
	m.Update(key(tea.KeyPgDown))
	if m.volume != 0.8 || m.notice != "music 80%" {
		t.Fatalf("unexpected volume %v notice %q", m.volume, m.notice)
	}
}

func TestFatalVoiceResultFallsBackToTyping(t *testing.T) {
	cfg := game.DefaultConfig(game.VariantCatcher, game.ModeFree, game.DifficultyNormal)
	cfg.Labels = []string{"fly"}
	m, err := NewModel(Options{
		Game: cfg,
		Recognizer: fakeRecognizer{results: []voice.Result{
			{Err: voice.ErrNoSpeech},
			{Err: fmt.Errorf("%w: no binary", voice.ErrUnavailable)},
		}},
		Log: zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Init()
	m.Update(m.listen()())
	if m.voiceStatus != "listening" {
		t.Fatalf("no speech should keep listening, got %q", m.voiceStatus)
	}
	m.Update(m.listen()())
	if m.voiceStatus != "voice unavailable, type instead" {
		t.Fatalf("unexpected voice status %q", m.voiceStatus)
	}
	if m.Session().Status() != game.StatusRunning {
		t.Fatalf("recognizer failure must not stop the round")
	}
}

func TestStopKeyIgnoredWhilePaused(t *testing.T) {
	m := newTestModel(t, game.VariantCatcher, game.ModeFree, nil)
	m.Update(key(tea.KeyEsc))
	if m.Session().Status() != game.StatusPaused {
		t.Fatalf("expected paused, got %s", m.Session().Status())
	}
	m.Update(key(tea.KeyCtrlE))
	m.Update(key(tea.KeyEsc))
	m.Update(frameMsg{gen: m.gen})
	if m.Session().Status() != game.StatusRunning {
		t.Fatalf("stop pressed while paused must not end the resumed round, got %s/%q", m.Session().Status(), m.Session().Reason())
	}
}

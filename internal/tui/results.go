package tui

import (
	"context"
	"time"

	"github.com/verte-zerg/wordfall/internal/game"
	"github.com/verte-zerg/wordfall/internal/model"
	statsPkg "github.com/verte-zerg/wordfall/internal/stats"
)

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	cfg := m.session.Config()
	best, err := m.store.BestScore(context.Background(), string(cfg.Variant), string(cfg.Mode))
	if err != nil {
		m.log.Error().Err(err).Msg("failed to load best score")
		return
	}
	m.best = best
}

// sessionStats converts the finished round into its persisted form.
func sessionStats(sess *game.Session, startedAt, endedAt time.Time, wordListPath, outcome string) (model.SessionStats, []model.WordStats) {
	cfg := sess.Config()
	stats := model.SessionStats{
		StartedAt:    startedAt,
		EndedAt:      endedAt,
		Variant:      string(cfg.Variant),
		Mode:         string(cfg.Mode),
		Difficulty:   string(cfg.Difficulty),
		WordListPath: wordListPath,
		Score:        sess.Score(),
		Spawned:      sess.Spawned(),
		Caught:       sess.Caught(),
		Missed:       sess.Missed(),
		Outcome:      outcome,
		DurationMs:   sess.Elapsed().Milliseconds(),
	}
	tickMs := cfg.TickDuration.Milliseconds()
	results := sess.WordResults()
	words := make([]model.WordStats, 0, len(results))
	for _, r := range results {
		words = append(words, model.WordStats{
			Word:         r.Label,
			Caught:       r.Caught,
			Missed:       r.Missed,
			LatencySumMs: r.LatencyTicks * tickMs,
			LatencyCount: r.LatencyCount,
		})
	}
	return stats, words
}

func (m *Model) finishSession(outcome string) {
	if m.saved {
		return
	}
	m.saved = true
	m.lastScore = m.session.Score()
	m.hasLast = true
	if m.lastScore > m.best {
		m.best = m.lastScore
	}
	if m.session.Ticks() == 0 {
		return
	}
	stats, words := sessionStats(m.session, m.startedAt, time.Now(), m.wordListPath, outcome)
	m.log.Info().
		Str("variant", stats.Variant).
		Str("outcome", outcome).
		Int("score", stats.Score).
		Int("caught", stats.Caught).
		Int("missed", stats.Missed).
		Msg("session finished")
	if m.store == nil {
		return
	}
	if _, err := m.store.InsertSession(context.Background(), stats, words); err != nil {
		m.log.Error().Err(err).Msg("failed to save session")
		m.notice = "could not save session"
		return
	}
	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	if m.store == nil || m.weighted == nil {
		return
	}
	aggs, err := m.store.GetWeakWords(context.Background(), m.config.WeakWindow, string(m.session.Config().Variant))
	if err != nil {
		m.log.Error().Err(err).Msg("failed to load weak words")
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			m.notice = "no stats for weak-word focus yet"
			m.weakNoticePrinted = true
		}
		m.weighted.SetWeak(map[string]struct{}{})
		return
	}
	weak := statsPkg.SelectWeakWords(aggs, m.config.WeakTop)
	m.weighted.SetWeak(weak)
	m.log.Debug().Int("weak", len(weak)).Msg("weak words refreshed")
}

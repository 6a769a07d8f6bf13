// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/wordfall/internal/model"
)

// SessionMetrics computes catch accuracy and per-minute rates for a session.
func SessionMetrics(score, caught, missed int, durationMs int64) (accuracy, pointsPerMin, catchesPerMin float64) {
	den := float64(caught + missed)
	if den > 0 {
		accuracy = float64(caught) / den
	}
	if durationMs <= 0 {
		return accuracy, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	pointsPerMin = float64(score) / minutes
	catchesPerMin = float64(caught) / minutes
	return accuracy, pointsPerMin, catchesPerMin
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Summary holds headline numbers over a set of sessions.
type Summary struct {
	Sessions    int
	AvgScore    float64
	BestScore   int
	AvgAccuracy float64
	AvgPPM      float64
	PlayTimeMs  int64
}

// Summarize folds sessions into headline numbers.
func Summarize(sessions []model.SessionAggregate) Summary {
	var sum Summary
	if len(sessions) == 0 {
		return sum
	}
	var totalScore, totalAcc, totalPPM float64
	for _, s := range sessions {
		acc, ppm, _ := SessionMetrics(s.Score, s.Caught, s.Missed, s.DurationMs)
		totalScore += float64(s.Score)
		totalAcc += acc
		totalPPM += ppm
		sum.PlayTimeMs += s.DurationMs
		if s.Score > sum.BestScore {
			sum.BestScore = s.Score
		}
	}
	count := float64(len(sessions))
	sum.Sessions = len(sessions)
	sum.AvgScore = totalScore / count
	sum.AvgAccuracy = totalAcc / count
	sum.AvgPPM = totalPPM / count
	return sum
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", sum.Sessions),
		fmt.Sprintf("Avg Score: %.1f", sum.AvgScore),
		fmt.Sprintf("Best Score: %d", sum.BestScore),
		fmt.Sprintf("Avg Points/min: %.1f", sum.AvgPPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", sum.AvgAccuracy*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurvesWithSize prints score and accuracy curves sized to a total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	scores := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		acc, _, _ := SessionMetrics(s.Score, s.Caught, s.Missed, s.DurationMs)
		scores[i] = float64(s.Score)
		accs[i] = acc * 100
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Progress", []Series{
		{Name: "Score", Values: MovingAverage(scores, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, width, height, useColor)
}

// WordRow is one formatted row of the per-word table.
type WordRow struct {
	Word     string
	Accuracy float64
	Latency  float64
	Caught   int
	Missed   int
}

// WordRows converts aggregates into rows sorted by lowest accuracy.
func WordRows(aggs []model.WordAggregate) []WordRow {
	rows := make([]WordRow, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, WordRow{
			Word:     agg.Word,
			Accuracy: accuracy(agg),
			Latency:  avgLatency(agg),
			Caught:   agg.Caught,
			Missed:   agg.Missed,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy == rows[j].Accuracy {
			return rows[i].Word < rows[j].Word
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// RenderWordTable prints per-word aggregates.
func RenderWordTable(w io.Writer, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Word"); err != nil {
		return err
	}
	headers := []string{"Word", "Accuracy", "Avg Catch (ms)", "Caught", "Missed"}
	rows := WordRows(aggs)
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Word,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.0f", r.Latency),
			fmt.Sprintf("%d", r.Caught),
			fmt.Sprintf("%d", r.Missed),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func avgLatency(agg model.WordAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}

// Package model defines shared data structures.
package model

import "time"

// Config defines play settings resolved from flags and the config file.
type Config struct {
	Variant      string
	Mode         string
	Difficulty   string
	WordListPath string
	PuzzlesPath  string
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
	Sound        bool
	MusicVolume  float64
	Recognizer   string
	FPS          int
	Seed         int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Variant     string
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a finished game session.
type SessionStats struct {
	StartedAt    time.Time
	EndedAt      time.Time
	Variant      string
	Mode         string
	Difficulty   string
	WordListPath string
	Score        int
	Spawned      int
	Caught       int
	Missed       int
	Outcome      string
	DurationMs   int64
}

// WordStats stores per-word results for a session.
type WordStats struct {
	Word         string
	Caught       int
	Missed       int
	LatencySumMs int64
	LatencyCount int64
}

// WordAggregate aggregates word stats across sessions.
type WordAggregate struct {
	Word         string
	Caught       int
	Missed       int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Variant    string
	Mode       string
	Score      int
	Caught     int
	Missed     int
	Outcome    string
	DurationMs int64
}

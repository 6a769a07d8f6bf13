package game

import (
	"strings"
)

// Entity is one spawned word, obstacle or question.
type Entity struct {
	ID     int
	Label  string
	Prompt string
	Rect
	Velocity  float64
	Active    bool
	Passed    bool
	Missed    bool
	SpawnTick int
}

// deactivate flips Active off. It reports false when the entity was already
// inactive so callers never count a transition twice.
func (e *Entity) deactivate() bool {
	if !e.Active {
		return false
	}
	e.Active = false
	return true
}

// Actor is the player sprite of the runner variant.
type Actor struct {
	Rect
	Velocity float64
	Gravity  float64
	Lift     float64
}

func (a *Actor) step(ground float64) {
	a.Velocity += a.Gravity
	a.Y += a.Velocity
	if a.Bottom() > ground {
		a.Y = ground - a.H
		a.Velocity = 0
	}
	if a.Y < 0 {
		a.Y = 0
		a.Velocity = 0
	}
}

func (a *Actor) lift() {
	a.Velocity = a.Lift
}

// InputKind identifies a queued input.
type InputKind int

const (
	InputUtterance InputKind = iota
	InputLift
	InputStop
)

// Input is an external signal queued for the next tick.
type Input struct {
	Kind InputKind
	Text string
}

// Utterance wraps a recognized or typed phrase.
func Utterance(text string) Input {
	return Input{Kind: InputUtterance, Text: text}
}

// Lift requests an upward impulse for the runner sprite.
func Lift() Input {
	return Input{Kind: InputLift}
}

// Stop ends the session on the next tick.
func Stop() Input {
	return Input{Kind: InputStop}
}

// Normalize lowercases and trims an utterance or label for comparison.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// EventKind identifies a session event.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventCaught
	EventPassed
	EventMissed
	EventCollided
	EventWrong
	EventTimedOut
	EventEnded
)

// Event is emitted by the loop for sound cues and status text.
type Event struct {
	Kind     EventKind
	EntityID int
	Label    string
	Delta    int
	Reason   Reason
}

// WordResult tallies how a label fared during a session.
type WordResult struct {
	Label        string
	Caught       int
	Missed       int
	LatencyTicks int64
	LatencyCount int64
}

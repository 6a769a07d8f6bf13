package game

import (
	"fmt"
	"strings"
)

// Status is the session lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Variant selects the spawn, motion and interaction rules of a session.
type Variant string

const (
	// VariantCatcher drops words that are caught by saying them.
	VariantCatcher Variant = "catcher"
	// VariantRunner sends ground obstacles toward a sprite lifted by voice.
	VariantRunner Variant = "runner"
	// VariantQuiz asks one question at a time against a countdown.
	VariantQuiz Variant = "quiz"
)

// Variants lists the supported variants in display order.
var Variants = []Variant{VariantCatcher, VariantRunner, VariantQuiz}

// ParseVariant parses a variant name.
func ParseVariant(value string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q (want catcher, runner or quiz)", value)
}

// Mode decides what happens when an entity leaves the canvas unmatched.
type Mode string

const (
	// ModeFree discards missed entities.
	ModeFree Mode = "free"
	// ModeChallenge ends the session on the first miss.
	ModeChallenge Mode = "challenge"
)

// ParseMode parses a mode name.
func ParseMode(value string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case ModeFree, ModeChallenge:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want free or challenge)", value)
	}
}

// Difficulty selects the word set and scales the initial speed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(value string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", value)
	}
}

func (d Difficulty) speedFactor() float64 {
	switch d {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.25
	default:
		return 1
	}
}

// Reason records why a session ended.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonMissed      Reason = "missed"
	ReasonCollision   Reason = "collision"
	ReasonWrongAnswer Reason = "wrong-answer"
	ReasonTimeout     Reason = "timeout"
	ReasonCompleted   Reason = "completed"
	ReasonStopped     Reason = "stopped"
)

// Puzzle is a single quiz question.
type Puzzle struct {
	Question string `toml:"question"`
	Answer   string `toml:"answer"`
}

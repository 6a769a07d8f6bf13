package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by NewSession for unusable settings.
var ErrInvalidConfig = errors.New("invalid game config")

const (
	defaultTick   = 50 * time.Millisecond
	defaultWidth  = 80
	defaultHeight = 22

	catcherSpeed     = 0.15
	catcherIncrement = 0.002
	catcherReward    = 10
	catcherInterval  = 2 * time.Second

	runnerSpeed     = 0.6
	runnerIncrement = 0.03
	runnerInterval  = 3 * time.Second
	runnerGravity   = 0.12
	runnerLift      = -1.2
	runnerActorW    = 3
	runnerActorH    = 2

	quizReward   = 1
	quizTimeout  = 20 * time.Second
	quizInterval = 2 * time.Second
)

// Config parameterizes a session. Speeds are in cells per tick.
type Config struct {
	Variant    Variant
	Mode       Mode
	Difficulty Difficulty

	Width  float64
	Height float64

	InitialSpeed   float64
	SpeedIncrement float64
	Reward         int
	PassReward     int

	Gravity float64
	Lift    float64
	ActorW  float64
	ActorH  float64

	TargetTimeout time.Duration
	TickDuration  time.Duration
	SpawnInterval time.Duration

	Labels  []string
	Puzzles []Puzzle

	Seed int64
}

// DefaultConfig returns tuned settings for a variant. Labels and Puzzles are
// left empty; the caller supplies the word set.
func DefaultConfig(variant Variant, mode Mode, difficulty Difficulty) Config {
	cfg := Config{
		Variant:      variant,
		Mode:         mode,
		Difficulty:   difficulty,
		Width:        defaultWidth,
		Height:       defaultHeight,
		TickDuration: defaultTick,
	}
	factor := difficulty.speedFactor()
	switch variant {
	case VariantRunner:
		cfg.InitialSpeed = runnerSpeed * factor
		cfg.SpeedIncrement = runnerIncrement
		cfg.PassReward = 1
		cfg.Gravity = runnerGravity
		cfg.Lift = runnerLift
		cfg.ActorW = runnerActorW
		cfg.ActorH = runnerActorH
		cfg.SpawnInterval = runnerInterval
	case VariantQuiz:
		cfg.Reward = quizReward
		cfg.TargetTimeout = quizTimeout
		cfg.SpawnInterval = quizInterval
	default:
		cfg.InitialSpeed = catcherSpeed * factor
		cfg.SpeedIncrement = catcherIncrement
		cfg.Reward = catcherReward
		cfg.SpawnInterval = catcherInterval
	}
	return cfg
}

// Validate checks the settings a session relies on.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantCatcher, VariantRunner, VariantQuiz:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	if c.Mode != ModeFree && c.Mode != ModeChallenge {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas must be non-empty", ErrInvalidConfig)
	}
	if c.TickDuration <= 0 {
		return fmt.Errorf("%w: tick duration must be > 0", ErrInvalidConfig)
	}
	if c.InitialSpeed < 0 || c.SpeedIncrement < 0 {
		return fmt.Errorf("%w: speeds must be >= 0", ErrInvalidConfig)
	}
	if c.Reward < 0 || c.PassReward < 0 {
		return fmt.Errorf("%w: rewards must be >= 0", ErrInvalidConfig)
	}
	switch c.Variant {
	case VariantCatcher:
		if len(c.Labels) == 0 {
			return fmt.Errorf("%w: word set is empty", ErrInvalidConfig)
		}
	case VariantQuiz:
		if len(c.Puzzles) == 0 {
			return fmt.Errorf("%w: puzzle set is empty", ErrInvalidConfig)
		}
		if c.TargetTimeout <= 0 {
			return fmt.Errorf("%w: quiz timeout must be > 0", ErrInvalidConfig)
		}
	case VariantRunner:
		if c.ActorW <= 0 || c.ActorH <= 0 {
			return fmt.Errorf("%w: actor must be non-empty", ErrInvalidConfig)
		}
	}
	return nil
}

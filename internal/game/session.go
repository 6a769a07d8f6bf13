package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

// ErrNotIdle is returned by Start when the session has not been reset.
var ErrNotIdle = errors.New("session is not idle")

// Picker chooses the label of the next spawned word.
type Picker interface {
	Pick(labels []string) string
}

type randPicker struct {
	rnd *rand.Rand
}

func (p randPicker) Pick(labels []string) string {
	return labels[p.rnd.Intn(len(labels))]
}

// Session holds all mutable state of one game instance. It is not safe for
// concurrent use; a single driver goroutine calls Tick, Spawn and Push.
type Session struct {
	cfg    Config
	rules  rules
	rnd    *rand.Rand
	picker Picker

	status    Status
	reason    Reason
	score     int
	speed     float64
	ticks     int
	spawned   int
	caught    int
	missed    int
	nextID    int
	remaining time.Duration

	entities []*Entity
	actor    Actor
	pending  []Input
	events   []Event
	words    map[string]*WordResult
}

// NewSession validates cfg and returns an idle session. A nil picker selects
// labels uniformly from the session's own random source.
func NewSession(cfg Config, picker Picker) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg:   cfg,
		rules: rulesFor(cfg.Variant),
		rnd:   rand.New(rand.NewSource(seed)),
	}
	if picker == nil {
		picker = randPicker{rnd: s.rnd}
	}
	s.picker = picker
	s.clear()
	return s, nil
}

// Start moves an idle session to Running with fresh state.
func (s *Session) Start() error {
	if s.status != StatusIdle {
		return fmt.Errorf("%w: status is %s", ErrNotIdle, s.status)
	}
	s.clear()
	s.status = StatusRunning
	return nil
}

// Pause suspends ticks and spawns. It reports whether the status changed.
func (s *Session) Pause() bool {
	if s.status != StatusRunning {
		return false
	}
	s.status = StatusPaused
	return true
}

// Resume continues a paused session from where it stopped.
func (s *Session) Resume() bool {
	if s.status != StatusPaused {
		return false
	}
	s.status = StatusRunning
	return true
}

// End stops a running session. It reports whether the status changed.
func (s *Session) End(reason Reason) bool {
	if s.status != StatusRunning {
		return false
	}
	s.status = StatusEnded
	s.reason = reason
	s.emit(Event{Kind: EventEnded, Reason: reason})
	return true
}

// Reset discards all state and returns the session to Idle.
func (s *Session) Reset() {
	s.clear()
	s.status = StatusIdle
}

// Restart is Reset followed by Start.
func (s *Session) Restart() error {
	s.Reset()
	return s.Start()
}

func (s *Session) clear() {
	s.reason = ReasonNone
	s.score = 0
	s.speed = s.cfg.InitialSpeed
	s.ticks = 0
	s.spawned = 0
	s.caught = 0
	s.missed = 0
	s.nextID = 0
	s.remaining = 0
	s.entities = nil
	s.pending = nil
	s.events = nil
	s.words = map[string]*WordResult{}
	s.actor = Actor{
		Rect: Rect{
			X: s.cfg.Width * 0.1,
			Y: s.cfg.Height - s.cfg.ActorH,
			W: s.cfg.ActorW,
			H: s.cfg.ActorH,
		},
		Gravity: s.cfg.Gravity,
		Lift:    s.cfg.Lift,
	}
}

// Push queues an input for the next tick. Inputs never touch entity state
// directly.
func (s *Session) Push(in Input) {
	s.pending = append(s.pending, in)
}

// Spawn runs the spawn policy once. It is a no-op unless the session is
// running, and reports whether an entity was created.
func (s *Session) Spawn() bool {
	if s.status != StatusRunning {
		return false
	}
	e, ok := s.rules.spawner.spawn(s)
	if !ok {
		return false
	}
	s.nextID++
	e.ID = s.nextID
	e.Active = true
	e.SpawnTick = s.ticks
	if s.rules.motion != motionNone {
		e.Velocity = s.speed
	}
	s.entities = append(s.entities, &e)
	s.spawned++
	s.speed = s.cfg.InitialSpeed + float64(s.spawned)*s.cfg.SpeedIncrement
	s.emit(Event{Kind: EventSpawned, EntityID: e.ID, Label: e.Label})
	return true
}

// Tick advances the simulation by one frame. It is a no-op unless the
// session is running.
func (s *Session) Tick() {
	if s.status != StatusRunning {
		return
	}
	s.ticks++
	s.drain()
	if s.status != StatusRunning {
		s.sweep()
		return
	}
	if s.cfg.Variant == VariantRunner {
		s.actor.step(s.cfg.Height)
	}
	s.move()
	s.rules.resolver.interact(s)
	if s.status == StatusRunning {
		s.applyBounds()
	}
	if s.status == StatusRunning {
		s.countdown()
	}
	s.sweep()
}

// Resolve applies one input immediately and returns the score delta. Drivers
// normally use Push; Resolve is the interaction policy itself.
func (s *Session) Resolve(in Input) int {
	if s.status != StatusRunning {
		return 0
	}
	if in.Kind == InputStop {
		s.End(ReasonStopped)
		return 0
	}
	return s.rules.resolver.resolve(s, in)
}

// Resize changes the canvas. Falling and centered entities keep their
// relative height so a shrinking canvas never lands a word; ground-anchored
// shapes follow the new floor and the actor keeps its column.
func (s *Session) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	oldHeight := s.cfg.Height
	s.cfg.Width = width
	s.cfg.Height = height
	if s.cfg.Variant != VariantRunner {
		scale := height / oldHeight
		for _, e := range s.entities {
			e.Y = math.Min(e.Y*scale, height-e.H)
		}
		return
	}
	s.actor.X = math.Max(0, math.Min(s.actor.X, width-s.actor.W))
	if s.actor.Bottom() > height {
		s.actor.Y = height - s.actor.H
	}
	for _, e := range s.entities {
		e.Y = height - e.H
	}
}

func (s *Session) drain() {
	pending := s.pending
	s.pending = nil
	for _, in := range pending {
		s.Resolve(in)
		if s.status != StatusRunning {
			return
		}
	}
}

func (s *Session) move() {
	for _, e := range s.entities {
		if !e.Active {
			continue
		}
		switch s.rules.motion {
		case motionFall:
			e.Y += e.Velocity
		case motionApproach:
			e.X -= e.Velocity
		}
	}
}

func (s *Session) outOfBounds(e *Entity) bool {
	switch s.rules.motion {
	case motionFall:
		return e.Y >= s.cfg.Height
	case motionApproach:
		return e.Right() <= 0
	default:
		return false
	}
}

func (s *Session) applyBounds() {
	for _, e := range s.entities {
		if !e.Active || !s.outOfBounds(e) {
			continue
		}
		e.deactivate()
		if e.Passed {
			continue
		}
		s.miss(e)
		s.emit(Event{Kind: EventMissed, EntityID: e.ID, Label: e.Label})
		if s.cfg.Mode == ModeChallenge {
			s.End(ReasonMissed)
			return
		}
	}
}

func (s *Session) countdown() {
	if s.cfg.TargetTimeout <= 0 {
		return
	}
	target := s.activeTarget()
	if target == nil {
		return
	}
	s.remaining -= s.cfg.TickDuration
	if s.remaining > 0 {
		return
	}
	s.remaining = 0
	target.deactivate()
	s.miss(target)
	s.emit(Event{Kind: EventTimedOut, EntityID: target.ID, Label: target.Label})
	s.End(ReasonTimeout)
}

func (s *Session) sweep() {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.Active {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = kept
}

func (s *Session) activeTarget() *Entity {
	for _, e := range s.entities {
		if e.Active {
			return e
		}
	}
	return nil
}

func (s *Session) catch(e *Entity) int {
	s.score += s.cfg.Reward
	s.caught++
	w := s.word(e.Label)
	if w != nil {
		w.Caught++
		w.LatencyTicks += int64(s.ticks - e.SpawnTick)
		w.LatencyCount++
	}
	s.emit(Event{Kind: EventCaught, EntityID: e.ID, Label: e.Label, Delta: s.cfg.Reward})
	return s.cfg.Reward
}

func (s *Session) miss(e *Entity) {
	e.Missed = true
	s.missed++
	if w := s.word(e.Label); w != nil {
		w.Missed++
	}
}

func (s *Session) word(label string) *WordResult {
	if label == "" {
		return nil
	}
	key := Normalize(label)
	w, ok := s.words[key]
	if !ok {
		w = &WordResult{Label: key}
		s.words[key] = w
	}
	return w
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

// Events returns and clears the events emitted since the last call.
func (s *Session) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

// Entities returns a copy of the live entities in insertion order.
func (s *Session) Entities() []Entity {
	out := make([]Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, *e)
	}
	return out
}

// WordResults returns per-label tallies sorted by label.
func (s *Session) WordResults() []WordResult {
	out := make([]WordResult, 0, len(s.words))
	for _, w := range s.words {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}

// Actor returns the runner sprite.
func (s *Session) Actor() Actor { return s.actor }

// Config returns the session settings, including the current canvas size.
func (s *Session) Config() Config { return s.cfg }

func (s *Session) Status() Status { return s.status }
func (s *Session) Reason() Reason { return s.reason }
func (s *Session) Score() int     { return s.score }
func (s *Session) Speed() float64 { return s.speed }
func (s *Session) Ticks() int     { return s.ticks }
func (s *Session) Spawned() int   { return s.spawned }
func (s *Session) Caught() int    { return s.caught }
func (s *Session) Missed() int    { return s.missed }

// Elapsed is the simulated time spent running.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.ticks) * s.cfg.TickDuration
}

// Remaining is the quiz countdown for the current question.
func (s *Session) Remaining() time.Duration { return s.remaining }

package game

import (
	"math"

	"github.com/mattn/go-runewidth"
)

type motion int

const (
	motionNone motion = iota
	motionFall
	motionApproach
)

type spawner interface {
	spawn(s *Session) (Entity, bool)
}

type resolver interface {
	resolve(s *Session, in Input) int
	interact(s *Session)
}

// rules bundles the per-variant policies driving one loop.
type rules struct {
	spawner  spawner
	resolver resolver
	motion   motion
}

func rulesFor(v Variant) rules {
	switch v {
	case VariantRunner:
		return rules{spawner: obstacleSpawner{}, resolver: liftResolver{}, motion: motionApproach}
	case VariantQuiz:
		return rules{spawner: puzzleSpawner{}, resolver: strictMatcher{}, motion: motionNone}
	default:
		return rules{spawner: wordSpawner{}, resolver: wordMatcher{}, motion: motionFall}
	}
}

// wordSpawner drops a random label from above the canvas.
type wordSpawner struct{}

func (wordSpawner) spawn(s *Session) (Entity, bool) {
	label := s.picker.Pick(s.cfg.Labels)
	w := float64(runewidth.StringWidth(label) + 2)
	x := s.rnd.Float64() * math.Max(0, s.cfg.Width-w)
	return Entity{
		Label: label,
		Rect:  Rect{X: x, Y: -1, W: w, H: 1},
	}, true
}

// obstacleSpawner places a ground obstacle just past the right edge.
type obstacleSpawner struct{}

func (obstacleSpawner) spawn(s *Session) (Entity, bool) {
	w := 2 + s.rnd.Float64()
	h := 2 + s.rnd.Float64()*2
	return Entity{
		Rect: Rect{X: s.cfg.Width, Y: s.cfg.Height - h, W: w, H: h},
	}, true
}

// puzzleSpawner shows the next question once the previous one is gone.
type puzzleSpawner struct{}

func (puzzleSpawner) spawn(s *Session) (Entity, bool) {
	if s.activeTarget() != nil || s.spawned >= len(s.cfg.Puzzles) {
		return Entity{}, false
	}
	p := s.cfg.Puzzles[s.spawned]
	w := float64(runewidth.StringWidth(p.Question))
	s.remaining = s.cfg.TargetTimeout
	return Entity{
		Label:  p.Answer,
		Prompt: p.Question,
		Rect:   Rect{X: math.Max(0, (s.cfg.Width-w)/2), Y: s.cfg.Height / 2, W: w, H: 1},
	}, true
}

// wordMatcher catches the first active entity whose label equals the
// utterance. Unmatched utterances change nothing.
type wordMatcher struct{}

func (wordMatcher) resolve(s *Session, in Input) int {
	if in.Kind != InputUtterance {
		return 0
	}
	text := Normalize(in.Text)
	if text == "" {
		return 0
	}
	for _, e := range s.entities {
		if !e.Active || Normalize(e.Label) != text {
			continue
		}
		e.deactivate()
		return s.catch(e)
	}
	return 0
}

func (wordMatcher) interact(*Session) {}

// strictMatcher accepts only the current answer; anything else ends the
// session.
type strictMatcher struct{}

func (strictMatcher) resolve(s *Session, in Input) int {
	if in.Kind != InputUtterance {
		return 0
	}
	text := Normalize(in.Text)
	target := s.activeTarget()
	if text == "" || target == nil {
		return 0
	}
	target.deactivate()
	if Normalize(target.Label) != text {
		s.miss(target)
		s.emit(Event{Kind: EventWrong, EntityID: target.ID, Label: target.Label})
		s.End(ReasonWrongAnswer)
		return 0
	}
	delta := s.catch(target)
	if s.caught >= len(s.cfg.Puzzles) {
		s.End(ReasonCompleted)
	}
	return delta
}

func (strictMatcher) interact(*Session) {}

// liftResolver turns any voice signal into lift and ends the session on the
// first collision.
type liftResolver struct{}

func (liftResolver) resolve(s *Session, in Input) int {
	switch in.Kind {
	case InputLift:
		s.actor.lift()
	case InputUtterance:
		if Normalize(in.Text) != "" {
			s.actor.lift()
		}
	}
	return 0
}

func (liftResolver) interact(s *Session) {
	for _, e := range s.entities {
		if !e.Active {
			continue
		}
		if s.actor.Overlaps(e.Rect) {
			s.emit(Event{Kind: EventCollided, EntityID: e.ID})
			s.End(ReasonCollision)
			return
		}
		if !e.Passed && s.actor.X > e.Right() {
			e.Passed = true
			s.score += s.cfg.PassReward
			s.emit(Event{Kind: EventPassed, EntityID: e.ID, Delta: s.cfg.PassReward})
		}
	}
}

// Package audio plays synthesized sound cues and background music.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a short sound effect.
type Cue int

const (
	// CueCatch plays when a word is caught or an obstacle is passed.
	CueCatch Cue = iota
	// CueMiss plays when a word lands or an answer is wrong.
	CueMiss
	// CueLift plays on a runner lift.
	CueLift
	// CueGameOver plays when a session ends.
	CueGameOver
)

// Player is the audio surface used by the game driver.
type Player interface {
	Play(cue Cue)
	Music(on bool)
	SetVolume(v float64)
	Close()
}

// Nop is a silent player.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// Music implements Player.
func (Nop) Music(bool) {}

// SetVolume implements Player.
func (Nop) SetVolume(float64) {}

// Close implements Player.
func (Nop) Close() {}

// Open initializes the speaker and returns a player. When the audio device
// cannot be opened the failure is logged and a silent player is returned.
func Open(volume float64, log zerolog.Logger) Player {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, running silent")
		return Nop{}
	}
	p := &speakerPlayer{graph: newGraph(volume), log: log}
	speaker.Play(p.graph.master)
	log.Debug().Float64("volume", volume).Msg("audio ready")
	return p
}

type speakerPlayer struct {
	mu     sync.Mutex
	graph  *graph
	log    zerolog.Logger
	closed bool
}

func (p *speakerPlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	err := p.graph.play(cue)
	speaker.Unlock()
	if err != nil {
		p.log.Error().Err(err).Int("cue", int(cue)).Msg("play cue")
	}
}

func (p *speakerPlayer) Music(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.graph.music.Paused = !on
	speaker.Unlock()
}

func (p *speakerPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.graph.setMusicVolume(v)
	speaker.Unlock()
}

func (p *speakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}

// graph is the mixing tree: cues and the music bed feed one mixer.
type graph struct {
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicVolume *effects.Volume
	master      beep.Streamer
}

func newGraph(volume float64) *graph {
	g := &graph{mixer: &beep.Mixer{}}
	g.musicVolume = &effects.Volume{Streamer: newMelody(sampleRate), Base: 2}
	g.setMusicVolume(volume)
	g.music = &beep.Ctrl{Streamer: g.musicVolume, Paused: true}
	g.mixer.Add(g.music)
	g.master = g.mixer
	return g
}

func (g *graph) setMusicVolume(v float64) {
	if v <= 0 {
		g.musicVolume.Silent = true
		g.musicVolume.Volume = 0
		return
	}
	if v > 1 {
		v = 1
	}
	g.musicVolume.Silent = false
	g.musicVolume.Volume = math.Log2(v)
}

func (g *graph) play(cue Cue) error {
	s, err := cueStreamer(cue)
	if err != nil {
		return err
	}
	g.mixer.Add(s)
	return nil
}

type tone struct {
	freq float64
	dur  time.Duration
}

var cueTones = map[Cue][]tone{
	CueCatch:    {{freq: 880, dur: 60 * time.Millisecond}, {freq: 1320, dur: 90 * time.Millisecond}},
	CueMiss:     {{freq: 220, dur: 160 * time.Millisecond}},
	CueLift:     {{freq: 660, dur: 40 * time.Millisecond}},
	CueGameOver: {{freq: 440, dur: 150 * time.Millisecond}, {freq: 330, dur: 150 * time.Millisecond}, {freq: 220, dur: 300 * time.Millisecond}},
}

func cueStreamer(cue Cue) (beep.Streamer, error) {
	tones := cueTones[cue]
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, fade(beep.Take(sampleRate.N(t.dur), sine), sampleRate.N(t.dur)))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -2}, nil
}

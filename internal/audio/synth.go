package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// envelope applies a linear release over the last quarter of a tone.
type envelope struct {
	s     beep.Streamer
	pos   int
	total int
}

func fade(s beep.Streamer, total int) beep.Streamer {
	return &envelope{s: s, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	release := e.total / 4
	for i := 0; i < n; i++ {
		left := e.total - e.pos
		if release > 0 && left < release {
			gain := float64(left) / float64(release)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// melody is an endless soft arpeggio used as the music bed.
type melody struct {
	sr        beep.SampleRate
	notes     []float64
	noteLen   int
	pos       int
	phase     float64
	amplitude float64
}

func newMelody(sr beep.SampleRate) *melody {
	return &melody{
		sr:        sr,
		notes:     []float64{261.63, 329.63, 392.00, 523.25, 392.00, 329.63},
		noteLen:   sr.N(250 * time.Millisecond),
		amplitude: 0.12,
	}
}

func (m *melody) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		note := m.notes[(m.pos/m.noteLen)%len(m.notes)]
		within := float64(m.pos%m.noteLen) / float64(m.noteLen)
		gain := m.amplitude * (1 - within)
		v := gain * math.Sin(2*math.Pi*m.phase)
		samples[i][0] = v
		samples[i][1] = v
		m.phase += note / float64(m.sr)
		m.phase -= math.Floor(m.phase)
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

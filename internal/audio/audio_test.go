package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func peak(samples [][2]float64) float64 {
	var p float64
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func drain(s beep.Streamer, max int) int {
	buf := make([][2]float64, 512)
	total := 0
	for total < max {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	return total
}

func TestCueStreamersAreFinite(t *testing.T) {
	for cue := range cueTones {
		s, err := cueStreamer(cue)
		if err != nil {
			t.Fatalf("cue %d: %v", cue, err)
		}
		limit := sampleRate.N(5 * time.Second)
		if got := drain(s, limit); got >= limit || got == 0 {
			t.Fatalf("cue %d: expected finite non-empty stream, got %d samples", cue, got)
		}
	}
}

func TestGraphMixesCues(t *testing.T) {
	g := newGraph(0.5)
	buf := make([][2]float64, 1024)
	g.master.Stream(buf)
	if peak(buf) != 0 {
		t.Fatalf("expected silence with paused music and no cues")
	}
	if err := g.play(CueCatch); err != nil {
		t.Fatalf("play: %v", err)
	}
	g.master.Stream(buf)
	if peak(buf) == 0 {
		t.Fatalf("expected cue samples in mix")
	}
}

func TestMusicToggleAndVolume(t *testing.T) {
	g := newGraph(0.5)
	g.music.Paused = false
	buf := make([][2]float64, 2048)
	g.master.Stream(buf)
	loud := peak(buf)
	if loud == 0 {
		t.Fatalf("expected music samples")
	}
	g.setMusicVolume(0)
	g.master.Stream(buf)
	if peak(buf) != 0 {
		t.Fatalf("expected silence at zero volume")
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	m := newMelody(sampleRate)
	total := 400
	s := fade(beep.Take(total, m), total)
	buf := make([][2]float64, total)
	n, _ := s.Stream(buf)
	if n != total {
		t.Fatalf("expected %d samples, got %d", total, n)
	}
	if math.Abs(buf[total-1][0]) > 0.01 {
		t.Fatalf("expected tail to fade, got %v", buf[total-1][0])
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	p.Play(CueGameOver)
	p.Music(true)
	p.SetVolume(1)
	p.Close()
}

package game

import "testing"

func TestParseNames(t *testing.T) {
	if v, err := ParseVariant(" Runner "); err != nil || v != VariantRunner {
		t.Fatalf("unexpected variant %q, %v", v, err)
	}
	if _, err := ParseVariant("flappy3d"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if m, err := ParseMode("CHALLENGE"); err != nil || m != ModeChallenge {
		t.Fatalf("unexpected mode %q, %v", m, err)
	}
	if d, err := ParseDifficulty("hard"); err != nil || d != DifficultyHard {
		t.Fatalf("unexpected difficulty %q, %v", d, err)
	}
	if StatusPaused.String() != "paused" {
		t.Fatalf("unexpected status name %q", StatusPaused.String())
	}
}

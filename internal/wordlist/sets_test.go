package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/wordfall/internal/game"
)

func TestSetReturnsCopy(t *testing.T) {
	words := Set(game.DifficultyEasy)
	if len(words) != 5 || words[0] != "cat" {
		t.Fatalf("unexpected easy set: %v", words)
	}
	words[0] = "mutated"
	if Set(game.DifficultyEasy)[0] != "cat" {
		t.Fatalf("built-in set was mutated")
	}
	if got := SetNames(); len(got) != 3 || got[0] != "easy" {
		t.Fatalf("unexpected set names: %v", got)
	}
}

func TestLoadWordsNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	body := "# animals\nCat\n\ncat\ndog\nco-op\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := LoadWords(path, Speakable)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "cat" || words[1] != "dog" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadPuzzles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.toml")
	body := `[[puzzle]]
question = "2 + 2?"
answer = "4"

[[puzzle]]
question = "Color of the sky?"
answer = " blue "
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write puzzles: %v", err)
	}
	puzzles, err := LoadPuzzles(path)
	if err != nil {
		t.Fatalf("load puzzles: %v", err)
	}
	if len(puzzles) != 2 || puzzles[1].Answer != "blue" {
		t.Fatalf("unexpected puzzles: %+v", puzzles)
	}
}

package wordlist

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/wordfall/internal/game"
)

var builtinSets = map[game.Difficulty][]string{
	game.DifficultyEasy:   {"cat", "dog", "bat", "hat", "rat"},
	game.DifficultyNormal: {"start", "jump", "run", "fly", "stop", "go", "up", "down", "left", "right"},
	game.DifficultyHard:   {"elephant", "giraffe", "hippopotamus", "rhinoceros", "crocodile"},
}

var builtinPuzzles = []game.Puzzle{
	{Question: "What is 5 + 3?", Answer: "8"},
	{Question: "What is the capital of France?", Answer: "Paris"},
	{Question: "How many legs does a spider have?", Answer: "8"},
	{Question: "What is the square root of 16?", Answer: "4"},
	{Question: "Spell the word 'Hello'", Answer: "Hello"},
}

// Set returns a copy of the built-in word set for a difficulty.
func Set(d game.Difficulty) []string {
	return append([]string(nil), builtinSets[d]...)
}

// SetNames lists the built-in set names in a stable order.
func SetNames() []string {
	names := make([]string, 0, len(builtinSets))
	for d := range builtinSets {
		names = append(names, string(d))
	}
	sort.Strings(names)
	return names
}

// Puzzles returns a copy of the built-in quiz.
func Puzzles() []game.Puzzle {
	return append([]game.Puzzle(nil), builtinPuzzles...)
}

type puzzleFile struct {
	Puzzles []game.Puzzle `toml:"puzzle"`
}

// LoadPuzzles reads [[puzzle]] tables with question and answer keys.
func LoadPuzzles(path string) ([]game.Puzzle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	var file puzzleFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode puzzles: %w", err)
	}
	out := make([]game.Puzzle, 0, len(file.Puzzles))
	for i, p := range file.Puzzles {
		p.Question = strings.TrimSpace(p.Question)
		p.Answer = strings.TrimSpace(p.Answer)
		if p.Question == "" || p.Answer == "" {
			return nil, fmt.Errorf("puzzle %d needs both question and answer", i+1)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("puzzle file is empty")
	}
	return out, nil
}

// Package main provides the CLI entrypoint for wordfall.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordfall/internal/audio"
	"github.com/verte-zerg/wordfall/internal/config"
	"github.com/verte-zerg/wordfall/internal/game"
	"github.com/verte-zerg/wordfall/internal/generator"
	"github.com/verte-zerg/wordfall/internal/logging"
	"github.com/verte-zerg/wordfall/internal/model"
	"github.com/verte-zerg/wordfall/internal/store"
	"github.com/verte-zerg/wordfall/internal/tui"
	"github.com/verte-zerg/wordfall/internal/voice"
	"github.com/verte-zerg/wordfall/internal/wordlist"
)

const (
	defaultVariant     = "catcher"
	defaultMode        = "free"
	defaultDifficulty  = "normal"
	defaultWeakTop     = 3
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultMusicVolume = 0.3
	defaultFPS         = 20
	defaultCurveWindow = 10
	defaultLogLevel    = "info"
)

var (
	playVariant     string
	playMode        string
	playDifficulty  string
	playWordList    string
	playPuzzles     string
	playFocusWeak   bool
	playWeakTop     int
	playWeakFactor  float64
	playWeakWindow  int
	playSound       bool
	playMusicVolume float64
	playRecognizer  string
	playFPS         int
	playSeed        int64

	logLevel string

	statsVariant     string
	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordfall",
		Short:         "Voice and typing arcade trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error, off)")

	rootCmd.Flags().StringVar(&playVariant, "variant", defaultVariant, "game variant (catcher, runner, quiz)")
	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "game mode (free, challenge)")
	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "difficulty (easy, normal, hard)")
	rootCmd.Flags().StringVar(&playWordList, "wordlist", "", "word list file or name in the wordlists dir (default: built-in set)")
	rootCmd.Flags().StringVar(&playPuzzles, "puzzles", "", "quiz TOML file with [[puzzle]] tables (default: built-in quiz)")
	rootCmd.Flags().BoolVar(&playFocusWeak, "focus-weak", false, "spawn weak words more often")
	rootCmd.Flags().IntVar(&playWeakTop, "weak-top", defaultWeakTop, "number of weak words to focus on")
	rootCmd.Flags().Float64Var(&playWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for weak words")
	rootCmd.Flags().IntVar(&playWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak words")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "play sound cues and music")
	rootCmd.Flags().Float64Var(&playMusicVolume, "music-volume", defaultMusicVolume, "background music volume (0-1)")
	rootCmd.Flags().StringVar(&playRecognizer, "recognizer", "", "speech-to-text command printing one utterance per line")
	rootCmd.Flags().IntVar(&playFPS, "fps", defaultFPS, "frames per second")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0: time based)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.LogLevel)
	applyStringConfig(cmd, "variant", &playVariant, fileCfg.Play.Variant)
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Play.Mode)
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Play.Difficulty)
	applyStringConfig(cmd, "wordlist", &playWordList, fileCfg.Play.WordList)
	applyStringConfig(cmd, "puzzles", &playPuzzles, fileCfg.Play.Puzzles)
	applyBoolConfig(cmd, "focus-weak", &playFocusWeak, fileCfg.Play.FocusWeak)
	applyIntConfig(cmd, "weak-top", &playWeakTop, fileCfg.Play.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &playWeakFactor, fileCfg.Play.WeakFactor)
	applyIntConfig(cmd, "weak-window", &playWeakWindow, fileCfg.Play.WeakWindow)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Play.Sound)
	applyFloatConfig(cmd, "music-volume", &playMusicVolume, fileCfg.Play.MusicVolume)
	applyStringConfig(cmd, "recognizer", &playRecognizer, fileCfg.Play.Recognizer)
	applyIntConfig(cmd, "fps", &playFPS, fileCfg.Play.FPS)

	cfg := model.Config{
		Variant:      strings.ToLower(strings.TrimSpace(playVariant)),
		Mode:         strings.ToLower(strings.TrimSpace(playMode)),
		Difficulty:   strings.ToLower(strings.TrimSpace(playDifficulty)),
		WordListPath: playWordList,
		PuzzlesPath:  playPuzzles,
		FocusWeak:    playFocusWeak,
		WeakTop:      playWeakTop,
		WeakFactor:   playWeakFactor,
		WeakWindow:   playWeakWindow,
		Sound:        playSound,
		MusicVolume:  playMusicVolume,
		Recognizer:   playRecognizer,
		FPS:          playFPS,
		Seed:         playSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	log, closeLog := openLogger()
	defer closeLog()
	gameCfg, wordListPath, err := buildGameConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var player audio.Player = audio.Nop{}
	if cfg.Sound {
		player = audio.Open(cfg.MusicVolume, log)
	}
	defer player.Close()

	var recognizer voice.Recognizer
	if cfg.Recognizer != "" {
		rec, err := voice.ParseCommand(cfg.Recognizer, log)
		if err != nil {
			return fmt.Errorf("invalid --recognizer: %w", err)
		}
		recognizer = rec
	}

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewSeeded(cfg.Seed)
	}
	m, err := tui.NewModel(tui.Options{
		Config:       cfg,
		Game:         gameCfg,
		WordListPath: wordListPath,
		Store:        st,
		Generator:    gen,
		Audio:        player,
		Recognizer:   recognizer,
		Log:          log,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildGameConfig resolves the variant tuning and the label source.
func buildGameConfig(cfg model.Config) (game.Config, string, error) {
	variant, err := game.ParseVariant(cfg.Variant)
	if err != nil {
		return game.Config{}, "", fmt.Errorf("--variant: %w", err)
	}
	mode, err := game.ParseMode(cfg.Mode)
	if err != nil {
		return game.Config{}, "", fmt.Errorf("--mode: %w", err)
	}
	difficulty, err := game.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return game.Config{}, "", fmt.Errorf("--difficulty: %w", err)
	}

	gameCfg := game.DefaultConfig(variant, mode, difficulty)
	gameCfg.TickDuration = time.Second / time.Duration(cfg.FPS)
	gameCfg.Seed = cfg.Seed

	wordListPath := "builtin:" + string(difficulty)
	gameCfg.Labels = wordlist.Set(difficulty)
	if cfg.WordListPath != "" {
		wordListPath = resolveWordListPath(cfg.WordListPath)
		labels, err := wordlist.LoadWords(wordListPath, wordlist.Speakable)
		if err != nil {
			return game.Config{}, "", fmt.Errorf("failed to load word list %s: %w", wordListPath, err)
		}
		gameCfg.Labels = labels
	}

	gameCfg.Puzzles = wordlist.Puzzles()
	if cfg.PuzzlesPath != "" {
		puzzles, err := wordlist.LoadPuzzles(cfg.PuzzlesPath)
		if err != nil {
			return game.Config{}, "", fmt.Errorf("failed to load puzzles %s: %w", cfg.PuzzlesPath, err)
		}
		gameCfg.Puzzles = puzzles
		if variant == game.VariantQuiz {
			wordListPath = cfg.PuzzlesPath
		}
	} else if variant == game.VariantQuiz {
		wordListPath = "builtin:quiz"
	}
	return gameCfg, wordListPath, nil
}

// resolveWordListPath accepts a path or a bare name from the wordlists dir.
func resolveWordListPath(value string) string {
	if strings.ContainsRune(value, os.PathSeparator) {
		return value
	}
	if _, err := os.Stat(value); err == nil {
		return value
	}
	return filepath.Join(config.DefaultWordListDir(), strings.TrimSuffix(value, ".txt")+".txt")
}

func openLogger() (zerolog.Logger, func()) {
	log, closer, err := logging.Open(config.DefaultLogPath(), logLevel)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return zerolog.Nop(), func() {}
	}
	return log, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}
}

func validateConfig(cfg model.Config) error {
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	if cfg.MusicVolume < 0 || cfg.MusicVolume > 1 {
		return fmt.Errorf("--music-volume must be between 0 and 1")
	}
	if cfg.FPS < 1 || cfg.FPS > 120 {
		return fmt.Errorf("--fps must be between 1 and 120")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

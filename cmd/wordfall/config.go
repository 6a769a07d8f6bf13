package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordfall/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the commented config file unless it exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordfall configuration
# Uncomment a value to enable it. CLI flags override config values.

# log-level = %q          # trace, debug, info, warn, error, off

[play]
# variant = %q        # catcher, runner or quiz
# mode = %q              # free or challenge (a miss ends the round)
# difficulty = %q      # easy, normal or hard
# wordlist = "animals"       # Word list file or name under the wordlists dir
# puzzles = "quiz.toml"      # [[puzzle]] tables with question and answer
# focus-weak = false         # Spawn weak words more often
# weak-top = %d               # Number of weak words to focus on
# weak-factor = %.1f         # Extra weight for weak words
# weak-window = %d           # Number of recent sessions to compute weak words
# sound = true               # Sound cues and music
# music-volume = %.1f        # Background music volume (0-1)
# recognizer = "vosk-stream" # Speech-to-text command, one utterance per line
# fps = %d                   # Frames per second
`,
		defaultLogLevel,
		defaultVariant,
		defaultMode,
		defaultDifficulty,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultMusicVolume,
		defaultFPS,
	)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordfall/internal/config"
	"github.com/verte-zerg/wordfall/internal/game"
	"github.com/verte-zerg/wordfall/internal/model"
)

func TestConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordfall", "config.toml")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Play.Variant != nil || cfg.LogLevel != nil {
		t.Fatalf("template values should be commented out")
	}

	if err := os.WriteFile(path, []byte(uncomment(defaultConfigTemplate())), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if cfg.Play.FPS == nil || *cfg.Play.FPS != defaultFPS {
		t.Fatalf("expected fps %d, got %v", defaultFPS, cfg.Play.FPS)
	}
}

// uncomment enables every key of the template.
func uncomment(template string) string {
	var out []string
	for _, line := range strings.Split(template, "\n") {
		line = strings.TrimPrefix(line, "# ")
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.Contains(line, "=") {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func TestValidateConfig(t *testing.T) {
	ok := model.Config{FPS: 20, MusicVolume: 0.5}
	if err := validateConfig(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := ok
	bad.FPS = 0
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected fps error")
	}
	bad = ok
	bad.MusicVolume = 1.5
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected volume error")
	}
}

func TestBuildGameConfig(t *testing.T) {
	cfg := model.Config{Variant: "catcher", Mode: "challenge", Difficulty: "easy", FPS: 25, Seed: 9}
	gameCfg, source, err := buildGameConfig(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if gameCfg.TickDuration != 40*time.Millisecond {
		t.Fatalf("unexpected tick: %v", gameCfg.TickDuration)
	}
	if source != "builtin:easy" || len(gameCfg.Labels) != 5 || gameCfg.Mode != game.ModeChallenge {
		t.Fatalf("unexpected config: %s %+v", source, gameCfg)
	}

	path := filepath.Join(t.TempDir(), "animals.txt")
	if err := os.WriteFile(path, []byte("# zoo\nOtter\nyak\nyak\n42\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	cfg.WordListPath = path
	gameCfg, source, err = buildGameConfig(cfg)
	if err != nil {
		t.Fatalf("build with list: %v", err)
	}
	if source != path || strings.Join(gameCfg.Labels, ",") != "otter,yak" {
		t.Fatalf("unexpected labels from %s: %v", source, gameCfg.Labels)
	}

	cfg.Variant = "tetris"
	if _, _, err := buildGameConfig(cfg); err == nil {
		t.Fatalf("expected variant error")
	}
}

func TestCustomWordLists(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	names, err := customWordLists(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Join(names, ",") != "a,b" {
		t.Fatalf("unexpected names: %v", names)
	}
	missing, err := customWordLists(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("expected no lists for missing dir, got %v %v", missing, err)
	}
}

func TestSetsCommandListsBuiltins(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cmd := newSetsCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := runSetsCmd(cmd, nil); err != nil {
		t.Fatalf("sets: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"easy", "cat dog bat hat rat", "hippopotamus", "What is 5 + 3?"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("expected %q in output:\n%s", needle, out)
		}
	}
}

// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordfall/internal/audio"
	"github.com/verte-zerg/wordfall/internal/game"
	"github.com/verte-zerg/wordfall/internal/generator"
	"github.com/verte-zerg/wordfall/internal/model"
	"github.com/verte-zerg/wordfall/internal/store"
	"github.com/verte-zerg/wordfall/internal/voice"
)

// chrome is the number of rows outside the canvas: header, prompt, footer.
const chrome = 3

type frameMsg struct{ gen int }

type spawnMsg struct{ gen int }

type voiceMsg struct {
	res voice.Result
	ok  bool
}

// Options wires the game model to its collaborators. Store, Audio and
// Recognizer may be nil.
type Options struct {
	Config       model.Config
	Game         game.Config
	WordListPath string
	Store        *store.Store
	Generator    *generator.Generator
	Audio        audio.Player
	Recognizer   voice.Recognizer
	Log          zerolog.Logger
}

// Model implements the Bubble Tea game UI.
type Model struct {
	config       model.Config
	wordListPath string
	store        *store.Store
	weighted     *generator.Weighted
	player       audio.Player
	recognizer   voice.Recognizer
	log          zerolog.Logger

	session *game.Session
	input   textinput.Model

	width  int
	height int

	// gen invalidates frame and spawn ticks scheduled before a pause or restart.
	gen       int
	startedAt time.Time
	saved     bool

	voiceCh     <-chan voice.Result
	stopVoice   context.CancelFunc
	voiceStatus string
	heard       string
	notice      string

	volume float64

	best              int
	lastScore         int
	hasLast           bool
	weakNoticePrinted bool
}

var (
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#2E4A62"))
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	actorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// NewModel constructs a game TUI model with an idle session.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		config:       opts.Config,
		wordListPath: opts.WordListPath,
		store:        opts.Store,
		player:       opts.Audio,
		recognizer:   opts.Recognizer,
		log:          opts.Log,
		volume:       opts.Config.MusicVolume,
	}
	if m.player == nil {
		m.player = audio.Nop{}
	}
	gen := opts.Generator
	if gen == nil {
		gen = generator.New()
	}
	var picker game.Picker = gen
	if m.config.FocusWeak {
		m.weighted = gen.Weighted(map[string]struct{}{}, m.config.WeakFactor)
		picker = m.weighted
	}
	session, err := game.NewSession(opts.Game, picker)
	if err != nil {
		return nil, err
	}
	m.session = session

	m.input = textinput.New()
	m.input.Prompt = "say › "
	m.input.Placeholder = placeholderFor(opts.Game.Variant)
	m.input.CharLimit = 64
	m.input.Focus()

	m.loadFooterStats()
	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
	return m, nil
}

// Session exposes the running game for inspection.
func (m *Model) Session() *game.Session {
	return m.session
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startListening(), m.begin())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(10, msg.Width-lipgloss.Width(m.input.Prompt)-2)
		m.session.Resize(float64(msg.Width), float64(maxInt(1, msg.Height-chrome)))
		return m, nil
	case frameMsg:
		if msg.gen != m.gen || m.session.Status() != game.StatusRunning {
			return m, nil
		}
		m.session.Tick()
		m.handleEvents()
		if m.session.Status() != game.StatusRunning {
			return m, nil
		}
		return m, m.frame()
	case spawnMsg:
		if msg.gen != m.gen || m.session.Status() != game.StatusRunning {
			return m, nil
		}
		m.session.Spawn()
		m.handleEvents()
		return m, m.spawn()
	case voiceMsg:
		return m, m.handleVoice(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	cfg := m.session.Config()
	c := newCanvas(int(cfg.Width), int(cfg.Height))
	paintScene(c, m.session)
	switch m.session.Status() {
	case game.StatusPaused:
		c.centered(c.h/2, " PAUSED · esc to resume ", &alertStyle)
	case game.StatusEnded:
		c.centered(c.h/2-1, fmt.Sprintf(" GAME OVER · %s · score %d ", outcomeText(m.session.Reason()), m.session.Score()), &alertStyle)
		c.centered(c.h/2+1, "enter: play again   esc: quit", &mutedStyle)
	}
	lines := []string{
		headerStyle.Render(m.renderHeader()),
		c.render(),
		m.input.View(),
		m.renderFooter(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := m.session.Status()
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, m.quit()
	case tea.KeyEsc:
		switch status {
		case game.StatusRunning:
			m.pause()
			return m, nil
		case game.StatusPaused:
			return m, m.resume()
		case game.StatusEnded:
			return m, m.quit()
		}
		return m, nil
	case tea.KeyCtrlE:
		if status == game.StatusRunning {
			m.session.Push(game.Stop())
		}
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		m.adjustVolume(msg.Type == tea.KeyPgUp)
		return m, nil
	case tea.KeyEnter:
		if status == game.StatusEnded {
			return m, m.begin()
		}
		text := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if text != "" {
			m.submit(text)
		}
		return m, nil
	case tea.KeySpace:
		if m.session.Config().Variant == game.VariantRunner && status == game.StatusRunning {
			m.session.Push(game.Lift())
			m.player.Play(audio.CueLift)
			return m, nil
		}
	}
	if status == game.StatusEnded {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit forwards a typed or spoken utterance to the loop.
func (m *Model) submit(text string) {
	m.heard = text
	if m.session.Status() != game.StatusRunning {
		return
	}
	m.session.Push(game.Utterance(text))
	if m.session.Config().Variant == game.VariantRunner {
		m.player.Play(audio.CueLift)
	}
}

// adjustVolume moves the music volume by one step within [0, 1].
func (m *Model) adjustVolume(up bool) {
	step := 0.1
	if !up {
		step = -step
	}
	m.volume = math.Round(math.Max(0, math.Min(1, m.volume+step))*10) / 10
	m.player.SetVolume(m.volume)
	m.notice = fmt.Sprintf("music %d%%", int(math.Round(m.volume*100)))
}

// begin starts a fresh round and arms the frame and spawn timers.
func (m *Model) begin() tea.Cmd {
	m.session.Reset()
	if err := m.session.Start(); err != nil {
		m.notice = err.Error()
		return nil
	}
	m.gen++
	m.saved = false
	m.notice = ""
	m.startedAt = time.Now()
	m.player.Music(true)
	m.session.Spawn()
	m.handleEvents()
	m.log.Info().
		Str("variant", string(m.session.Config().Variant)).
		Str("mode", string(m.session.Config().Mode)).
		Msg("session started")
	return tea.Batch(m.frame(), m.spawn())
}

func (m *Model) pause() {
	if !m.session.Pause() {
		return
	}
	m.gen++
	m.player.Music(false)
}

func (m *Model) resume() tea.Cmd {
	if !m.session.Resume() {
		return nil
	}
	m.gen++
	m.player.Music(true)
	return tea.Batch(m.frame(), m.spawn())
}

func (m *Model) quit() tea.Cmd {
	switch m.session.Status() {
	case game.StatusRunning, game.StatusPaused:
		m.finishSession("abandoned")
	}
	m.gen++
	if m.stopVoice != nil {
		m.stopVoice()
	}
	m.player.Music(false)
	return tea.Quit
}

func (m *Model) frame() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.session.Config().TickDuration, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func (m *Model) spawn() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.session.Config().SpawnInterval, func(time.Time) tea.Msg {
		return spawnMsg{gen: gen}
	})
}

func (m *Model) handleEvents() {
	for _, ev := range m.session.Events() {
		switch ev.Kind {
		case game.EventCaught:
			m.player.Play(audio.CueCatch)
			m.notice = fmt.Sprintf("+%d %s", ev.Delta, ev.Label)
		case game.EventPassed:
			m.player.Play(audio.CueCatch)
		case game.EventMissed, game.EventWrong, game.EventTimedOut:
			m.player.Play(audio.CueMiss)
			if ev.Label != "" {
				m.notice = "missed " + ev.Label
			}
		case game.EventEnded:
			m.player.Play(audio.CueGameOver)
			m.player.Music(false)
			m.finishSession(string(ev.Reason))
		}
	}
}

func (m *Model) startListening() tea.Cmd {
	if m.recognizer == nil {
		m.voiceStatus = "voice off"
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.stopVoice = cancel
	m.voiceCh = m.recognizer.Listen(ctx)
	m.voiceStatus = "listening"
	return m.listen()
}

func (m *Model) listen() tea.Cmd {
	ch := m.voiceCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-ch
		return voiceMsg{res: res, ok: ok}
	}
}

func (m *Model) handleVoice(msg voiceMsg) tea.Cmd {
	if !msg.ok {
		m.voiceCh = nil
		return nil
	}
	switch {
	case msg.res.Fatal():
		m.log.Error().Err(msg.res.Err).Msg("speech recognition stopped")
		m.voiceStatus = "voice off, type instead"
		if errors.Is(msg.res.Err, voice.ErrUnavailable) {
			m.voiceStatus = "voice unavailable, type instead"
		}
	case msg.res.Err != nil:
		m.log.Debug().Err(msg.res.Err).Msg("recognizer result dropped")
		m.voiceStatus = "listening"
	default:
		m.voiceStatus = "listening"
		m.submit(msg.res.Text)
	}
	return m.listen()
}

func (m *Model) renderHeader() string {
	cfg := m.session.Config()
	segments := []string{
		fmt.Sprintf("wordfall · %s · %s · %s", cfg.Variant, cfg.Mode, cfg.Difficulty),
		fmt.Sprintf("Score %d", m.session.Score()),
		fmt.Sprintf("Best %d", maxInt(m.best, m.session.Score())),
	}
	if cfg.Variant == game.VariantQuiz {
		segments = append(segments, fmt.Sprintf("Time %ds", int(m.session.Remaining().Round(time.Second).Seconds())))
	} else {
		segments = append(segments, fmt.Sprintf("Speed %.2f", m.session.Speed()))
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderFooter() string {
	segments := []string{m.session.Status().String()}
	if m.voiceStatus != "" {
		segments = append(segments, m.voiceStatus)
	}
	if m.heard != "" {
		segments = append(segments, fmt.Sprintf("heard %q", m.heard))
	}
	if m.notice != "" {
		segments = append(segments, m.notice)
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d", m.lastScore))
	}
	segments = append(segments, "esc pause · ctrl+e end · pgup/pgdn music · ctrl+c quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func placeholderFor(v game.Variant) string {
	switch v {
	case game.VariantRunner:
		return "space or any word to fly"
	case game.VariantQuiz:
		return "your answer"
	default:
		return "type a falling word"
	}
}

func outcomeText(r game.Reason) string {
	switch r {
	case game.ReasonMissed:
		return "a word hit the ground"
	case game.ReasonCollision:
		return "crashed"
	case game.ReasonWrongAnswer:
		return "wrong answer"
	case game.ReasonTimeout:
		return "out of time"
	case game.ReasonCompleted:
		return "all questions answered"
	default:
		return "stopped"
	}
}

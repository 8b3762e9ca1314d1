package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/arcanaland/karuta/internal/card"
	"github.com/arcanaland/karuta/internal/narrator"
	"github.com/arcanaland/karuta/internal/session"
)

// Ranges of the speech controls
const (
	MinRate     = 0.5
	MaxRate     = 2.0
	MinVolume   = 0.0
	MaxVolume   = 1.0
	ControlStep = 0.1
)

// narrationDoneMsg is sent when a narration command returns
type narrationDoneMsg struct {
	card card.Card
	err  error
}

// Model is the Bubble Tea model for an interactive game.
//
// All session calls happen inside Update, so the session only ever sees one
// action at a time. Narration runs as a command; while it is in flight new
// game actions are ignored.
type Model struct {
	session  *session.Session
	narrator narrator.Narrator
	opts     narrator.Options
	deckName string
	logger   *log.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// ctx bounds narration; cancelled on quit so the speech program stops
	ctx    context.Context
	cancel context.CancelFunc

	narrating bool
	warning   string
	quitting  bool
}

// NewModel creates a model for s. Narration uses n with opts as the initial
// control values.
func NewModel(s *session.Session, n narrator.Narrator, opts narrator.Options, deckName string, logger *log.Logger) *Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = InfoStyle
	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		session:  s,
		narrator: n,
		opts:     opts,
		deckName: deckName,
		logger:   logger.WithPrefix("tui"),
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  sp,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case narrationDoneMsg:
		m.narrating = false
		if msg.err != nil {
			m.logger.Warn("Narration failed", "prompt", msg.card.Prompt, "error", msg.err)
			m.warning = msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.narrating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// One action at a time: wait for the running narration
	if m.narrating {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Draw):
		m.session.DrawNext()
	case key.Matches(msg, m.keys.Replay):
		m.session.Replay()
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
	case key.Matches(msg, m.keys.Faster):
		m.opts.Rate = step(m.opts.Rate, ControlStep, MinRate, MaxRate)
	case key.Matches(msg, m.keys.Slower):
		m.opts.Rate = step(m.opts.Rate, -ControlStep, MinRate, MaxRate)
	case key.Matches(msg, m.keys.Louder):
		m.opts.Volume = step(m.opts.Volume, ControlStep, MinVolume, MaxVolume)
	case key.Matches(msg, m.keys.Quieter):
		m.opts.Volume = step(m.opts.Volume, -ControlStep, MinVolume, MaxVolume)
	default:
		return m, nil
	}

	m.warning = ""
	return m, m.cueNarration()
}

// cueNarration starts narration if the session has an audio cue waiting
func (m *Model) cueNarration() tea.Cmd {
	c, ok := m.session.ConsumeAudioCue()
	if !ok {
		return nil
	}

	m.narrating = true
	ctx, n, opts := m.ctx, m.narrator, m.opts
	narrate := func() tea.Msg {
		err := narrator.Speak(ctx, n, c, opts)
		return narrationDoneMsg{card: c, err: err}
	}
	return tea.Batch(narrate, m.spinner.Tick)
}

// Narrating reports whether a narration is in flight
func (m *Model) Narrating() bool {
	return m.narrating
}

// Options returns the current speech controls
func (m *Model) Options() narrator.Options {
	return m.opts
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" かるたゲーム "))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(m.deckName))
	b.WriteString("\n\n")

	if c, ok := m.session.Current(); ok {
		b.WriteString(RemainingStyle.Render(fmt.Sprintf("のこり: %d", m.session.Size())))
		b.WriteString("\n")
		if m.session.Exhausted() {
			b.WriteString(EndStyle.Render(c.Prompt))
			b.WriteString("\n")
			b.WriteString(EndStyle.Render(c.Clue))
		} else {
			b.WriteString(PromptStyle.Render(c.Prompt))
			b.WriteString("\n")
			b.WriteString(ClueStyle.Render(c.Clue))
		}
	} else {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%d まい", m.session.Size())))
	}
	b.WriteString("\n\n")

	switch {
	case m.narrating:
		b.WriteString(m.spinner.View())
		b.WriteString(InfoStyle.Render(" よみあげ中…"))
	case m.warning != "":
		b.WriteString(ErrorStyle.Render(m.warning))
	}
	b.WriteString("\n")

	b.WriteString(InfoStyle.Render(fmt.Sprintf("speed %.1f  volume %.1f", m.opts.Rate, m.opts.Volume)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// step moves v by delta, rounded to one decimal and clamped to [lo, hi]
func step(v, delta, lo, hi float64) float64 {
	v = math.Round((v+delta)*10) / 10
	return math.Max(lo, math.Min(hi, v))
}

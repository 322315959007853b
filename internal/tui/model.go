package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
)

type gameSession interface {
	Play(cell int) session.Outcome
	Reset()
	SetMode(mode entity.Mode)
	Snapshot() *entity.Game
}

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayResult
)

// Model is the game screen.
type Model struct {
	session  gameSession
	notifier *Notifier
	keys     KeyMap
	help     help.Model

	game    *entity.Game
	overlay overlay
	result  string

	width  int
	height int
}

// NewModel - builds the game screen. The notifier may be nil, in which case the
// screen only changes on key presses.
func NewModel(gameSession gameSession, notifier *Notifier) Model {
	return Model{
		session:  gameSession,
		notifier: notifier,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		game:     gameSession.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvents(m.notifier)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		return m, nil

	case EventMsg:
		return m.applyEvent(msg.Event), nil

	case eventBatchMsg:
		for _, event := range msg.events {
			m = m.applyEvent(event)
		}

		return m, waitForEvents(m.notifier)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.overlay = overlayNone
		return m, nil
	}

	// open overlays swallow the game shortcuts
	if m.overlay != overlayNone {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Place):
		m.session.Play(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.Mode):
		m.session.SetMode(m.game.Mode.Next())
		m.session.Reset()

	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	default:
		return m, nil
	}

	return m.refresh(m.session.Snapshot()), nil
}

func (m Model) applyEvent(event entity.Event) Model {
	if event.Game == nil {
		return m
	}

	switch event.Kind {
	case entity.EventWin:
		m.result = fmt.Sprintf("Player %s wins! Starting new round...", event.Game.Winner)
		m.overlay = overlayResult
	case entity.EventDraw:
		m.result = "It's a draw! Starting new round..."
		m.overlay = overlayResult
	case entity.EventTimeUp:
		m.result = "Time's up! Starting new round..."
		m.overlay = overlayResult
	case entity.EventReset:
		if m.overlay == overlayResult {
			m.overlay = overlayNone
		}
	}

	return m.refresh(event.Game)
}

// refresh keeps the newest snapshot; events from timer goroutines may arrive late.
func (m Model) refresh(game *entity.Game) Model {
	if m.game == nil || game.Version >= m.game.Version {
		m.game = game
	}

	return m
}

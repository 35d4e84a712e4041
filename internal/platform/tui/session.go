package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/core"
	"github.com/vovakirdan/brickhole/internal/games/brickhole"
	"github.com/vovakirdan/brickhole/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full flow: menu -> game -> menu, plus the
// scoreboard. It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	store    *storage.Store
	cfg      config.BrickholeConfig
	variants []brickhole.Variant
	runtime  core.RuntimeConfig

	view   sessionView
	menu   MenuModel
	game   GameModel
	scores ScoreboardModel

	quitting bool
}

// NewSessionModel creates a session. A non-empty startVariant opens straight
// into a game with that variant; leaving it returns to the menu.
func NewSessionModel(store *storage.Store, cfg config.BrickholeConfig, runtime core.RuntimeConfig, startVariant string) SessionModel {
	variants := brickhole.VariantsFrom(cfg.Variants)
	m := SessionModel{
		store:    store,
		cfg:      cfg,
		variants: variants,
		runtime:  runtime,
		menu:     NewMenuModel(store, variants, runtime.ScreenW, runtime.ScreenH),
	}
	if startVariant != "" {
		m.view = viewGame
		m.game = m.newGame(startVariant)
	}
	return m
}

func (m SessionModel) newGame(variantID string) GameModel {
	return NewGameModel(brickhole.New(m.cfg, variantID), m.store, m.runtime)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active view and switches views.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.view = viewScores
		m.scores = NewScoreboardModel(m.store, m.variants, m.runtime.ScreenW, m.runtime.ScreenH)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.view = viewGame
		m.game = m.newGame(m.menu.Selected().VariantID)
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when a game is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if game, ok := newGame.(GameModel); ok {
		m.game = game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.toMenu()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scores.IsGoingBack():
		m.toMenu()
		return m, nil
	}

	return m, cmd
}

// toMenu rebuilds the menu so high scores are fresh.
func (m *SessionModel) toMenu() {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.variants, m.runtime.ScreenW, m.runtime.ScreenH)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a session in the local terminal until the player quits.
func RunSession(store *storage.Store, cfg config.BrickholeConfig, runtime core.RuntimeConfig, startVariant string) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, runtime, startVariant),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}

// RunScoreboard shows only the scoreboard.
func RunScoreboard(store *storage.Store, cfg config.BrickholeConfig, width, height int) error {
	m := SessionModel{
		store:    store,
		variants: brickhole.VariantsFrom(cfg.Variants),
		runtime:  core.RuntimeConfig{ScreenW: width, ScreenH: height},
		view:     viewScores,
	}
	m.scores = NewScoreboardModel(store, m.variants, width, height)

	p := tea.NewProgram(scoreboardOnly{m}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// scoreboardOnly quits where a full session would return to the menu.
type scoreboardOnly struct {
	SessionModel
}

func (s scoreboardOnly) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.SessionModel.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok || sm.view != viewScores {
		return s, tea.Quit
	}
	s.SessionModel = sm
	return s, cmd
}

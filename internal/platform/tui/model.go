package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickhole/internal/core"
	"github.com/vovakirdan/brickhole/internal/storage"
)

// Game is what the terminal loop drives: a fixed-step simulation that reads
// input frames and draws itself into a screen buffer.
type Game interface {
	ID() string
	Title() string
	Variant() string
	Reset(cfg core.RuntimeConfig)
	Resize(screenW, screenH int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	// Idle reports that further steps would change nothing on screen, so the
	// loop may stop ticking until the next input.
	Idle() bool
}

// GameModel is the Bubble Tea model that runs one game and records its results.
type GameModel struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	state      core.GameState
	keyMapper  *KeyMapper

	frames   uint64 // steps since the current session started
	ticking  bool   // a TickMsg is in flight
	recorded bool   // the current session's result is saved

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the clock.
func NewGameModel(game Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		ticking:    true,
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, m.wake()

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, m.wake()

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game keys are buffered into the input
// frame and applied on the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.abandon()
		m.backToMenu = true
		return m, nil
	}

	return m, m.wake()
}

// handleTick advances the simulation one frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	wasOver := m.state.GameOver
	m.state = result.State
	switch {
	case wasOver && !m.state.GameOver:
		// Restarted from the result screen.
		m.frames = 0
		m.recorded = false
	case !m.state.InMenu && !m.state.GameOver:
		m.frames++
	case m.state.GameOver && !m.recorded:
		outcome := storage.OutcomeGameOver
		if m.state.Won {
			outcome = storage.OutcomeWon
		}
		m.record(outcome)
	}

	if m.game.Idle() {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// wake re-arms the tick loop if it stopped while the game was idle.
func (m *GameModel) wake() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd(m.config.TickRate)
}

// abandon records a session the player leaves before it ends.
func (m *GameModel) abandon() {
	if m.recorded || m.state.GameOver || m.state.InMenu || m.frames == 0 {
		return
	}
	m.record(storage.OutcomeAbandoned)
}

// record saves the session result once. Saving is best-effort.
func (m *GameModel) record(outcome storage.Outcome) {
	m.recorded = true
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(storage.Run{
		Variant: m.game.Variant(),
		Score:   m.state.Score,
		Level:   m.state.Level,
		Outcome: outcome,
		Seed:    m.config.Seed,
		Frames:  m.frames,
	})
	if m.state.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.game.Variant(), m.state.Score)
	}
}

// saveScreenshot saves the current screen as plain text under ~/.brickhole/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".brickhole", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.game.Variant(), timestamp)
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the player asked to exit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config, updated by resizes.
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

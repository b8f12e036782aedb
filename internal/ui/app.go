package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dontpanic/internal/animation"
	"github.com/five82/dontpanic/internal/appmsg"
	"github.com/five82/dontpanic/internal/apptimer"
	"github.com/five82/dontpanic/internal/clock"
	"github.com/five82/dontpanic/internal/config"
	"github.com/five82/dontpanic/internal/refresh"
	"github.com/five82/dontpanic/internal/resource"
	"github.com/five82/dontpanic/internal/screen"
	"github.com/five82/dontpanic/internal/state"
	"github.com/five82/dontpanic/internal/weather"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Store     *state.Store
	Resources *resource.Registry
	Outbox    *appmsg.Outbox
	Inbox     *appmsg.Inbox
	Use24h    bool
	ThemeName string

	// Now overrides the wall clock.
	Now func() time.Time
}

// minuteMsg is delivered on each minute boundary.
type minuteMsg struct {
	At time.Time
}

// Model is the watchface application state. Its handlers all run on the
// program loop.
type Model struct {
	// Configuration
	ctx       context.Context
	logger    *slog.Logger
	store     *state.Store
	resources *resource.Registry
	outbox    *appmsg.Outbox
	inbox     *appmsg.Inbox
	font      screen.Font
	logPath   string
	now       func() time.Time

	// Watchface
	timers    *apptimer.Service
	clock     *clock.Display
	report    *weather.Report
	scheduler *refresh.Scheduler
	driver    *animation.Driver
	face      *watchface
	terminal  *screen.Terminal
	use24h    bool

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool

	// Log overlay
	logViewport viewport.Model
	logState    logState
}

// New creates the watchface model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	resources := opts.Resources
	if resources == nil {
		resources = resource.NewRegistry()
	}
	outbox := opts.Outbox
	if outbox == nil {
		outbox = appmsg.NewOutbox(ctx, nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	timers := apptimer.New()
	display := clock.NewDisplay()
	face := newWatchface()

	return Model{
		ctx:       ctx,
		logger:    logger,
		store:     store,
		resources: resources,
		outbox:    outbox,
		inbox:     opts.Inbox,
		font:      screen.FontByName(cfg.Display.Font),
		logPath:   cfg.Log.Path,
		now:       now,
		timers:    timers,
		clock:     display,
		report:    weather.NewReport(logger),
		scheduler: refresh.New(display, outbox, cfg.Weather.RefreshMinutes, logger),
		driver:    animation.NewDriver(timers, face.showFrame, logger),
		face:      face,
		terminal:  screen.NewTerminal(),
		use24h:    opts.Use24h,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		logState:  newLogState(),
	}
}

// Run starts the program and blocks until it exits. The window is unloaded
// on the way out.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.unloadWindow()
	if err != nil && m.ctx.Err() != nil {
		// Interrupted by the caller.
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadWindow(),
		m.minuteCmd(),
		m.listen(),
		m.timers.Flush(),
	)
}

// loadWindow builds the layers, fills the clock and asks for weather.
func (m Model) loadWindow() tea.Cmd {
	if err := m.face.load(m.clock, m.report, m.font, m.driver, m.resources); err != nil {
		m.logger.Error("animation unavailable", "error", err)
	}
	m.clock.Update(m.now(), m.use24h)
	m.face.window.MarkDirty()
	return m.scheduler.Request()
}

func (m Model) unloadWindow() {
	m.face.unload(m.driver)
}

// minuteCmd waits for the next minute boundary.
func (m Model) minuteCmd() tea.Cmd {
	return tea.Tick(clock.UntilNextMinute(m.now()), func(t time.Time) tea.Msg {
		return minuteMsg{At: t}
	})
}

func (m Model) listen() tea.Cmd {
	if m.inbox == nil {
		return nil
	}
	return m.inbox.Listen()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.face.window.MarkDirty()
		if m.logState.open {
			m.updateLogViewport()
		}

	case apptimer.FiredMsg:
		m.timers.Fire(msg)

	case minuteMsg:
		// The tick may land a hair before the boundary; format the
		// minute it was aimed at.
		at := msg.At.Add(time.Second).Truncate(time.Minute)
		cmd = tea.Batch(m.scheduler.Tick(at, m.use24h), m.minuteCmd())
		m.face.window.MarkDirty()

	case appmsg.ReceivedMsg:
		if m.report.Apply(msg.Dict) {
			m.face.window.MarkDirty()
		}
		cmd = m.listen()

	case appmsg.DroppedMsg:
		m.logger.Error("message dropped", "count", msg.Count, "error", msg.Err)
		m.store.RecordDropped(msg.Count)
		cmd = m.listen()

	case appmsg.SentMsg:
		m.outbox.Settle()
		m.logger.Info("outbox send success")
		m.store.RecordSend(nil)

	case appmsg.FailedMsg:
		m.outbox.Settle()
		m.logger.Error("outbox send failed", "error", msg.Err)
		m.store.RecordSend(msg.Err)

	case logLinesMsg:
		m.handleLogLines(msg)

	case logRefreshMsg:
		cmd = m.handleLogRefresh(msg)
	}

	return m, tea.Batch(cmd, m.timers.Flush())
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	if m.logState.open {
		return m.handleLogKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
	case key.Matches(msg, m.keys.Toggle24h):
		m.use24h = !m.use24h
		if m.clock.Update(m.now(), m.use24h) {
			m.face.window.MarkDirty()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.scheduler.Request()
	case key.Matches(msg, m.keys.Reload):
		return m.loadWindow()
	case key.Matches(msg, m.keys.Logs):
		return m.openLogs()
	}
	return nil
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/interact"
	"github.com/papapumpkin/starfield/internal/journal"
	"github.com/papapumpkin/starfield/internal/render"
	"github.com/papapumpkin/starfield/internal/scene"
	"github.com/papapumpkin/starfield/internal/store"
)

// Notification texts owned by the shell.
const (
	textSelectFirst  = "Select a star first"
	textNoLinks      = "This star has no constellations"
	textNoExplorer   = "Related ideas are not available for this galaxy"
	textReloaded     = "Configuration reloaded"
	textReloadFailed = "Configuration not reloaded"
)

// Explorer answers discovery queries for the detail panel.
type Explorer interface {
	Related(ctx context.Context, ideaID string) ([]galaxy.Related, error)
}

// Options configures a galaxy session.
type Options struct {
	// Galaxy is the scene's store. The model loads it on start and closes it
	// on quit.
	Galaxy *store.Galaxy
	// Scene carries the renderer, hit index and backdrop.
	Scene *scene.Scene
	// Explorer backs the related-ideas lookup; nil disables it.
	Explorer Explorer
	// Journal receives every scene event; nil discards them.
	Journal *journal.Emitter
	Logger  *zap.Logger
	// User labels the galaxy in the status bar.
	User string
}

// Model is the root bubbletea model for a mounted galaxy.
type Model struct {
	galaxy   *store.Galaxy
	scene    *scene.Scene
	machine  *interact.Machine
	loop     *render.Loop
	ticket   render.Ticket
	view     *galaxyView
	explorer Explorer
	journal  *journal.Emitter
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc

	keys      KeyMap
	detail    DetailPanel
	prompt    Prompt
	toasts    []Toast
	nextToast int
	user      string

	width   int
	height  int
	pending int
	// inside is set while the pointer is over the galaxy.
	inside   bool
	quitting bool
}

// NewModel mounts a galaxy. The first frame is scheduled immediately; Init
// starts it together with the initial load.
func NewModel(opts Options) (Model, error) {
	if opts.Galaxy == nil {
		return Model{}, errors.New("tui: no galaxy")
	}
	if opts.Scene == nil {
		return Model{}, errors.New("tui: no scene")
	}
	view, err := newGalaxyView()
	if err != nil {
		return Model{}, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts.Scene.Renderer.NoTooltip = true

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		galaxy:   opts.Galaxy,
		scene:    opts.Scene,
		machine:  interact.New(opts.Galaxy, opts.Scene, geom.NewViewport(0, 0)),
		loop:     opts.Scene.Loop(),
		view:     view,
		explorer: opts.Explorer,
		journal:  opts.Journal,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		keys:     DefaultKeyMap(),
		detail:   NewDetailPanel(),
		prompt:   NewPrompt(),
		user:     opts.User,
	}
	m.ticket = m.loop.Schedule()
	return m, nil
}

// Init starts the frame loop and loads the galaxy.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(m.ticket), opCmd(m.ctx, m.galaxy.Load()))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case MsgFrame:
		return m.handleFrame(msg)

	case MsgOpDone:
		m.pending = max(m.pending-1, 0)
		if err := m.galaxy.Apply(msg.Result); err != nil {
			if errors.Is(err, store.ErrClosed) {
				return m, nil
			}
			m.log.Debug("operation failed", zap.Error(err))
		}
		cmd := m.drain()
		return m, cmd

	case MsgRelated:
		m.detail.SetRelated(msg.IdeaID, msg.Entries, msg.Err)
		m.detail.Refresh(m.galaxy)
		return m, nil

	case MsgConfigReloaded:
		m.scene.Retune(msg.Scene, msg.Palette)
		m.scene.Renderer.NoTooltip = true
		m.log.Info("configuration reloaded")
		cmd := m.toast(textReloaded, galaxy.LevelInfo)
		return m, cmd

	case MsgConfigError:
		m.log.Warn("configuration reload failed", zap.Error(msg.Err))
		cmd := m.toast(fmt.Sprintf("%s: %v", textReloadFailed, msg.Err), galaxy.LevelError)
		return m, cmd

	case MsgToastExpired:
		m.toasts = removeToast(m.toasts, msg.ID)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt.Active() {
		cmd := m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFrame(msg MsgFrame) (tea.Model, tea.Cmd) {
	t, ok := m.loop.Fire(msg.Ticket, msg.At)
	if !ok {
		return m, nil
	}
	// An unmeasured view draws nothing; the next tick retries.
	m.view.Draw(m.scene.Renderer, m.scene.Frame(m.galaxy, m.machine), t)
	m.ticket = m.loop.Schedule()
	if m.ticket == 0 {
		return m, nil
	}
	return m, m.frameCmd(m.ticket)
}

func (m Model) frameCmd(tk render.Ticket) tea.Cmd {
	if tk == 0 {
		return nil
	}
	return tea.Tick(m.loop.Interval(), func(now time.Time) tea.Msg {
		return MsgFrame{Ticket: tk, At: now}
	})
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.teardown()
	m.quitting = true
	return m, tea.Quit
}

// teardown stops the frame loop, closes the store so late results are
// dropped, and cancels in-flight requests. It is idempotent.
func (m Model) teardown() {
	m.loop.Cancel()
	m.galaxy.Close()
	m.cancel()
}

// run counts op as in flight and returns the command that performs it.
func (m *Model) run(op store.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	m.pending++
	return opCmd(m.ctx, op)
}

func opCmd(ctx context.Context, op store.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	return func() tea.Msg {
		return MsgOpDone{Result: op(ctx)}
	}
}

func (m Model) relatedCmd(id string) tea.Cmd {
	ex, ctx := m.explorer, m.ctx
	return func() tea.Msg {
		entries, err := ex.Related(ctx, id)
		return MsgRelated{IdeaID: id, Entries: entries, Err: err}
	}
}

// drain consumes queued scene events: it journals them, keeps the detail
// panel, drag overrides and hit index in step, and raises toasts.
func (m *Model) drain() tea.Cmd {
	events := m.galaxy.Drain()
	if len(events) == 0 {
		return nil
	}
	if err := m.journal.EmitAll(events); err != nil {
		m.log.Warn("journal write failed", zap.Error(err))
	}

	var cmds []tea.Cmd
	for _, evt := range events {
		switch evt.Kind {
		case galaxy.EventSelect:
			m.detail.Open(evt.IdeaID)
		case galaxy.EventIdeaUpdated, galaxy.EventFailure:
			if evt.IdeaID != "" {
				m.machine.Settle(evt.IdeaID)
			}
		case galaxy.EventIdeaRemoved:
			if m.detail.IdeaID() == evt.IdeaID {
				m.detail.Close()
			}
		}
		switch evt.Kind {
		case galaxy.EventLoaded, galaxy.EventIdeaAdded, galaxy.EventIdeaUpdated, galaxy.EventIdeaRemoved:
			m.scene.Invalidate()
		}
		if evt.Toast() {
			cmds = append(cmds, m.toast(evt.Text, evt.Level))
		}
	}

	if m.detail.IsOpen() {
		if _, ok := m.galaxy.Idea(m.detail.IdeaID()); ok {
			m.detail.Refresh(m.galaxy)
		} else {
			m.detail.Close()
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) toast(text string, level galaxy.Level) tea.Cmd {
	m.nextToast++
	t, cmd := newToast(m.nextToast, text, level)
	m.toasts = pushToast(m.toasts, t)
	return cmd
}

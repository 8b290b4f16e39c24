// Package tui implements the chatlist terminal interface: a roster screen with search,
// create, rename and delete, and an ephemeral thread screen per chat.
package tui

import (
	"context"

	"chatlist/cmd/chatlist/ui"
	"chatlist/internal/logging"
	"chatlist/internal/roster"
	"chatlist/internal/types"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenHome screen = iota
	screenThread
)

// Options configures the interface.
type Options struct {
	Controller    *roster.Controller
	Styles        ui.Styles
	DefaultAvatar string
	LocalUserID   string
}

// Model is the root bubbletea model. The roster controller is shared across screens;
// a thread lives only while its screen is open.
type Model struct {
	ctl    *roster.Controller
	styles ui.Styles

	defaultAvatar string
	localUserID   string

	screen screen
	home   homeModel
	thread *threadModel

	spinner spinner.Model
	width   int
	height  int
}

// New builds the root model.
func New(opts Options) Model {
	if opts.DefaultAvatar == "" {
		opts.DefaultAvatar = types.DefaultAvatar
	}
	if opts.LocalUserID == "" {
		opts.LocalUserID = types.LocalUserID
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	return Model{
		ctl:           opts.Controller,
		styles:        opts.Styles,
		defaultAvatar: opts.DefaultAvatar,
		localUserID:   opts.LocalUserID,
		screen:        screenHome,
		home:          newHome(opts.Styles),
		spinner:       sp,
		width:         80,
		height:        24,
	}
}

// Init loads the roster.
func (m Model) Init() tea.Cmd {
	logging.UI("roster screen mounted")
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.refresh(),
	)
}

func (m Model) refresh() tea.Cmd {
	seq := m.ctl.BeginRefresh()
	return effect(func(ctx context.Context) roster.Action {
		return m.ctl.FetchChats(ctx, seq)
	})
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.home.resize(msg.Width)
		if m.thread != nil {
			m.thread.resize(msg.Width, msg.Height)
		}
		return m, nil

	case actionMsg:
		m.ctl.Dispatch(msg.action)
		m.syncInputs()
		m.home.clamp(len(m.ctl.FilteredView()))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.screen == screenThread && m.thread != nil {
		return m.updateThread(msg)
	}
	return m.updateHome(msg)
}

// openThread navigates to the thread for id. Refused while renaming.
func (m Model) openThread(id string) (Model, tea.Cmd) {
	route, ok := m.ctl.Route(id, m.defaultAvatar)
	if !ok {
		logging.UIDebug("navigation to %q refused", id)
		return m, nil
	}
	m.thread = newThread(route, m.styles, m.localUserID, m.defaultAvatar, m.width, m.height)
	m.screen = screenThread
	logging.UI("opened thread chat=%s", route.ChatID)
	return m, textinput.Blink
}

// closeThread returns to the roster; the thread's messages are dropped.
func (m Model) closeThread() (Model, tea.Cmd) {
	m.thread = nil
	m.screen = screenHome
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	if m.screen == screenThread && m.thread != nil {
		return m.thread.view()
	}
	return m.viewHome()
}

package tui

import (
	"strings"

	"chatlist/cmd/chatlist/ui"
	"chatlist/internal/thread"
	"chatlist/internal/types"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	footerHeight = 1
	inputHeight  = 3
)

// threadModel is the chat screen. It owns its Thread; leaving the screen drops it.
type threadModel struct {
	thread *thread.Thread
	styles ui.Styles

	viewport  viewport.Model
	textinput textinput.Model
	renderer  *glamour.TermRenderer

	defaultAvatar string
	width         int
}

func newThread(route types.ThreadRoute, styles ui.Styles, localUser, defaultAvatar string, width, height int) *threadModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message... (Enter to send, Esc to go back)"
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Input
	ti.Focus()

	t := &threadModel{
		thread: thread.New(route,
			thread.WithLocalUser(localUser),
			thread.WithDefaultAvatar(defaultAvatar),
		),
		styles:        styles,
		viewport:      viewport.New(80, 20),
		textinput:     ti,
		defaultAvatar: defaultAvatar,
	}
	t.resize(width, height)
	return t
}

func (t *threadModel) resize(width, height int) {
	t.width = width
	t.viewport.Width = width - 2
	vh := height - headerHeight - footerHeight - inputHeight
	if vh < 3 {
		vh = 3
	}
	t.viewport.Height = vh
	t.textinput.Width = width - 8

	wrap := width - 8
	if wrap < 20 {
		wrap = 20
	}
	style := glamour.WithStylePath("light")
	if t.styles.Theme.IsDark {
		style = glamour.WithStylePath("dark")
	}
	t.renderer, _ = glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))

	t.refreshContent()
}

func (t *threadModel) refreshContent() {
	t.viewport.SetContent(t.renderHistory())
	t.viewport.GotoBottom()
}

func (t *threadModel) renderHistory() string {
	var sb strings.Builder
	for i, msg := range t.thread.Messages() {
		if i > 0 {
			sb.WriteString("\n")
		}
		bubble := t.styles.RemoteBubble
		if msg.Sender == t.thread.LocalUser() {
			bubble = t.styles.LocalBubble
		}
		body := bubble.Render(t.renderText(msg.Text))
		sb.WriteString(t.styles.Sender.Render(msg.Sender))
		sb.WriteString(" ")
		sb.WriteString(t.styles.Avatar.Render(msg.AvatarOr(t.defaultAvatar)))
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderText renders message text as markdown, falling back to plain text.
func (t *threadModel) renderText(text string) string {
	if t.renderer == nil {
		return text
	}
	out, err := t.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m Model) updateThread(msg tea.Msg) (tea.Model, tea.Cmd) {
	t := m.thread
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			nm, cmd := m.closeThread()
			return nm, cmd
		case tea.KeyEnter:
			t.thread.SetDraft(t.textinput.Value())
			if t.thread.SendDraft() {
				t.textinput.Reset()
				t.refreshContent()
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			t.viewport, cmd = t.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	t.thread.SetDraft(t.textinput.Value())
	return m, cmd
}

func (t *threadModel) view() string {
	header := t.styles.Header.Width(t.width).Render(t.thread.Title())
	input := t.styles.InputBorder.Render(t.textinput.View())
	footer := t.styles.Footer.Render("enter send • pgup/pgdn scroll • esc back")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		t.viewport.View(),
		input,
		footer,
	)
}

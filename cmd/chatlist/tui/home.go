package tui

import (
	"context"
	"fmt"
	"strings"

	"chatlist/cmd/chatlist/ui"
	"chatlist/internal/roster"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusNewChat
	focusRename
)

// homeModel is the roster screen's widget state. Roster data itself lives in the
// controller.
type homeModel struct {
	search  textinput.Model
	newChat textinput.Model
	rename  textinput.Model

	focus  focus
	cursor int
}

func newHome(styles ui.Styles) homeModel {
	search := textinput.New()
	search.Placeholder = "Search chats"
	search.Prompt = "/ "
	search.PromptStyle = styles.Prompt
	search.TextStyle = styles.Input

	newChat := textinput.New()
	newChat.Placeholder = "New chat name"
	newChat.Prompt = "+ "
	newChat.PromptStyle = styles.Prompt
	newChat.TextStyle = styles.Input
	newChat.CharLimit = 256

	rename := textinput.New()
	rename.Prompt = "✎ "
	rename.PromptStyle = styles.Renaming
	rename.TextStyle = styles.Input
	rename.CharLimit = 256

	return homeModel{
		search:  search,
		newChat: newChat,
		rename:  rename,
		focus:   focusList,
	}
}

func (h *homeModel) resize(width int) {
	w := width - 8
	if w < 10 {
		w = 10
	}
	h.search.Width = w
	h.newChat.Width = w
	h.rename.Width = w
}

// clamp keeps the cursor inside a list of n rows.
func (h *homeModel) clamp(n int) {
	if h.cursor >= n {
		h.cursor = n - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

func (h *homeModel) setFocus(f focus) tea.Cmd {
	h.search.Blur()
	h.newChat.Blur()
	h.rename.Blur()
	h.focus = f

	switch f {
	case focusSearch:
		return h.search.Focus()
	case focusNewChat:
		return h.newChat.Focus()
	case focusRename:
		return h.rename.Focus()
	}
	return nil
}

func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.forwardToInput(msg)
	}

	switch m.home.focus {
	case focusRename:
		return m.updateRename(key)
	case focusList:
		return m.updateList(key)
	}

	switch key.Type {
	case tea.KeyTab:
		return m, m.home.setFocus(nextFocus(m.home.focus))
	case tea.KeyEsc:
		return m, m.home.setFocus(focusList)
	case tea.KeyEnter:
		if m.home.focus == focusNewChat {
			return m.submitNewChat()
		}
		return m, m.home.setFocus(focusList)
	}
	return m.forwardToInput(msg)
}

func nextFocus(f focus) focus {
	switch f {
	case focusList:
		return focusSearch
	case focusSearch:
		return focusNewChat
	default:
		return focusList
	}
}

// forwardToInput feeds msg to the focused input and mirrors its value into the roster.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.home.focus {
	case focusSearch:
		m.home.search, cmd = m.home.search.Update(msg)
		if m.home.search.Value() != m.ctl.State().SearchText {
			m.ctl.SetSearchText(m.home.search.Value())
			m.home.cursor = 0
		}
	case focusNewChat:
		m.home.newChat, cmd = m.home.newChat.Update(msg)
		if m.home.newChat.Value() != m.ctl.State().NewChatName {
			m.ctl.SetNewChatName(m.home.newChat.Value())
		}
	case focusRename:
		m.home.rename, cmd = m.home.rename.Update(msg)
		m.ctl.SetRenameDraft(m.home.rename.Value())
	}
	return m, cmd
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.ctl.FilteredView()

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "/":
		return m, m.home.setFocus(focusSearch)
	case "n":
		return m, m.home.setFocus(focusNewChat)
	case "up", "k":
		if m.home.cursor > 0 {
			m.home.cursor--
		}
		return m, nil
	case "down", "j":
		if m.home.cursor < len(view)-1 {
			m.home.cursor++
		}
		return m, nil
	case "ctrl+r":
		return m, m.refresh()
	}

	if len(view) == 0 {
		return m, nil
	}
	m.home.clamp(len(view))
	selected := view[m.home.cursor]

	switch key.String() {
	case "enter":
		nm, cmd := m.openThread(selected.ID)
		return nm, cmd
	case "r":
		m.ctl.BeginRename(selected.ID)
		m.home.rename.SetValue(m.ctl.State().RenameDraft)
		m.home.rename.CursorEnd()
		return m, m.home.setFocus(focusRename)
	case "d":
		id := selected.ID
		return m, effect(func(ctx context.Context) roster.Action {
			return m.ctl.DeleteChat(ctx, id)
		})
	}
	return m, nil
}

func (m Model) updateRename(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.ctl.CancelRename()
		return m, m.home.setFocus(focusList)
	case tea.KeyEnter:
		s := m.ctl.State()
		id, name := s.RenamingID, m.home.rename.Value()
		focusCmd := m.home.setFocus(focusList)
		if id == "" {
			return m, focusCmd
		}
		return m, tea.Batch(focusCmd, effect(func(ctx context.Context) roster.Action {
			return m.ctl.RenameChat(ctx, id, name)
		}))
	}
	return m.forwardToInput(key)
}

func (m Model) submitNewChat() (tea.Model, tea.Cmd) {
	name := m.home.newChat.Value()
	if strings.TrimSpace(name) == "" {
		return m, nil
	}
	return m, effect(func(ctx context.Context) roster.Action {
		return m.ctl.CreateChat(ctx, name)
	})
}

// syncInputs pulls controller-owned values back into the widgets after an action.
func (m *Model) syncInputs() {
	s := m.ctl.State()
	if m.home.newChat.Value() != s.NewChatName {
		m.home.newChat.SetValue(s.NewChatName)
	}
	if m.home.focus == focusRename && !s.Renaming() {
		m.home.setFocus(focusList)
	}
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewHome() string {
	s := m.ctl.State()
	st := m.styles

	title := "Chats"
	if s.Loading {
		title += " " + m.spinner.View()
	}
	header := st.Header.Width(m.width).Render(title)

	var rows []string
	view := roster.Filter(s.Chats, s.SearchText)
	if len(view) == 0 {
		rows = append(rows, st.Muted.Render("  No chats"))
	}
	for i, chat := range view {
		if chat.ID == s.RenamingID {
			rows = append(rows, st.Row.Render(m.home.rename.View()))
			continue
		}
		line := fmt.Sprintf("%s  %s", chat.Name, st.Avatar.Render(chat.AvatarOr(m.defaultAvatar)))
		if i == m.home.cursor && m.home.focus == focusList {
			rows = append(rows, st.SelectedRow.Render("› "+line))
		} else {
			rows = append(rows, st.Row.Render("  "+line))
		}
	}

	help := "↑/↓ move • enter open • r rename • " + st.Delete.Render("d delete") + " • n new • / search • ctrl+r reload • q quit"
	switch m.home.focus {
	case focusRename:
		help = "enter save • esc cancel"
	case focusSearch, focusNewChat:
		help = "enter confirm • tab next field • esc back to list"
	}

	divider := st.RenderDivider(m.width - 2)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		st.InputBorder.Render(m.home.search.View()),
		st.Content.Render(strings.Join(rows, "\n")),
		divider,
		st.InputBorder.Render(m.home.newChat.View()),
		st.Footer.Render(help),
	)
}

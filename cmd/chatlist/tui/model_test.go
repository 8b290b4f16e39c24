package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"chatlist/cmd/chatlist/ui"
	"chatlist/internal/roster"
	"chatlist/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memGateway struct {
	mu     sync.Mutex
	chats  []types.Chat
	nextID int
}

func (g *memGateway) List(ctx context.Context) ([]types.Chat, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]types.Chat, len(g.chats))
	copy(out, g.chats)
	return out, nil
}

func (g *memGateway) Create(ctx context.Context, name string) (types.Chat, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	c := types.Chat{ID: fmt.Sprint(g.nextID), Name: name}
	g.chats = append(g.chats, c)
	return c, nil
}

func (g *memGateway) Delete(ctx context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.chats {
		if c.ID == id {
			g.chats = append(g.chats[:i], g.chats[i+1:]...)
			break
		}
	}
	return true, nil
}

func (g *memGateway) Update(ctx context.Context, id, newName string) (types.Chat, error) {
	return types.Chat{ID: id, Name: newName}, nil
}

// collect runs cmd and returns the actionMsgs it produces. Timer-driven commands
// (cursor blink, spinner) are abandoned after a short wait.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		var (
			mu  sync.Mutex
			wg  sync.WaitGroup
			out []tea.Msg
		)
		for _, c := range msg {
			wg.Add(1)
			go func(c tea.Cmd) {
				defer wg.Done()
				got := collect(c)
				mu.Lock()
				out = append(out, got...)
				mu.Unlock()
			}(c)
		}
		wg.Wait()
		return out
	case actionMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		for _, follow := range collect(cmd) {
			m = send(m, follow)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func newTestModel(t *testing.T, chats ...types.Chat) (Model, *roster.Controller) {
	t.Helper()
	gw := &memGateway{chats: chats, nextID: len(chats)}
	ctl := roster.NewController(gw)
	m := New(Options{Controller: ctl, Styles: ui.NewStyles(ui.LightTheme())})

	for _, msg := range collect(m.Init()) {
		m = send(m, msg)
	}
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Len(t, ctl.State().Chats, len(chats))
	return m, ctl
}

func TestInitLoadsRoster(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"}, types.Chat{ID: "2", Name: "Bob"})

	assert.False(t, ctl.State().Loading)
	view := m.View()
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Bob")
	assert.Contains(t, view, "d delete")
}

func TestCreateFromInput(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"})

	m = send(m, runes("n"), runes("Bob"))
	assert.Equal(t, "Bob", ctl.State().NewChatName)

	m = send(m, key(tea.KeyEnter))
	s := ctl.State()
	assert.Equal(t, []types.Chat{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}}, s.Chats)
	assert.Empty(t, s.NewChatName)
	assert.Empty(t, m.home.newChat.Value())
}

func TestCreateBlankDoesNothing(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"})

	m = send(m, runes("n"), runes("   "), key(tea.KeyEnter))
	assert.Len(t, ctl.State().Chats, 1)
}

func TestSearchFilters(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"}, types.Chat{ID: "2", Name: "Bob"})

	m = send(m, runes("/"), runes("BO"))
	assert.Equal(t, "BO", ctl.State().SearchText)
	assert.Equal(t, []types.Chat{{ID: "2", Name: "Bob"}}, ctl.FilteredView())
	assert.NotContains(t, m.View(), "Alice")
}

func TestRenameFlow(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"})

	m = send(m, runes("r"))
	require.Equal(t, "1", ctl.State().RenamingID)
	assert.Equal(t, focusRename, m.home.focus)

	m = send(m, runes("ia"), key(tea.KeyEnter))
	s := ctl.State()
	assert.Equal(t, "Aliceia", s.Chats[0].Name)
	assert.False(t, s.Renaming())
	assert.Equal(t, focusList, m.home.focus)
}

func TestRenameCancel(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"})

	m = send(m, runes("r"), runes("zzz"), key(tea.KeyEsc))
	s := ctl.State()
	assert.False(t, s.Renaming())
	assert.Equal(t, "Alice", s.Chats[0].Name)
	assert.Equal(t, focusList, m.home.focus)
}

func TestDeleteSelected(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"}, types.Chat{ID: "2", Name: "Bob"})

	m = send(m, key(tea.KeyDown), runes("d"))
	assert.Equal(t, []types.Chat{{ID: "1", Name: "Alice"}}, ctl.State().Chats)
	assert.Equal(t, 0, m.home.cursor)
}

func TestThreadNavigationAndSend(t *testing.T) {
	m, _ := newTestModel(t, types.Chat{ID: "1", Name: "Alice"})

	m = send(m, key(tea.KeyEnter))
	require.Equal(t, screenThread, m.screen)
	require.NotNil(t, m.thread)
	assert.Equal(t, types.ThreadRoute{ChatID: "1", ChatName: "Alice", ChatAvatar: types.DefaultAvatar}, m.thread.thread.Route())
	assert.True(t, strings.Contains(m.View(), "Alice"))

	m = send(m, key(tea.KeyEnter))
	assert.Len(t, m.thread.thread.Messages(), 2, "empty draft is not sent")

	m = send(m, runes("hi"), key(tea.KeyEnter))
	msgs := m.thread.thread.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "hi", msgs[2].Text)
	assert.Equal(t, types.LocalUserID, msgs[2].Sender)
	assert.Empty(t, m.thread.textinput.Value())

	m = send(m, key(tea.KeyEsc))
	assert.Equal(t, screenHome, m.screen)
	assert.Nil(t, m.thread)

	m = send(m, key(tea.KeyEnter))
	assert.Len(t, m.thread.thread.Messages(), 2, "threads are not persisted across visits")
}

func TestNavigationBlockedWhileRenaming(t *testing.T) {
	m, ctl := newTestModel(t, types.Chat{ID: "1", Name: "Alice"}, types.Chat{ID: "2", Name: "Bob"})

	ctl.BeginRename("2")
	m = send(m, key(tea.KeyEnter))
	assert.Equal(t, screenHome, m.screen)
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

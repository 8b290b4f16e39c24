// Package thread holds the per-visit message list of one chat. Nothing is persisted
// and nothing is sent to the server; a new Thread starts from the same two greetings.
package thread

import (
	"strings"
	"sync"

	"chatlist/internal/logging"
	"chatlist/internal/types"

	"github.com/google/uuid"
)

// Thread is the message list for one chat.
type Thread struct {
	route types.ThreadRoute

	localUser     string
	defaultAvatar string
	newID         func() string

	mu       sync.Mutex
	messages []types.Message
	draft    string
}

// Option configures a Thread.
type Option func(*Thread)

// WithLocalUser sets the sender id of locally composed messages.
func WithLocalUser(id string) Option {
	return func(t *Thread) {
		if id != "" {
			t.localUser = id
		}
	}
}

// WithDefaultAvatar sets the avatar shown on locally composed messages.
func WithDefaultAvatar(uri string) Option {
	return func(t *Thread) {
		if uri != "" {
			t.defaultAvatar = uri
		}
	}
}

// WithIDFunc replaces the message id generator.
func WithIDFunc(fn func() string) Option {
	return func(t *Thread) {
		if fn != nil {
			t.newID = fn
		}
	}
}

// New opens the thread for route, seeded with a greeting from the chat and a reply
// from the local user.
func New(route types.ThreadRoute, opts ...Option) *Thread {
	t := &Thread{
		route:         route,
		localUser:     types.LocalUserID,
		defaultAvatar: types.DefaultAvatar,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.messages = []types.Message{
		{ID: "1", Text: "Hello!", Sender: route.ChatName, Avatar: route.ChatAvatar},
		{ID: "2", Text: "Hi there!", Sender: t.localUser, Avatar: t.defaultAvatar},
	}
	logging.ThreadDebug("opened thread chat=%s", route.ChatID)
	return t
}

// Route returns the chat this thread belongs to.
func (t *Thread) Route() types.ThreadRoute {
	return t.route
}

// Title is the header shown above the thread.
func (t *Thread) Title() string {
	return t.route.ChatName
}

// LocalUser returns the sender id of locally composed messages.
func (t *Thread) LocalUser() string {
	return t.localUser
}

// SetDraft replaces the composer text.
func (t *Thread) SetDraft(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draft = s
}

// Draft returns the composer text.
func (t *Thread) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// Send appends text as a message from the local user and clears the draft.
// Blank text is ignored and Send reports false.
func (t *Thread) Send(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	msg := types.Message{
		ID:     t.newID(),
		Text:   text,
		Sender: t.localUser,
		Avatar: t.defaultAvatar,
	}
	t.messages = append(t.messages, msg)
	t.draft = ""
	logging.ThreadDebug("sent message id=%s chat=%s", msg.ID, t.route.ChatID)
	return true
}

// SendDraft sends the current draft.
func (t *Thread) SendDraft() bool {
	return t.Send(t.Draft())
}

// Messages returns a copy of the thread in display order.
func (t *Thread) Messages() []types.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

package roster

import (
	"context"
	"strings"
	"sync"

	"chatlist/internal/logging"
	"chatlist/internal/types"

	"golang.org/x/sync/singleflight"
)

// Gateway is the remote collection the roster mirrors.
type Gateway interface {
	List(ctx context.Context) ([]types.Chat, error)
	Create(ctx context.Context, name string) (types.Chat, error)
	Delete(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id, newName string) (types.Chat, error)
}

// Mutation names carried by MutationFailed.
const (
	OpCreate = "create"
	OpDelete = "delete"
	OpUpdate = "update"
)

// Controller owns the roster State and sequences gateway calls against it.
//
// The effect methods (FetchChats, CreateChat, DeleteChat, RenameChat) only perform I/O
// and describe the outcome as an Action; Dispatch applies it. Shells with their own
// event loop run effects off-loop and Dispatch on-loop. The synchronous methods
// (Refresh, Create, Delete, CommitRename) do both in one call.
type Controller struct {
	gw Gateway

	mu    sync.Mutex
	state State
	seq   uint64

	refreshes singleflight.Group
}

// NewController creates a controller with an empty roster.
func NewController(gw Gateway) *Controller {
	return &Controller{gw: gw}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// FilteredView returns the chats matching the current search text.
func (c *Controller) FilteredView() []types.Chat {
	s := c.State()
	return Filter(s.Chats, s.SearchText)
}

// Dispatch applies a to the state. A nil action is ignored.
func (c *Controller) Dispatch(a Action) {
	if a == nil {
		return
	}
	c.mu.Lock()
	prev := c.state
	c.state = Reduce(c.state, a)
	next := c.state
	c.mu.Unlock()

	switch a := a.(type) {
	case RefreshSucceeded:
		if a.Seq < prev.RefreshSeq {
			logging.RosterDebug("discarding stale refresh seq=%d (latest=%d)", a.Seq, prev.RefreshSeq)
			return
		}
		logging.Roster("roster refreshed seq=%d chats=%d", a.Seq, len(next.Chats))
	case MutationFailed:
		// Already logged by the gateway.
		logging.RosterDebug("%s %q failed, roster unchanged", a.Op, a.ID)
	default:
		logging.RosterDebug("applied %T", a)
	}
}

// =============================================================================
// REFRESH
// =============================================================================

// BeginRefresh issues a new refresh token and marks the roster as loading.
func (c *Controller) BeginRefresh() uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.Dispatch(RefreshStarted{Seq: seq})
	return seq
}

// FetchChats lists the collection for token seq.
func (c *Controller) FetchChats(ctx context.Context, seq uint64) Action {
	chats, err := c.gw.List(ctx)
	if err != nil {
		return RefreshFailed{Seq: seq, Err: err}
	}
	return RefreshSucceeded{Seq: seq, Chats: chats}
}

// Refresh replaces the roster with the collection. On failure the roster is unchanged.
// Concurrent calls share one request. The shared request is detached from any single
// caller's cancellation; each caller stops waiting when its own ctx is done, and the
// result is still applied when it arrives.
func (c *Controller) Refresh(ctx context.Context) error {
	shared := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan("refresh", func() (interface{}, error) {
		seq := c.BeginRefresh()
		a := c.FetchChats(shared, seq)
		c.Dispatch(a)
		if f, ok := a.(RefreshFailed); ok {
			return nil, f.Err
		}
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateChat asks the gateway to create name. Returns nil for a blank name.
func (c *Controller) CreateChat(ctx context.Context, name string) Action {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	chat, err := c.gw.Create(ctx, name)
	if err != nil {
		return MutationFailed{Op: OpCreate, Err: err}
	}
	return ChatCreated{Chat: chat}
}

// DeleteChat asks the gateway to delete id.
func (c *Controller) DeleteChat(ctx context.Context, id string) Action {
	if _, err := c.gw.Delete(ctx, id); err != nil {
		return MutationFailed{Op: OpDelete, ID: id, Err: err}
	}
	return ChatDeleted{ID: id}
}

// RenameChat asks the gateway to rename id to name.
func (c *Controller) RenameChat(ctx context.Context, id, name string) Action {
	chat, err := c.gw.Update(ctx, id, name)
	if err != nil {
		return MutationFailed{Op: OpUpdate, ID: id, Err: err}
	}
	return ChatRenamed{ID: id, Name: chat.Name}
}

// Create adds a chat called name. A blank name is a no-op.
func (c *Controller) Create(ctx context.Context, name string) error {
	return c.apply(c.CreateChat(ctx, name))
}

// Delete removes the chat with id.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.apply(c.DeleteChat(ctx, id))
}

// CommitRename saves newName for id and leaves rename mode.
func (c *Controller) CommitRename(ctx context.Context, id, newName string) error {
	return c.apply(c.RenameChat(ctx, id, newName))
}

func (c *Controller) apply(a Action) error {
	c.Dispatch(a)
	if f, ok := a.(MutationFailed); ok {
		return f.Err
	}
	return nil
}

// =============================================================================
// LOCAL EDITS
// =============================================================================

// SetSearchText updates the filter.
func (c *Controller) SetSearchText(text string) { c.Dispatch(SearchChanged{Text: text}) }

// SetNewChatName updates the new-chat input.
func (c *Controller) SetNewChatName(name string) { c.Dispatch(NewChatNameChanged{Name: name}) }

// BeginRename enters rename mode for id, abandoning any rename in progress.
func (c *Controller) BeginRename(id string) { c.Dispatch(RenameStarted{ID: id}) }

// SetRenameDraft edits the pending name.
func (c *Controller) SetRenameDraft(draft string) { c.Dispatch(RenameDraftChanged{Draft: draft}) }

// CancelRename leaves rename mode without saving.
func (c *Controller) CancelRename() { c.Dispatch(RenameCancelled{}) }

// Route returns the thread route for id. Navigation is refused while a rename is in
// progress or when id is not in the roster.
func (c *Controller) Route(id, defaultAvatar string) (types.ThreadRoute, bool) {
	s := c.State()
	if s.Renaming() {
		return types.ThreadRoute{}, false
	}
	chat, i := s.Find(id)
	if i < 0 {
		return types.ThreadRoute{}, false
	}
	return chat.Route(defaultAvatar), true
}

package roster

import (
	"errors"
	"testing"

	"chatlist/internal/types"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func chats(pairs ...string) []types.Chat {
	out := make([]types.Chat, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.Chat{ID: pairs[i], Name: pairs[i+1]})
	}
	return out
}

func TestReduceRefreshLifecycle(t *testing.T) {
	s := Reduce(State{}, RefreshStarted{Seq: 1})
	assert.True(t, s.Loading)
	assert.Equal(t, uint64(1), s.RefreshSeq)

	s = Reduce(s, RefreshSucceeded{Seq: 1, Chats: chats("1", "Alice")})
	assert.False(t, s.Loading)
	if diff := cmp.Diff(chats("1", "Alice"), s.Chats); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceDiscardsStaleRefresh(t *testing.T) {
	s := Reduce(State{}, RefreshStarted{Seq: 1})
	s = Reduce(s, RefreshStarted{Seq: 2})

	s = Reduce(s, RefreshSucceeded{Seq: 2, Chats: chats("1", "New")})
	s = Reduce(s, RefreshSucceeded{Seq: 1, Chats: chats("1", "Old")})

	assert.Equal(t, chats("1", "New"), s.Chats)
	assert.False(t, s.Loading)

	s = Reduce(s, RefreshStarted{Seq: 3})
	s = Reduce(s, RefreshFailed{Seq: 2, Err: errors.New("late")})
	assert.True(t, s.Loading, "stale failure must not clear a newer refresh's loading flag")
}

func TestReduceRefreshFailureKeepsRoster(t *testing.T) {
	start := State{Chats: chats("1", "Alice"), RefreshSeq: 1}
	s := Reduce(start, RefreshStarted{Seq: 2})
	s = Reduce(s, RefreshFailed{Seq: 2, Err: errors.New("offline")})

	assert.Equal(t, start.Chats, s.Chats)
	assert.False(t, s.Loading)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := State{Chats: chats("1", "Alice", "2", "Bob")}
	snapshot := chats("1", "Alice", "2", "Bob")

	Reduce(start, ChatRenamed{ID: "1", Name: "Alicia"})
	Reduce(start, ChatDeleted{ID: "1"})
	Reduce(start, ChatCreated{Chat: types.Chat{ID: "3", Name: "Carol"}})

	assert.Equal(t, snapshot, start.Chats)
}

func TestReduceChatCreatedClearsInput(t *testing.T) {
	s := State{Chats: chats("1", "Alice"), NewChatName: "Bob"}
	s = Reduce(s, ChatCreated{Chat: types.Chat{ID: "2", Name: "Bob"}})

	assert.Equal(t, chats("1", "Alice", "2", "Bob"), s.Chats)
	assert.Empty(t, s.NewChatName)
}

func TestReduceChatCreatedAlreadyRefreshed(t *testing.T) {
	s := State{Chats: chats("1", "Alice", "2", "Bob"), NewChatName: "Bob"}
	s = Reduce(s, ChatCreated{Chat: types.Chat{ID: "2", Name: "Bob", Avatar: "http://b"}})

	want := []types.Chat{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob", Avatar: "http://b"}}
	if diff := cmp.Diff(want, s.Chats); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.NewChatName)
}

func TestReduceChatDeletedRemovesEveryMatch(t *testing.T) {
	s := State{Chats: chats("1", "Alice", "2", "Bob", "3", "Carol", "2", "Bob")}
	s = Reduce(s, ChatDeleted{ID: "2"})

	assert.Equal(t, chats("1", "Alice", "3", "Carol"), s.Chats)
}

func TestReduceChatDeleted(t *testing.T) {
	s := State{Chats: chats("1", "A", "2", "B", "3", "C"), RenamingID: "2", RenameDraft: "B2"}
	s = Reduce(s, ChatDeleted{ID: "2"})

	assert.Equal(t, chats("1", "A", "3", "C"), s.Chats)
	assert.False(t, s.Renaming(), "deleting the chat being renamed ends rename mode")

	s = Reduce(s, ChatDeleted{ID: "missing"})
	assert.Equal(t, chats("1", "A", "3", "C"), s.Chats)
}

func TestReduceRename(t *testing.T) {
	s := State{Chats: chats("1", "Alice", "2", "Bob")}

	s = Reduce(s, RenameStarted{ID: "1"})
	assert.Equal(t, "1", s.RenamingID)
	assert.Equal(t, "Alice", s.RenameDraft)

	s = Reduce(s, RenameDraftChanged{Draft: "Alicia"})
	assert.Equal(t, "Alicia", s.RenameDraft)

	s = Reduce(s, ChatRenamed{ID: "1", Name: "Alicia"})
	assert.Equal(t, chats("1", "Alicia", "2", "Bob"), s.Chats)
	assert.False(t, s.Renaming())
	assert.Empty(t, s.RenameDraft)
}

func TestReduceRenameEdgeCases(t *testing.T) {
	s := State{Chats: chats("1", "Alice")}

	assert.Equal(t, s, Reduce(s, RenameStarted{ID: "nope"}), "unknown id is ignored")
	assert.Equal(t, s, Reduce(s, RenameDraftChanged{Draft: "x"}), "draft edits need rename mode")

	s = Reduce(s, RenameStarted{ID: "1"})
	s = Reduce(s, RenameCancelled{})
	assert.False(t, s.Renaming())
	assert.Equal(t, chats("1", "Alice"), s.Chats)
}

func TestReduceRefreshEndsRenameOfVanishedChat(t *testing.T) {
	s := State{Chats: chats("1", "Alice", "2", "Bob"), RenamingID: "2", RenameDraft: "Bobby"}
	s = Reduce(s, RefreshSucceeded{Seq: 1, Chats: chats("1", "Alice")})
	assert.False(t, s.Renaming())

	s = State{Chats: chats("1", "Alice"), RenamingID: "1", RenameDraft: "Al"}
	s = Reduce(s, RefreshSucceeded{Seq: 1, Chats: chats("1", "Alice")})
	assert.Equal(t, "1", s.RenamingID)
	assert.Equal(t, "Al", s.RenameDraft)
}

func TestReduceMutationFailedIsNoop(t *testing.T) {
	s := State{Chats: chats("1", "Alice"), RenamingID: "1", RenameDraft: "x", NewChatName: "n"}
	got := Reduce(s, MutationFailed{Op: OpUpdate, ID: "1", Err: errors.New("boom")})
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestReduceInputs(t *testing.T) {
	s := Reduce(State{}, SearchChanged{Text: "al"})
	s = Reduce(s, NewChatNameChanged{Name: "Team"})
	assert.Equal(t, "al", s.SearchText)
	assert.Equal(t, "Team", s.NewChatName)
}

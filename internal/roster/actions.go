package roster

import "chatlist/internal/types"

// Action is a state transition request. The set of actions is closed.
type Action interface {
	isAction()
}

// RefreshStarted marks a list request with token Seq as in flight.
type RefreshStarted struct{ Seq uint64 }

// RefreshSucceeded carries the collection returned for token Seq.
type RefreshSucceeded struct {
	Seq   uint64
	Chats []types.Chat
}

// RefreshFailed reports that the list request for token Seq failed.
type RefreshFailed struct {
	Seq uint64
	Err error
}

// ChatCreated appends the server's record of a new chat.
type ChatCreated struct{ Chat types.Chat }

// ChatDeleted removes a chat after the server confirmed it.
type ChatDeleted struct{ ID string }

// ChatRenamed replaces a chat's name with the server's value.
type ChatRenamed struct {
	ID   string
	Name string
}

// MutationFailed reports a failed create, delete or update. State is left unchanged.
type MutationFailed struct {
	Op  string
	ID  string
	Err error
}

// SearchChanged sets the filter text.
type SearchChanged struct{ Text string }

// NewChatNameChanged sets the new-chat input.
type NewChatNameChanged struct{ Name string }

// RenameStarted enters rename mode for ID.
type RenameStarted struct{ ID string }

// RenameDraftChanged edits the pending name.
type RenameDraftChanged struct{ Draft string }

// RenameCancelled leaves rename mode without saving.
type RenameCancelled struct{}

func (RefreshStarted) isAction()     {}
func (RefreshSucceeded) isAction()   {}
func (RefreshFailed) isAction()      {}
func (ChatCreated) isAction()        {}
func (ChatDeleted) isAction()        {}
func (ChatRenamed) isAction()        {}
func (MutationFailed) isAction()     {}
func (SearchChanged) isAction()      {}
func (NewChatNameChanged) isAction() {}
func (RenameStarted) isAction()      {}
func (RenameDraftChanged) isAction() {}
func (RenameCancelled) isAction()    {}

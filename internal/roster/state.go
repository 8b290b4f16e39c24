// Package roster holds the home screen's chat list: the roster mirrored from the remote
// collection, the search filter, the new-chat input and rename mode.
//
// State is a plain value and every change goes through Reduce. Controller sequences
// gateway calls and feeds their outcomes back as Actions.
package roster

import "chatlist/internal/types"

// State is the complete roster screen state.
type State struct {
	Chats       []types.Chat
	SearchText  string
	NewChatName string

	// RenamingID is the chat in rename mode; empty when none.
	RenamingID  string
	RenameDraft string

	Loading    bool
	RefreshSeq uint64 // latest issued refresh token
}

// Renaming reports whether rename mode is active.
func (s State) Renaming() bool {
	return s.RenamingID != ""
}

// Find returns the chat with id and its index, or -1.
func (s State) Find(id string) (types.Chat, int) {
	for i, c := range s.Chats {
		if c.ID == id {
			return c, i
		}
	}
	return types.Chat{}, -1
}

// clone returns s with its own copy of Chats.
func (s State) clone() State {
	if s.Chats != nil {
		chats := make([]types.Chat, len(s.Chats))
		copy(chats, s.Chats)
		s.Chats = chats
	}
	return s
}

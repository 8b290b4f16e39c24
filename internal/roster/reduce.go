package roster

import "chatlist/internal/types"

// Reduce applies a to s and returns the next state. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case RefreshStarted:
		if a.Seq < s.RefreshSeq {
			return s
		}
		s.RefreshSeq = a.Seq
		s.Loading = true
		return s

	case RefreshSucceeded:
		// A response for an older token lost the race to a newer request.
		if a.Seq < s.RefreshSeq {
			return s
		}
		s = s.clone()
		s.RefreshSeq = a.Seq
		s.Loading = false
		s.Chats = make([]types.Chat, len(a.Chats))
		copy(s.Chats, a.Chats)
		if s.Renaming() {
			if _, i := s.Find(s.RenamingID); i < 0 {
				s.RenamingID, s.RenameDraft = "", ""
			}
		}
		return s

	case RefreshFailed:
		if a.Seq < s.RefreshSeq {
			return s
		}
		s.Loading = false
		return s

	case ChatCreated:
		s = s.clone()
		// A refresh may already have delivered this chat.
		if _, i := s.Find(a.Chat.ID); i >= 0 {
			s.Chats[i] = a.Chat
		} else {
			s.Chats = append(s.Chats, a.Chat)
		}
		s.NewChatName = ""
		return s

	case ChatDeleted:
		if _, i := s.Find(a.ID); i >= 0 {
			chats := make([]types.Chat, 0, len(s.Chats))
			for _, c := range s.Chats {
				if c.ID != a.ID {
					chats = append(chats, c)
				}
			}
			s.Chats = chats
		}
		if s.RenamingID == a.ID {
			s.RenamingID, s.RenameDraft = "", ""
		}
		return s

	case ChatRenamed:
		if _, i := s.Find(a.ID); i >= 0 {
			s = s.clone()
			s.Chats[i].Name = a.Name
		}
		s.RenamingID, s.RenameDraft = "", ""
		return s

	case MutationFailed:
		return s

	case SearchChanged:
		s.SearchText = a.Text
		return s

	case NewChatNameChanged:
		s.NewChatName = a.Name
		return s

	case RenameStarted:
		chat, i := s.Find(a.ID)
		if i < 0 {
			return s
		}
		s.RenamingID = chat.ID
		s.RenameDraft = chat.Name
		return s

	case RenameDraftChanged:
		if !s.Renaming() {
			return s
		}
		s.RenameDraft = a.Draft
		return s

	case RenameCancelled:
		s.RenamingID, s.RenameDraft = "", ""
		return s
	}
	return s
}

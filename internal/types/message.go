package types

// LocalUserID is the sender id of everything composed on this device.
const LocalUserID = "user1"

// Message is one entry of a thread. Messages are created locally and never persisted.
type Message struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
	Avatar string `json:"avatar,omitempty"`
}

// AvatarOr returns the message avatar, or def when it has none.
func (m Message) AvatarOr(def string) string {
	if m.Avatar == "" {
		return def
	}
	return m.Avatar
}

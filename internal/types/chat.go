// Package types provides shared type definitions used across chatlist packages.
// This package exists so the gateway, the roster and the thread screen can agree on
// the wire shape of a chat without importing each other.
// Types in this package should be foundational data structures with no complex dependencies.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// =============================================================================
// CHAT
// =============================================================================

// DefaultAvatar is rendered whenever a chat or message carries no avatar URI.
const DefaultAvatar = "https://via.placeholder.com/50"

// Chat is one entry of the remote chat collection.
// The client copy is a cache of server state; ID is assigned by the server.
type Chat struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// NewChat builds a chat.
func NewChat(id, name, avatar string) Chat {
	return Chat{ID: id, Name: name, Avatar: avatar}
}

// HasName reports whether the chat carries a usable name. Missing, null and
// non-string names all decode to "".
func (c Chat) HasName() bool {
	return c.Name != ""
}

// AvatarOr returns the chat avatar, or def when the chat has none.
func (c Chat) AvatarOr(def string) string {
	if c.Avatar == "" {
		return def
	}
	return c.Avatar
}

// Route builds the navigation parameters for this chat's thread screen.
func (c Chat) Route(defaultAvatar string) ThreadRoute {
	return ThreadRoute{
		ChatID:     c.ID,
		ChatName:   c.Name,
		ChatAvatar: c.AvatarOr(defaultAvatar),
	}
}

// wireChat is the tolerant decoding shape: mock backends are loose about types.
type wireChat struct {
	ID     json.RawMessage `json:"id"`
	Name   json.RawMessage `json:"name"`
	Avatar json.RawMessage `json:"avatar"`
}

// UnmarshalJSON decodes a chat, accepting numeric ids and ignoring non-string
// names and avatars instead of failing the whole roster.
func (c *Chat) UnmarshalJSON(data []byte) error {
	var w wireChat
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}

	name, _ := decodeString(w.Name)
	avatar, _ := decodeString(w.Avatar)

	*c = Chat{ID: id, Name: name, Avatar: avatar}
	return nil
}

// decodeID accepts a JSON string or number.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if s, ok := decodeString(raw); ok {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("chat id must be a string or number: %w", err)
	}
	return n.String(), nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

package config

import "chatlist/internal/types"

// UIConfig holds user interface configuration.
type UIConfig struct {
	// DefaultAvatar is shown for chats and messages without an avatar URI
	DefaultAvatar string `yaml:"default_avatar"`

	// LocalUserID is the sender id of messages composed on this device
	LocalUserID string `yaml:"local_user_id"`

	// Theme is "light", "dark" or "auto"
	Theme string `yaml:"theme"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		DefaultAvatar: types.DefaultAvatar,
		LocalUserID:   types.LocalUserID,
		Theme:         "auto",
	}
}

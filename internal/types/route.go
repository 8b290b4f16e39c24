package types

// ThreadRoute is everything the thread screen learns about its chat.
// The roster screen is the only producer; ChatAvatar is already defaulted.
type ThreadRoute struct {
	ChatID     string
	ChatName   string
	ChatAvatar string
}

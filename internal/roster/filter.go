package roster

import (
	"strings"

	"chatlist/internal/types"

	"golang.org/x/text/cases"
)

// Filter returns the chats whose name contains text, ignoring case.
// Chats without a usable name are never shown. Order is preserved.
func Filter(chats []types.Chat, text string) []types.Chat {
	fold := cases.Fold()
	needle := fold.String(text)

	out := make([]types.Chat, 0, len(chats))
	for _, c := range chats {
		if !c.HasName() {
			continue
		}
		if strings.Contains(fold.String(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

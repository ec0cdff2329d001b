package domain

import "fmt"

// ConversationKey derives the identifier grouping all messages between two
// users. The lower id always comes first, so the key is identical regardless
// of who initiates.
func ConversationKey(a, b int32) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

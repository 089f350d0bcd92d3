package store

import "fmt"

// Key helpers for the redis-backed store. Kept in one place so the key
// format cannot drift between readers and writers.

func gameKey() string { return "uno:game" }

func playerKey() string { return "uno:player" }

func chatKey(chatID string) string {
	return fmt.Sprintf("uno:chat:%s", chatID)
}

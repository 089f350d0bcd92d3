package store

import "UnoClient/models"

// Store holds the client's view of the current game, the local player
// identity and the chats. Implementations must be safe for concurrent
// use, and every write is a whole-object replace: the sync layer never
// merges an optimistic guess into authoritative state, the last writer
// simply wins.
type Store interface {
	// Game returns a detached copy of the current game, or nil when no
	// game is loaded.
	Game() *models.Game
	// Player returns a detached copy of the local player identity, or
	// nil when the session has not been established yet.
	Player() *models.Player
	// Chat returns a detached copy of the chat with the given id, or nil
	// when it is unknown.
	Chat(chatID string) *models.Chat

	SetGameData(game *models.Game)
	SetPlayerData(player *models.Player)
	SetChatData(chat *models.Chat)
	// AddChatMessage appends a message to the chat with the given id,
	// creating the chat when it does not exist yet.
	AddChatMessage(chatID string, msg models.ChatMessage)
}

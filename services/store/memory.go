package store

import (
	"sync"

	"UnoClient/models"
)

// MemoryStore is the default in-process Store. Reads hand out clones so
// a caller can never observe a mutation in progress.
type MemoryStore struct {
	mu     sync.RWMutex
	game   *models.Game
	player *models.Player
	chats  map[string]*models.Chat
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chats: make(map[string]*models.Chat),
	}
}

func (s *MemoryStore) Game() *models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Clone()
}

func (s *MemoryStore) Player() *models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.player == nil {
		return nil
	}
	p := s.player.Clone()
	return &p
}

func (s *MemoryStore) Chat(chatID string) *models.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chats[chatID].Clone()
}

func (s *MemoryStore) SetGameData(game *models.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = game.Clone()
}

func (s *MemoryStore) SetPlayerData(player *models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player == nil {
		s.player = nil
		return
	}
	p := player.Clone()
	s.player = &p
}

func (s *MemoryStore) SetChatData(chat *models.Chat) {
	if chat == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chat.ID] = chat.Clone()
}

func (s *MemoryStore) AddChatMessage(chatID string, msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		chat = &models.Chat{ID: chatID}
		s.chats[chatID] = chat
	}
	chat.Messages = append(chat.Messages, msg)
}

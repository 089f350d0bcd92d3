package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"UnoClient/models"
)

// stateTTL keeps abandoned client state from piling up in Redis.
const stateTTL = 24 * time.Hour

// RedisStore mirrors the client state into Redis so a supervising
// process can inspect it. It implements the same Store contract as
// MemoryStore; Redis failures are logged and read back as "absent",
// never surfaced to the sync layer.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to Redis at the given address. Remote
// deployments pass a full redis:// URL, local ones a host:port pair.
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	var client *redis.Client
	if addr != "localhost:6379" {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %v", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}

	rs := &RedisStore{client: client, ctx: context.Background()}
	if err := client.Ping(rs.ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}
	return rs, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %v", err)
	}
	return nil
}

func (s *RedisStore) Game() *models.Game {
	var game models.Game
	if !s.get(gameKey(), &game) {
		return nil
	}
	return &game
}

func (s *RedisStore) Player() *models.Player {
	var player models.Player
	if !s.get(playerKey(), &player) {
		return nil
	}
	return &player
}

func (s *RedisStore) Chat(chatID string) *models.Chat {
	var chat models.Chat
	if !s.get(chatKey(chatID), &chat) {
		return nil
	}
	return &chat
}

func (s *RedisStore) SetGameData(game *models.Game) {
	s.set(gameKey(), game)
}

func (s *RedisStore) SetPlayerData(player *models.Player) {
	s.set(playerKey(), player)
}

func (s *RedisStore) SetChatData(chat *models.Chat) {
	if chat == nil {
		return
	}
	s.set(chatKey(chat.ID), chat)
}

func (s *RedisStore) AddChatMessage(chatID string, msg models.ChatMessage) {
	chat := s.Chat(chatID)
	if chat == nil {
		chat = &models.Chat{ID: chatID}
	}
	chat.Messages = append(chat.Messages, msg)
	s.set(chatKey(chatID), chat)
}

// get loads and unmarshals one key. Returns false when the key is
// missing or unreadable.
func (s *RedisStore) get(key string, out any) bool {
	data, err := s.client.Get(s.ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[STORE-ERROR] error getting key %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[STORE-ERROR] error unmarshaling key %s: %v", key, err)
		return false
	}
	return true
}

func (s *RedisStore) set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[STORE-ERROR] error marshaling key %s: %v", key, err)
		return
	}
	if err := s.client.Set(s.ctx, key, data, stateTTL).Err(); err != nil {
		log.Printf("[STORE-ERROR] error setting key %s: %v", key, err)
	}
}

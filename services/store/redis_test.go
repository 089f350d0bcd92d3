package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"UnoClient/models"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	srv := miniredis.RunT(t)
	st, err := NewRedisStore("redis://"+srv.Addr(), 0)
	if err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// deadRedisStore points at a port nobody listens on, so every command
// fails at dial time.
func deadRedisStore() *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	return &RedisStore{client: client, ctx: context.Background()}
}

func TestRedisStoreEmpty(t *testing.T) {
	st := newTestRedisStore(t)
	assert.Nil(t, st.Game())
	assert.Nil(t, st.Player())
	assert.Nil(t, st.Chat("anything"))
}

func TestRedisStoreGameRoundTrip(t *testing.T) {
	st := newTestRedisStore(t)
	st.SetGameData(&models.Game{
		ID:      "g1",
		Status:  "started",
		Players: []models.Player{{ID: "p1", HandCards: []models.Card{{ID: "c1", Color: "red", Value: "7"}}}},
	})

	read := st.Game()
	assert.NotNil(t, read)
	assert.Equal(t, "g1", read.ID)
	assert.Equal(t, "c1", read.Players[0].HandCards[0].ID)

	// Reads go through the wire, so copies are detached by construction.
	read.Players[0].ID = "tampered"
	assert.Equal(t, "p1", st.Game().Players[0].ID)
}

func TestRedisStoreChatAppendOrder(t *testing.T) {
	st := newTestRedisStore(t)

	// AddChatMessage creates the chat on first use.
	st.AddChatMessage("chat-1", models.ChatMessage{Message: "first", Username: "Ana"})
	st.AddChatMessage("chat-1", models.ChatMessage{Message: "second", Username: "Bea"})

	chat := st.Chat("chat-1")
	assert.NotNil(t, chat)
	assert.Equal(t, "chat-1", chat.ID)
	assert.Len(t, chat.Messages, 2)
	assert.Equal(t, "first", chat.Messages[0].Message)
	assert.Equal(t, "second", chat.Messages[1].Message)
}

func TestRedisStoreErrorsReadAsAbsent(t *testing.T) {
	st := deadRedisStore()
	defer st.Close()

	// Every command fails; the sync layer must see "no state", not an
	// error or a panic.
	assert.Nil(t, st.Game())
	assert.Nil(t, st.Player())
	assert.Nil(t, st.Chat("chat-1"))

	// Writes are swallowed too.
	st.SetGameData(&models.Game{ID: "g1"})
	st.AddChatMessage("chat-1", models.ChatMessage{Message: "lost"})
	assert.Nil(t, st.Game())
	assert.Nil(t, st.Chat("chat-1"))
}

func TestRedisStoreCorruptValueReadsAsAbsent(t *testing.T) {
	srv := miniredis.RunT(t)
	st, err := NewRedisStore("redis://"+srv.Addr(), 0)
	if err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}
	defer st.Close()

	srv.Set(gameKey(), "{not json")
	assert.Nil(t, st.Game())
}

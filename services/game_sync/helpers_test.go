package game_sync

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"UnoClient/models"
	"UnoClient/services/gateway"
	"UnoClient/services/store"
)

type emittedRequest struct {
	Event   string
	Payload json.RawMessage
}

// fakeGateway records emits, serves scripted responses and lets tests
// push server events through the registered handlers.
type fakeGateway struct {
	mu          sync.Mutex
	emits       []emittedRequest
	emitted     chan string
	notifies    []emittedRequest
	responses   map[string]any
	errs        map[string]error
	handlers    map[string][]gateway.Handler
	player      *models.Player
	playerErr   error
	playerCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		emitted:   make(chan string, 16),
		responses: make(map[string]any),
		errs:      make(map[string]error),
		handlers:  make(map[string][]gateway.Handler),
	}
}

func (f *fakeGateway) Emit(_ context.Context, event string, payload any, response any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.emits = append(f.emits, emittedRequest{Event: event, Payload: data})
	f.mu.Unlock()
	f.emitted <- event

	if err := f.errs[event]; err != nil {
		return err
	}
	if resp, ok := f.responses[event]; ok && response != nil {
		raw, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, response)
	}
	return nil
}

func (f *fakeGateway) Notify(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.notifies = append(f.notifies, emittedRequest{Event: event, Payload: data})
	f.mu.Unlock()
	return f.errs[event]
}

// lastNotify returns the most recent fire-and-forget frame for the event.
func (f *fakeGateway) lastNotify(t *testing.T, event string) emittedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.notifies) - 1; i >= 0; i-- {
		if f.notifies[i].Event == event {
			return f.notifies[i]
		}
	}
	t.Fatalf("no notify recorded for %s", event)
	return emittedRequest{}
}

func (f *fakeGateway) On(event string, handler gateway.Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[event] = append(f.handlers[event], handler)
}

func (f *fakeGateway) GetPlayerData(context.Context) (*models.Player, error) {
	f.mu.Lock()
	f.playerCalls++
	f.mu.Unlock()
	if f.playerErr != nil {
		return nil, f.playerErr
	}
	return f.player, nil
}

// push marshals payload and runs it through every handler registered for
// the event, like a server push would.
func (f *fakeGateway) push(t *testing.T, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal push payload: %v", err)
	}
	f.mu.Lock()
	handlers := append([]gateway.Handler(nil), f.handlers[event]...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(data)
	}
}

// waitForEmit blocks until the named request went out. Dispatchers send
// synchronously today but the log channel keeps tests order-agnostic.
func (f *fakeGateway) waitForEmit(t *testing.T, event string) emittedRequest {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-f.emitted:
			if got != event {
				continue
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			for i := len(f.emits) - 1; i >= 0; i-- {
				if f.emits[i].Event == event {
					return f.emits[i]
				}
			}
			t.Fatalf("emit %s signaled but not recorded", event)
		case <-deadline:
			t.Fatalf("timed out waiting for emit %s", event)
		}
	}
}

func newTestService() (*Service, *store.MemoryStore, *fakeGateway) {
	st := store.NewMemoryStore()
	gw := newFakeGateway()
	return NewService(st, gw), st, gw
}

// seatedGame builds the canonical two-player fixture: p1 with an empty
// hand, p2 holding c1, p2's turn.
func seatedGame() *models.Game {
	return &models.Game{
		ID:                 "g1",
		Status:             "started",
		CurrentPlayerIndex: 1,
		Players: []models.Player{
			{ID: "p1", Name: "Ana", HandCards: []models.Card{}},
			{ID: "p2", Name: "Bea", HandCards: []models.Card{{ID: "c1", Color: "red", Value: "7"}}},
		},
	}
}

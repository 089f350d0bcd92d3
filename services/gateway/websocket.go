package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"UnoClient/models"
)

// redialDelay is the fixed pause between reconnection attempts. Anything
// smarter (backoff, jitter) belongs to the deployment's proxy layer.
const redialDelay = 2 * time.Second

// ErrGatewayClosed is returned by Emit after Close has been called.
var ErrGatewayClosed = errors.New("gateway closed")

// ErrConnectionLost fails in-flight emits whose ack can no longer
// arrive because the connection dropped. Callers decide whether to
// retry once the reconnect push fires.
var ErrConnectionLost = errors.New("connection lost before ack")

// envelope is the wire frame. A request carries a fresh id; the server
// acks with the same id. Frames without a pending id are pushes.
type envelope struct {
	Event string          `json:"event"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// WebsocketGateway implements Gateway over a single websocket
// connection. It redials on read failure and fires ReconnectEvent after
// a successful redial.
type WebsocketGateway struct {
	url string

	writeMu sync.Mutex
	conn    *websocket.Conn

	pendingMu sync.Mutex
	pending   map[string]chan envelope

	handlersMu sync.RWMutex
	handlers   map[string][]Handler

	done chan struct{}
}

// Dial connects to the game server and starts the read loop.
func Dial(url string) (*WebsocketGateway, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("error dialing game server: %v", err)
	}

	g := &WebsocketGateway{
		url:      url,
		conn:     conn,
		pending:  make(map[string]chan envelope),
		handlers: make(map[string][]Handler),
		done:     make(chan struct{}),
	}
	go g.readLoop()
	return g, nil
}

// Close tears down the connection. Pending emits fail with
// ErrGatewayClosed.
func (g *WebsocketGateway) Close() error {
	select {
	case <-g.done:
		return nil
	default:
	}
	close(g.done)

	g.writeMu.Lock()
	err := g.conn.Close()
	g.writeMu.Unlock()

	g.failPending()
	return err
}

// failPending closes every waiting ack channel so in-flight emits fail
// fast instead of sitting out their contexts. Runs on Close and on every
// connection drop; acks cannot survive either.
func (g *WebsocketGateway) failPending() {
	g.pendingMu.Lock()
	defer g.pendingMu.Unlock()
	for id, ch := range g.pending {
		close(ch)
		delete(g.pending, id)
	}
}

func (g *WebsocketGateway) Emit(ctx context.Context, event string, payload any, response any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling %s payload: %v", event, err)
	}

	id := uuid.NewString()
	ack := make(chan envelope, 1)
	g.pendingMu.Lock()
	g.pending[id] = ack
	g.pendingMu.Unlock()
	defer func() {
		g.pendingMu.Lock()
		delete(g.pending, id)
		g.pendingMu.Unlock()
	}()

	if err := g.write(envelope{Event: event, ID: id, Data: data}); err != nil {
		return err
	}

	select {
	case env, ok := <-ack:
		if !ok {
			select {
			case <-g.done:
				return ErrGatewayClosed
			default:
				return ErrConnectionLost
			}
		}
		if env.Error != "" {
			return fmt.Errorf("%s rejected: %s", event, env.Error)
		}
		if response != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, response); err != nil {
				return fmt.Errorf("error unmarshaling %s response: %v", event, err)
			}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-g.done:
		return ErrGatewayClosed
	}
}

// Notify writes the frame without a correlation id, so the server has
// nothing to ack and the caller never waits.
func (g *WebsocketGateway) Notify(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling %s payload: %v", event, err)
	}
	return g.write(envelope{Event: event, Data: data})
}

func (g *WebsocketGateway) On(event string, handler Handler) {
	g.handlersMu.Lock()
	defer g.handlersMu.Unlock()
	g.handlers[event] = append(g.handlers[event], handler)
}

func (g *WebsocketGateway) GetPlayerData(ctx context.Context) (*models.Player, error) {
	var player models.Player
	if err := g.Emit(ctx, "GetPlayerData", struct{}{}, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (g *WebsocketGateway) write(env envelope) error {
	select {
	case <-g.done:
		return ErrGatewayClosed
	default:
	}
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	return g.conn.WriteJSON(env)
}

// readLoop decodes frames until the gateway is closed, routing acks to
// their waiting Emit and everything else to the push handlers.
func (g *WebsocketGateway) readLoop() {
	for {
		_, data, err := g.conn.ReadMessage()
		if err != nil {
			select {
			case <-g.done:
				return
			default:
			}
			log.Printf("[GATEWAY] connection lost: %v", err)
			g.failPending()
			if !g.redial() {
				return
			}
			continue
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("[GATEWAY] dropping bad frame: %v", err)
			continue
		}

		if env.ID != "" && g.resolve(env) {
			continue
		}
		g.dispatch(env.Event, env.Data)
	}
}

// resolve hands an ack frame to the Emit waiting on its id. Returns
// false when nothing is waiting, in which case the frame is treated as a
// push (the server may tag pushes with ids of its own).
func (g *WebsocketGateway) resolve(env envelope) bool {
	g.pendingMu.Lock()
	defer g.pendingMu.Unlock()
	ch, ok := g.pending[env.ID]
	if !ok {
		return false
	}
	delete(g.pending, env.ID)
	ch <- env
	return true
}

func (g *WebsocketGateway) dispatch(event string, data json.RawMessage) {
	g.handlersMu.RLock()
	handlers := append([]Handler(nil), g.handlers[event]...)
	g.handlersMu.RUnlock()
	for _, h := range handlers {
		h(data)
	}
}

// redial replaces the dead connection, then announces ReconnectEvent so
// subscribers can resynchronize. Returns false once the gateway closes.
func (g *WebsocketGateway) redial() bool {
	for {
		select {
		case <-g.done:
			return false
		case <-time.After(redialDelay):
		}

		conn, _, err := websocket.DefaultDialer.Dial(g.url, nil)
		if err != nil {
			log.Printf("[GATEWAY] redial failed: %v", err)
			continue
		}

		g.writeMu.Lock()
		g.conn = conn
		g.writeMu.Unlock()

		log.Printf("[GATEWAY] reconnected to %s", g.url)
		g.dispatch(ReconnectEvent, nil)
		return true
	}
}

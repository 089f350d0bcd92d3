package gateway

import (
	"context"
	"encoding/json"

	"UnoClient/models"
)

// ReconnectEvent is the synthetic push fired by a transport after it
// re-establishes a dropped connection. Subscribers use it to resync the
// local player identity.
const ReconnectEvent = "reconnect"

// Handler receives the raw payload of a server push. Handlers for one
// event name fire in registration order; no ordering holds across
// different event names.
type Handler func(data json.RawMessage)

// Gateway is the transport boundary of the sync layer: request/response
// emits, server pushes, and the player-data fetch used on reconnect.
// Connection lifecycle and retry policy live behind this interface, not
// in front of it.
type Gateway interface {
	// Emit sends a request and blocks until the server acks it or ctx is
	// done. When response is non-nil the ack payload is decoded into it.
	Emit(ctx context.Context, event string, payload any, response any) error
	// Notify sends a fire-and-forget frame: no correlation id, no ack,
	// returns as soon as the frame is written.
	Notify(event string, payload any) error
	// On registers a handler for a server-pushed event.
	On(event string, handler Handler)
	// GetPlayerData fetches the authoritative local player record.
	GetPlayerData(ctx context.Context) (*models.Player, error)
}

package game_sync

import (
	"context"
	"encoding/json"
	"log"

	"UnoClient/models"
	"UnoClient/services/gateway"
)

// Push event names sent by the game server.
const (
	EventGameStarted     = "GameStarted"
	EventNewMessage      = "NewMessage"
	EventGameListUpdated = "GameListUpdated"
	EventPlayerBuyCards  = "PlayerBuyCards"
	EventPlayerBlocked   = "PlayerBlocked"
	EventPlayerUno       = "PlayerUno"
)

// PlayerNotification is a transient player state announced by the
// server. The three cases are mutually exclusive; consumers switch on
// the concrete type. None of them touch the store — the matching hand
// changes arrive through the next full game push.
type PlayerNotification interface{ isPlayerNotification() }

// BuyCards reports that a player has to draw Amount cards.
type BuyCards struct {
	PlayerID string
	Amount   int
}

// Blocked reports that a player's turn was skipped.
type Blocked struct {
	PlayerID string
}

// Uno reports that a player is down to one card.
type Uno struct {
	PlayerID string
}

func (BuyCards) isPlayerNotification() {}
func (Blocked) isPlayerNotification()  {}
func (Uno) isPlayerNotification()      {}

type newMessagePayload struct {
	ChatID  string             `json:"chatId"`
	Message models.ChatMessage `json:"message"`
}

type playerEventPayload struct {
	PlayerID    string `json:"playerId"`
	AmountToBuy int    `json:"amountToBuy"`
}

// OnGameStarted replaces the stored game wholesale on every GameStarted
// push, then invokes cb. The store is written first, so cb can read the
// new state through the service.
func (s *Service) OnGameStarted(cb func(game *models.Game)) {
	s.gw.On(EventGameStarted, func(data json.RawMessage) {
		var game models.Game
		if err := json.Unmarshal(data, &game); err != nil {
			log.Printf("[GAME-ERROR] bad GameStarted payload: %v", err)
			return
		}
		s.store.SetGameData(&game)
		if cb != nil {
			cb(&game)
		}
	})
}

// OnNewMessage appends every pushed chat message to the store, then
// invokes the optional cb.
func (s *Service) OnNewMessage(cb func(chatID string, msg models.ChatMessage)) {
	s.gw.On(EventNewMessage, func(data json.RawMessage) {
		var payload newMessagePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			log.Printf("[CHAT-ERROR] bad NewMessage payload: %v", err)
			return
		}
		s.store.AddChatMessage(payload.ChatID, payload.Message)
		if cb != nil {
			cb(payload.ChatID, payload.Message)
		}
	})
}

// OnGameListUpdated forwards lobby list updates untouched; this layer is
// agnostic to their shape.
func (s *Service) OnGameListUpdated(cb func(data json.RawMessage)) {
	s.gw.On(EventGameListUpdated, func(data json.RawMessage) {
		if cb != nil {
			cb(data)
		}
	})
}

// OnPlayerNotification installs the three player-state handlers behind a
// single callback taking the PlayerNotification variant.
func (s *Service) OnPlayerNotification(cb func(n PlayerNotification)) {
	if cb == nil {
		return
	}
	s.gw.On(EventPlayerBuyCards, func(data json.RawMessage) {
		p, ok := decodePlayerEvent(EventPlayerBuyCards, data)
		if !ok {
			return
		}
		cb(BuyCards{PlayerID: p.PlayerID, Amount: p.AmountToBuy})
	})
	s.gw.On(EventPlayerBlocked, func(data json.RawMessage) {
		p, ok := decodePlayerEvent(EventPlayerBlocked, data)
		if !ok {
			return
		}
		cb(Blocked{PlayerID: p.PlayerID})
	})
	s.gw.On(EventPlayerUno, func(data json.RawMessage) {
		p, ok := decodePlayerEvent(EventPlayerUno, data)
		if !ok {
			return
		}
		cb(Uno{PlayerID: p.PlayerID})
	})
}

func decodePlayerEvent(event string, data json.RawMessage) (playerEventPayload, bool) {
	var p playerEventPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("[PLAYER-ERROR] bad %s payload: %v", event, err)
		return playerEventPayload{}, false
	}
	return p, true
}

// OnReconnect resynchronizes the local player identity after the
// transport reconnects: fetch the authoritative record, replace it in
// the store, then invoke cb. Game and chat recovery is not done here;
// those arrive through their own pushes or a fresh join. A failed fetch
// is logged and cb is skipped.
func (s *Service) OnReconnect(cb func(player *models.Player)) {
	s.gw.On(gateway.ReconnectEvent, func(json.RawMessage) {
		player, err := s.gw.GetPlayerData(context.Background())
		if err != nil {
			log.Printf("[RECONNECT-ERROR] could not refetch player data: %v", err)
			return
		}
		s.store.SetPlayerData(player)
		if cb != nil {
			cb(player)
		}
	})
}

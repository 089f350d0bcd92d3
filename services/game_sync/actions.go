package game_sync

import (
	"context"
	"log"

	game_constants "UnoClient/constants/game"
	"UnoClient/models"
)

// Request event names understood by the game server.
const (
	EventJoinGame            = "JoinGame"
	EventToggleReady         = "ToggleReady"
	EventBuyCard             = "BuyCard"
	EventPutCard             = "PutCard"
	EventChangePlayerStatus  = "ChangePlayerStatus"
	EventSendChatMessage     = "SendChatMessage"
	EventForceSelfDisconnect = "ForceSelfDisconnect"
)

// OptimisticPolicy says when an action's local mutation runs relative to
// its request.
type OptimisticPolicy int

const (
	// PolicyNone sends the request and leaves the store alone; the
	// result arrives as a push.
	PolicyNone OptimisticPolicy = iota
	// PolicyApplyThenSend mutates immediately for responsiveness and
	// lets the next authoritative push clobber a wrong guess.
	PolicyApplyThenSend
	// PolicyAwaitThenApply mutates only after the server acks, for
	// actions where a wrong guess would confuse more than a short wait.
	PolicyAwaitThenApply
)

// ActionPolicies declares the reconciliation choice per action. The
// dispatchers consult this table instead of deciding ad hoc, so the
// asymmetry (ready is applied-then-confirmed, online status is
// confirmed-then-applied) is auditable in one place.
var ActionPolicies = map[string]OptimisticPolicy{
	EventJoinGame:            PolicyNone,
	EventToggleReady:         PolicyApplyThenSend,
	EventBuyCard:             PolicyNone,
	EventPutCard:             PolicyApplyThenSend,
	EventChangePlayerStatus:  PolicyAwaitThenApply,
	EventSendChatMessage:     PolicyNone,
	EventForceSelfDisconnect: PolicyNone,
}

type gamePayload struct {
	GameID string `json:"gameId"`
}

type putCardPayload struct {
	GameID        string   `json:"gameId"`
	CardIDs       []string `json:"cardIds"`
	SelectedColor string   `json:"selectedColor"`
}

type playerStatusPayload struct {
	GameID       string `json:"gameId"`
	PlayerStatus string `json:"playerStatus"`
}

type chatMessagePayload struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type joinGameResponse struct {
	Game *models.Game `json:"game"`
	Chat *models.Chat `json:"chat"`
}

// dispatch runs one action under its declared policy. mutate may be nil
// for actions without a local effect.
func (s *Service) dispatch(ctx context.Context, event string, payload any, response any, mutate func()) error {
	policy := ActionPolicies[event]
	if policy == PolicyApplyThenSend && mutate != nil {
		mutate()
	}
	if err := s.gw.Emit(ctx, event, payload, response); err != nil {
		return err
	}
	if policy == PolicyAwaitThenApply && mutate != nil {
		mutate()
	}
	return nil
}

// JoinGame enters the game and replaces the stored game and chat with
// the authoritative copies from the response.
func (s *Service) JoinGame(ctx context.Context, gameID string) (*models.Game, error) {
	var resp joinGameResponse
	if err := s.dispatch(ctx, EventJoinGame, gamePayload{GameID: gameID}, &resp, nil); err != nil {
		return nil, err
	}
	if resp.Game != nil {
		s.store.SetGameData(resp.Game)
	}
	if resp.Chat != nil {
		s.store.SetChatData(resp.Chat)
	}
	return resp.Game, nil
}

// ToggleReady flips the local ready flag and fires the request without
// waiting for an ack. A failed write is only logged: the flag converges
// on the next authoritative push.
func (s *Service) ToggleReady(gameID string) {
	if ActionPolicies[EventToggleReady] == PolicyApplyThenSend {
		s.mutateLocalPlayer(func(_ *models.Game, self *models.Player) {
			self.Ready = !self.Ready
		})
	}
	if err := s.gw.Notify(EventToggleReady, gamePayload{GameID: gameID}); err != nil {
		log.Printf("[READY-ERROR] ToggleReady request failed: %v", err)
	}
}

// BuyCard asks the server for cards. No optimistic mutation: the drawn
// cards are unpredictable and arrive via a later push, not this ack.
func (s *Service) BuyCard(ctx context.Context, gameID string) error {
	return s.dispatch(ctx, EventBuyCard, gamePayload{GameID: gameID}, nil, nil)
}

// PutCard plays the given hand cards: they move from the local hand to
// the front of UsedCards immediately, then the request goes out. Card
// ids not present in the hand are skipped silently, and when the local
// player is not seated the mutation is skipped entirely but the request
// is still sent.
func (s *Service) PutCard(ctx context.Context, gameID string, cardIDs []string, selectedColor string) error {
	mutate := func() {
		s.mutateLocalPlayer(func(g *models.Game, self *models.Player) {
			moved := make([]models.Card, 0, len(cardIDs))
			for _, id := range cardIDs {
				for i := range self.HandCards {
					if self.HandCards[i].ID == id {
						moved = append(moved, self.HandCards[i])
						self.HandCards = append(self.HandCards[:i], self.HandCards[i+1:]...)
						break
					}
				}
			}
			if len(moved) > 0 {
				g.UsedCards = append(moved, g.UsedCards...)
			}
		})
	}
	payload := putCardPayload{GameID: gameID, CardIDs: cardIDs, SelectedColor: selectedColor}
	return s.dispatch(ctx, EventPutCard, payload, nil, mutate)
}

// ToggleOnlineStatus reports the player as online. Unlike ToggleReady
// this waits for the ack before touching the store.
func (s *Service) ToggleOnlineStatus(ctx context.Context, gameID string) error {
	mutate := func() {
		s.mutateLocalPlayer(func(_ *models.Game, self *models.Player) {
			self.Status = game_constants.PlayerStatusOnline
		})
		if p := s.store.Player(); p != nil {
			p.Status = game_constants.PlayerStatusOnline
			s.store.SetPlayerData(p)
		}
	}
	payload := playerStatusPayload{GameID: gameID, PlayerStatus: game_constants.PlayerStatusOnline}
	return s.dispatch(ctx, EventChangePlayerStatus, payload, nil, mutate)
}

// SendChatMessage submits a chat message. It shows up locally only once
// the server echoes it back as a NewMessage push.
func (s *Service) SendChatMessage(ctx context.Context, chatID, message string) error {
	return s.dispatch(ctx, EventSendChatMessage, chatMessagePayload{ChatID: chatID, Message: message}, nil, nil)
}

// ForceSelfDisconnect tells the server to drop this player's session.
func (s *Service) ForceSelfDisconnect(ctx context.Context, gameID string) error {
	return s.dispatch(ctx, EventForceSelfDisconnect, gamePayload{GameID: gameID}, nil, nil)
}

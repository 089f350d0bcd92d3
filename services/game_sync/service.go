// Package game_sync is the optimistic reconciliation engine of the
// client: it derives display-ready views from the stored game state,
// dispatches user actions to the transport (applying local optimistic
// mutations where the policy table says so), and subscribes to server
// pushes that overwrite local state wholesale.
//
// Consistency model: optimistic mutations and authoritative pushes are
// not correlated by any request id. Every store write replaces whole
// objects and the last writer wins; a wrong optimistic guess is healed
// by the next push, never merged with it.
package game_sync

import (
	"UnoClient/models"
	"UnoClient/services/gateway"
	"UnoClient/services/store"
)

// Service wires the state store and the transport gateway together.
type Service struct {
	store store.Store
	gw    gateway.Gateway
}

// NewService creates a sync service over the given collaborators.
func NewService(st store.Store, gw gateway.Gateway) *Service {
	return &Service{store: st, gw: gw}
}

// GetChat returns the chat with the given id, or nil when the id is
// empty or unknown. Callers that need to tell those cases apart must
// check the id themselves; the presentation layer treats both as
// "render nothing".
func (s *Service) GetChat(chatID string) *models.Chat {
	if chatID == "" {
		return nil
	}
	return s.store.Chat(chatID)
}

// mutateLocalPlayer runs fn against the local player's seat in a copy of
// the stored game and replaces the whole game. Returns false without
// sending anything to the store when the game, the local identity or the
// seat is missing.
func (s *Service) mutateLocalPlayer(fn func(g *models.Game, self *models.Player)) bool {
	g := s.store.Game()
	p := s.store.Player()
	if g == nil || p == nil {
		return false
	}
	var self *models.Player
	for i := range g.Players {
		if g.Players[i].ID == p.ID {
			self = &g.Players[i]
			break
		}
	}
	if self == nil {
		return false
	}
	fn(g, self)
	s.store.SetGameData(g)
	return true
}

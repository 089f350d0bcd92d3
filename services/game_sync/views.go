package game_sync

import (
	game_constants "UnoClient/constants/game"
	"UnoClient/models"
)

// View derivations. All of them are defensive: missing game, unseated
// player or an out-of-range index yield nil, never a panic, so the
// presentation layer can render "unknown" states.

// CurrentRoundPlayer returns the player whose turn it is, or nil when no
// game is loaded or the index is out of range.
func (s *Service) CurrentRoundPlayer() *models.Player {
	g := s.store.Game()
	if g == nil || g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// Winner returns the winner of the stored game, or nil while it is still
// running.
func (s *Service) Winner() *models.Player {
	return WinnerOf(s.store.Game())
}

// WinnerOf returns the winner of g. By server convention
// CurrentPlayerIndex points at the winner once the status is "ended";
// before that there is no winner.
func WinnerOf(g *models.Game) *models.Player {
	if g == nil || g.Status != game_constants.GameStatusEnded {
		return nil
	}
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// LocalPlayer returns the local player's seat in the stored game, or nil
// when not seated (spectators, pre-join).
func (s *Service) LocalPlayer() *models.Player {
	g := s.store.Game()
	p := s.store.Player()
	if g == nil || p == nil {
		return nil
	}
	return FindPlayer(g.Players, p.ID)
}

// FindPlayer returns the player with the given id, or nil.
func FindPlayer(players []models.Player, id string) *models.Player {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return nil
}

// OtherPlayers returns the opponents laid out from the local player's
// point of view. See TableLayout for the rotation and padding rules.
func (s *Service) OtherPlayers() []*models.Player {
	g := s.store.Game()
	if g == nil {
		return nil
	}
	localID := ""
	if p := s.store.Player(); p != nil {
		localID = p.ID
	}
	return TableLayout(g.Players, localID)
}

// TableLayout rotates players so seating proceeds clockwise starting
// immediately after the local seat. An unseated local player is treated
// as sitting past the end, so the whole list comes back. With up to
// MaxPaddedSeats players the result is padded to TableLayoutSlots
// positions, opponents at even indices and nil blanks between them —
// the fixed board geometry expects exactly that shape, vacant opponent
// slots included.
func TableLayout(players []models.Player, localID string) []*models.Player {
	local := len(players)
	for i := range players {
		if players[i].ID == localID {
			local = i
			break
		}
	}

	rotated := make([]*models.Player, 0, len(players))
	for i := local + 1; i < len(players); i++ {
		rotated = append(rotated, &players[i])
	}
	for i := 0; i < local && i < len(players); i++ {
		rotated = append(rotated, &players[i])
	}

	if len(players) > game_constants.MaxPaddedSeats {
		return rotated
	}

	padded := make([]*models.Player, game_constants.TableLayoutSlots)
	for i, p := range rotated {
		padded[2*i] = p
	}
	return padded
}

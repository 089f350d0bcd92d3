package models

// Card is a single playing card. Color and value are opaque to the sync
// layer; the server decides legality.
type Card struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Value string `json:"value"`
}

// Player represents one seat in a game.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	Status    string `json:"status"`
	HandCards []Card `json:"handCards"`
}

// Game mirrors the server's authoritative game state. Players is in
// seating order, which doubles as turn order. Once Status is "ended" the
// server repurposes CurrentPlayerIndex to point at the winner.
type Game struct {
	ID                 string   `json:"id"`
	Status             string   `json:"status"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	Players            []Player `json:"players"`
	UsedCards          []Card   `json:"usedCards"`
}

// Clone returns a detached copy of the player, including the hand.
func (p Player) Clone() Player {
	out := p
	out.HandCards = append([]Card(nil), p.HandCards...)
	return out
}

// Clone returns a detached copy of the game so a reader can never see a
// half-applied mutation. Nil in, nil out.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	out.Players = make([]Player, len(g.Players))
	for i := range g.Players {
		out.Players[i] = g.Players[i].Clone()
	}
	out.UsedCards = append([]Card(nil), g.UsedCards...)
	return &out
}

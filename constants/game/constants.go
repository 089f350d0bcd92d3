package game_constants

// Game lifecycle statuses as sent by the server.
const (
	GameStatusWaiting = "waiting"
	GameStatusStarted = "started"
	GameStatusEnded   = "ended"
)

// Player presence statuses.
const (
	PlayerStatusOnline  = "online"
	PlayerStatusOffline = "offline"
)

// Table layout constants. The board renders a fixed geometry of 4 seats
// with gaps between them, so up to 4 players the opponent list is padded
// to 7 slots (opponents at even indices, blanks at odd ones). Beyond 4
// players the layout falls back to a plain list.
const (
	MaxPaddedSeats   = 4
	TableLayoutSlots = 7
)

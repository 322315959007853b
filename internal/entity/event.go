package entity

type EventKind string

const (
	EventMove   EventKind = "move"
	EventSwitch EventKind = "switch"
	EventFade   EventKind = "fade"
	EventRemove EventKind = "remove"
	EventTick   EventKind = "tick"
	EventWin    EventKind = "win"
	EventDraw   EventKind = "draw"
	EventTimeUp EventKind = "timeup"
	EventReset  EventKind = "reset"
	EventMode   EventKind = "mode"
)

// NoCell marks events that are not tied to a single cell.
const NoCell = -1

// Event is a session notification. Game is the snapshot taken right after the change.
type Event struct {
	Kind EventKind `json:"kind"`
	Cell int       `json:"cell"`
	Game *Game     `json:"game"`
}

// IsRoundEnd reports whether the event closes a round.
func (that Event) IsRoundEnd() bool {
	return that.Kind == EventWin || that.Kind == EventDraw || that.Kind == EventTimeUp
}

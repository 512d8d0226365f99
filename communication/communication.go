package communication

import "connect4/gamemaster"

const (
	WSPath     = "/ws"
	StatePath  = "/state"
	HealthPath = "/healthz"
)

const (
	EventUpdate = "update"
	EventSync   = "sync" // Latest update replayed to a new spectator
)

// Message is the JSON envelope sent to spectators.
type Message struct {
	Event  string             `json:"event"`
	Update *gamemaster.Update `json:"update,omitempty"`
}

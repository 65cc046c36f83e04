package domain

// Player is one connected participant of a room. ID is the opaque
// connection identifier assigned at upgrade time, not a room-scoped index.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsHost    bool   `json:"isHost"`
	IsDrawing bool   `json:"isDrawing"`
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
	}
}

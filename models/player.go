package models

// Player is one tournament entrant. Seed is the 0-based position in the
// player list submitted at creation time; it never changes afterwards and
// is what the schedule pairs players by. Points starts at 0.
type Player struct {
	ID           int     `json:"id"`
	TournamentID int     `json:"tournament_id,omitempty"`
	Seed         int     `json:"seed"`
	Name         string  `json:"name"`
	Points       float64 `json:"points"`
}

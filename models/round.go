package models

// Round is one step of the generated schedule. Number is the 1-based
// sequence number of the round within its tournament.
type Round struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id,omitempty"`
	Number       int    `json:"number"`
	Pairs        []Pair `json:"pairs"`
}

// Pair is a single matchup within a round. Position is the 0-based index
// of the pair in its round, in schedule generation order. Player2 == nil
// encodes a bye: Player1 sits out this round.
type Pair struct {
	ID       int     `json:"id"`
	RoundID  int     `json:"round_id,omitempty"`
	Position int     `json:"position"`
	Player1  Player  `json:"player1"`
	Player2  *Player `json:"player2,omitempty"`
}

// Bye reports whether this pair is a sit-out rather than a real matchup.
func (p Pair) Bye() bool {
	return p.Player2 == nil
}

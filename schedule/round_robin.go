package schedule

import (
	"context"
	"fmt"

	"github.com/openpair/roundrobin/models"
)

// byeSeat marks the synthetic seat appended when the player count is odd.
// It never appears in the output: the player drawn against it receives a
// bye pair (Player2 == nil) instead.
const byeSeat = -1

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() ScheduleGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateSchedule builds a single round-robin schedule with the circle
// method. Seat 0 is held fixed for the whole tournament; the remaining
// seats rotate one position after every round, so every pair of players
// meets exactly once across N-1 rounds (N rounds when N is odd, each
// player then sitting out exactly once).
//
// The output depends only on the order of params.Players: no randomness,
// no clock, and the input slice is never modified.
func (g *RoundRobinGenerator) GenerateSchedule(_ context.Context, params GenerateScheduleParams) ([]models.Round, error) {
	players := params.Players
	if len(players) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough players (found %d, min 2 required)", len(players))
	}

	bySeed := make(map[int]models.Player, len(players))
	circle := make([]int, 0, len(players)+1)
	for _, p := range players {
		bySeed[p.Seed] = p
		circle = append(circle, p.Seed)
	}
	if len(circle)%2 != 0 {
		circle = append(circle, byeSeat)
	}

	n := len(circle)
	rounds := make([]models.Round, 0, n-1)

	for r := 0; r < n-1; r++ {
		round := models.Round{Number: r + 1}

		// The fixed seat plays whoever sits opposite; the remaining
		// seats pair up symmetrically from the outside in.
		round.Pairs = appendPair(round.Pairs, bySeed, circle[0], circle[n/2])
		for i := 1; i <= n/2-1; i++ {
			round.Pairs = appendPair(round.Pairs, bySeed, circle[i], circle[n-i])
		}
		rounds = append(rounds, round)

		// Rotate: seat 1 takes the occupant of the last seat, everyone
		// else shifts up by one, seat 0 stays put.
		last := circle[n-1]
		copy(circle[2:], circle[1:n-1])
		circle[1] = last
	}

	return rounds, nil
}

// appendPair adds the matchup of the two seats to the round, folding a
// draw against the bye seat into a bye pair for the real player. Player1
// and Player2 keep the circle order of the seats.
func appendPair(pairs []models.Pair, bySeed map[int]models.Player, seatA, seatB int) []models.Pair {
	pair := models.Pair{Position: len(pairs)}

	switch {
	case seatA == byeSeat:
		pair.Player1 = bySeed[seatB]
	case seatB == byeSeat:
		pair.Player1 = bySeed[seatA]
	default:
		p2 := bySeed[seatB]
		pair.Player1 = bySeed[seatA]
		pair.Player2 = &p2
	}

	return append(pairs, pair)
}

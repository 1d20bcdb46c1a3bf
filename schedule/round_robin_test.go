package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/openpair/roundrobin/models"
)

func seededPlayers(names ...string) []models.Player {
	players := make([]models.Player, len(names))
	for i, name := range names {
		players[i] = models.Player{Seed: i, Name: name}
	}
	return players
}

type seedPair struct {
	a, b int
}

// normalizeSeeds returns the unordered pair key for two seeds.
func normalizeSeeds(a, b int) seedPair {
	if a > b {
		a, b = b, a
	}
	return seedPair{a, b}
}

func TestGenerateSchedule_Invariants(t *testing.T) {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}

	tests := []struct {
		playerCount    int
		expectedRounds int
	}{
		{playerCount: 4, expectedRounds: 3},
		{playerCount: 5, expectedRounds: 5},
		{playerCount: 6, expectedRounds: 5},
		{playerCount: 7, expectedRounds: 7},
		{playerCount: 8, expectedRounds: 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("players=%d", tt.playerCount), func(t *testing.T) {
			players := seededPlayers(names[:tt.playerCount]...)
			rounds, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
			if err != nil {
				t.Fatalf("GenerateSchedule returned error: %v", err)
			}

			if len(rounds) != tt.expectedRounds {
				t.Fatalf("expected %d rounds, got %d", tt.expectedRounds, len(rounds))
			}

			meetings := make(map[seedPair]int)
			byesPerPlayer := make(map[int]int)

			for i, round := range rounds {
				if round.Number != i+1 {
					t.Errorf("round at index %d has number %d, expected %d", i, round.Number, i+1)
				}

				seenInRound := make(map[int]bool)
				byesInRound := 0
				for j, pair := range round.Pairs {
					if pair.Position != j {
						t.Errorf("round %d: pair at index %d has position %d", round.Number, j, pair.Position)
					}
					if seenInRound[pair.Player1.Seed] {
						t.Errorf("round %d: seed %d appears twice", round.Number, pair.Player1.Seed)
					}
					seenInRound[pair.Player1.Seed] = true

					if pair.Bye() {
						byesInRound++
						byesPerPlayer[pair.Player1.Seed]++
						continue
					}
					if seenInRound[pair.Player2.Seed] {
						t.Errorf("round %d: seed %d appears twice", round.Number, pair.Player2.Seed)
					}
					seenInRound[pair.Player2.Seed] = true
					meetings[normalizeSeeds(pair.Player1.Seed, pair.Player2.Seed)]++
				}

				if tt.playerCount%2 == 0 && byesInRound != 0 {
					t.Errorf("round %d: unexpected bye with even player count", round.Number)
				}
				if tt.playerCount%2 != 0 && byesInRound != 1 {
					t.Errorf("round %d: expected exactly 1 bye, got %d", round.Number, byesInRound)
				}
			}

			wantMeetings := tt.playerCount * (tt.playerCount - 1) / 2
			if len(meetings) != wantMeetings {
				t.Errorf("expected %d distinct pairings, got %d", wantMeetings, len(meetings))
			}
			for pairKey, count := range meetings {
				if count != 1 {
					t.Errorf("seeds %d and %d meet %d times, expected exactly once", pairKey.a, pairKey.b, count)
				}
			}

			if tt.playerCount%2 != 0 {
				for seed := 0; seed < tt.playerCount; seed++ {
					if byesPerPlayer[seed] != 1 {
						t.Errorf("seed %d has %d byes, expected exactly 1", seed, byesPerPlayer[seed])
					}
				}
			} else if len(byesPerPlayer) != 0 {
				t.Errorf("even player count produced byes: %v", byesPerPlayer)
			}
		})
	}
}

func TestGenerateSchedule_FourPlayers(t *testing.T) {
	players := seededPlayers("A", "B", "C", "D")
	rounds, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
	if err != nil {
		t.Fatalf("GenerateSchedule returned error: %v", err)
	}

	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	for _, round := range rounds {
		if len(round.Pairs) != 2 {
			t.Fatalf("round %d: expected 2 pairs, got %d", round.Number, len(round.Pairs))
		}
		for _, pair := range round.Pairs {
			if pair.Bye() {
				t.Errorf("round %d: unexpected bye for seed %d", round.Number, pair.Player1.Seed)
			}
		}
	}

	// Circle method with seat 0 fixed: exact pair sequence is part of the
	// contract because reproducibility matters for re-created tournaments.
	expected := [][]seedPair{
		{{0, 2}, {1, 3}},
		{{0, 1}, {3, 2}},
		{{0, 3}, {2, 1}},
	}
	for i, round := range rounds {
		for j, pair := range round.Pairs {
			got := seedPair{pair.Player1.Seed, pair.Player2.Seed}
			if got != expected[i][j] {
				t.Errorf("round %d pair %d: expected seeds %v, got %v", round.Number, j, expected[i][j], got)
			}
		}
	}
}

func TestGenerateSchedule_FivePlayers(t *testing.T) {
	players := seededPlayers("A", "B", "C", "D", "E")
	rounds, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
	if err != nil {
		t.Fatalf("GenerateSchedule returned error: %v", err)
	}

	if len(rounds) != 5 {
		t.Fatalf("expected 5 rounds, got %d", len(rounds))
	}

	byeRounds := make(map[int]int) // seed -> round number of its bye
	for _, round := range rounds {
		if len(round.Pairs) != 3 {
			t.Fatalf("round %d: expected 3 pairs (2 real + 1 bye), got %d", round.Number, len(round.Pairs))
		}
		matchups, byes := 0, 0
		for _, pair := range round.Pairs {
			if pair.Bye() {
				byes++
				if prev, dup := byeRounds[pair.Player1.Seed]; dup {
					t.Errorf("seed %d has byes in rounds %d and %d", pair.Player1.Seed, prev, round.Number)
				}
				byeRounds[pair.Player1.Seed] = round.Number
			} else {
				matchups++
			}
		}
		if matchups != 2 || byes != 1 {
			t.Errorf("round %d: expected 2 real pairings and 1 bye, got %d and %d", round.Number, matchups, byes)
		}
	}

	if len(byeRounds) != 5 {
		t.Errorf("expected every player to sit out exactly once, byes: %v", byeRounds)
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	players := seededPlayers("Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace")
	gen := NewRoundRobinGenerator()

	first, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
	if err != nil {
		t.Fatalf("first invocation failed: %v", err)
	}
	second, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
	if err != nil {
		t.Fatalf("second invocation failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two invocations with identical input produced different schedules")
	}
}

func TestGenerateSchedule_InputNotMutated(t *testing.T) {
	players := seededPlayers("Alice", "Bob", "Carol", "Dave", "Erin")
	original := make([]models.Player, len(players))
	copy(original, players)

	if _, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players}); err != nil {
		t.Fatalf("GenerateSchedule returned error: %v", err)
	}

	if !reflect.DeepEqual(players, original) {
		t.Errorf("input slice was mutated: %v != %v", players, original)
	}
}

// TestGenerateSchedule_SerializationRoundTrip re-derives the schedule from
// a player list that went through JSON and back, and checks the unordered
// pairing set is unchanged.
func TestGenerateSchedule_SerializationRoundTrip(t *testing.T) {
	players := seededPlayers("Alice", "Bob", "Carol", "Dave", "Erin", "Frank")
	gen := NewRoundRobinGenerator()

	collect := func(rounds []models.Round) map[seedPair]bool {
		set := make(map[seedPair]bool)
		for _, round := range rounds {
			for _, pair := range round.Pairs {
				if !pair.Bye() {
					set[normalizeSeeds(pair.Player1.Seed, pair.Player2.Seed)] = true
				}
			}
		}
		return set
	}

	first, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
	if err != nil {
		t.Fatalf("GenerateSchedule returned error: %v", err)
	}

	raw, err := json.Marshal(players)
	if err != nil {
		t.Fatalf("marshal players: %v", err)
	}
	var restored []models.Player
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal players: %v", err)
	}

	second, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{Players: restored})
	if err != nil {
		t.Fatalf("GenerateSchedule after round trip returned error: %v", err)
	}

	if !reflect.DeepEqual(collect(first), collect(second)) {
		t.Error("pairing set changed after serialization round trip")
	}
}

func TestGenerateSchedule_NotEnoughPlayers(t *testing.T) {
	for _, count := range []int{0, 1} {
		players := seededPlayers([]string{"Alice"}[:count]...)
		_, err := NewRoundRobinGenerator().GenerateSchedule(context.Background(), GenerateScheduleParams{Players: players})
		if err == nil {
			t.Errorf("expected error for %d players, got nil", count)
		}
	}
}

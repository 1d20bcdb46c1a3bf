package models

// ScoringSystem задаёт схему начисления очков за партию,
// выбираемую при создании турнира.
type ScoringSystem string

const (
	// ScoringClassic: победа 1, ничья 0.5, поражение 0.
	ScoringClassic ScoringSystem = "classic"
	// ScoringThreeOneZero: победа 3, ничья 1, поражение 0.
	ScoringThreeOneZero ScoringSystem = "three_one_zero"
)

func (s ScoringSystem) Valid() bool {
	switch s {
	case ScoringClassic, ScoringThreeOneZero:
		return true
	}
	return false
}

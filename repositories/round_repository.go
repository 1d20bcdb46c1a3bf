package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openpair/roundrobin/models"
)

var ErrRoundNotFound = errors.New("round not found")

type RoundRepository interface {
	Create(ctx context.Context, exec SQLExecutor, round *models.Round) error
	// ListByTournament возвращает все туры турнира вместе с парами,
	// отсортированные по номеру тура и позиции пары.
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Round, error)
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRoundRepository) Create(ctx context.Context, exec SQLExecutor, round *models.Round) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO rounds (tournament_id, number)
		VALUES ($1, $2)
		RETURNING id`

	return executor.QueryRowContext(ctx, query, round.TournamentID, round.Number).Scan(&round.ID)
}

func (r *postgresRoundRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Round, error) {
	query := `
		SELECT
			r.id, r.tournament_id, r.number,
			p.id, p.round_id, p.position,
			p1.id, p1.tournament_id, p1.seed, p1.name, p1.points,
			p2.id, p2.tournament_id, p2.seed, p2.name, p2.points
		FROM rounds r
		JOIN pairs p ON p.round_id = r.id
		JOIN players p1 ON p1.id = p.player1_id
		LEFT JOIN players p2 ON p2.id = p.player2_id
		WHERE r.tournament_id = $1
		ORDER BY r.number ASC, p.position ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	for rows.Next() {
		var (
			round models.Round
			pair  models.Pair
			p1    models.Player

			p2ID           sql.NullInt64
			p2TournamentID sql.NullInt64
			p2Seed         sql.NullInt64
			p2Name         sql.NullString
			p2Points       sql.NullFloat64
		)

		scanErr := rows.Scan(
			&round.ID, &round.TournamentID, &round.Number,
			&pair.ID, &pair.RoundID, &pair.Position,
			&p1.ID, &p1.TournamentID, &p1.Seed, &p1.Name, &p1.Points,
			&p2ID, &p2TournamentID, &p2Seed, &p2Name, &p2Points,
		)
		if scanErr != nil {
			return nil, scanErr
		}

		pair.Player1 = p1
		if p2ID.Valid {
			pair.Player2 = &models.Player{
				ID:           int(p2ID.Int64),
				TournamentID: int(p2TournamentID.Int64),
				Seed:         int(p2Seed.Int64),
				Name:         p2Name.String,
				Points:       p2Points.Float64,
			}
		}

		// Строки приходят отсортированными по номеру тура, поэтому пары
		// просто добавляются к последнему собранному туру.
		if n := len(rounds); n > 0 && rounds[n-1].ID == round.ID {
			rounds[n-1].Pairs = append(rounds[n-1].Pairs, pair)
		} else {
			round.Pairs = []models.Pair{pair}
			rounds = append(rounds, round)
		}
	}
	return rounds, rows.Err()
}

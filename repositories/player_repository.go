package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openpair/roundrobin/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, players []*models.Player) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateBatch вставляет игроков турнира и проставляет им ID из базы.
// Очки всегда инициализируются нулём на стороне БД.
func (r *postgresPlayerRepository) CreateBatch(ctx context.Context, exec SQLExecutor, players []*models.Player) error {
	executor := r.getExecutor(exec)
	if len(players) == 0 {
		return nil
	}

	query := `
		INSERT INTO players (tournament_id, seed, name)
		VALUES ($1, $2, $3)
		RETURNING id, points`

	for _, p := range players {
		err := executor.QueryRowContext(ctx, query, p.TournamentID, p.Seed, p.Name).Scan(&p.ID, &p.Points)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for seed %d (%s): %w", p.Seed, p.Name, err)
		}
	}
	return nil
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error) {
	query := `
		SELECT id, tournament_id, seed, name, points
		FROM players
		WHERE tournament_id = $1
		ORDER BY seed ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(&p.ID, &p.TournamentID, &p.Seed, &p.Name, &p.Points); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

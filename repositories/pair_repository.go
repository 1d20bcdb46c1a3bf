package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openpair/roundrobin/models"
)

type PairRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, pairs []*models.Pair) error
}

type postgresPairRepository struct {
	db *sql.DB
}

func NewPostgresPairRepository(db *sql.DB) PairRepository {
	return &postgresPairRepository{db: db}
}

func (r *postgresPairRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateBatch вставляет пары тура. player2_id равен NULL для bye-пары.
func (r *postgresPairRepository) CreateBatch(ctx context.Context, exec SQLExecutor, pairs []*models.Pair) error {
	executor := r.getExecutor(exec)
	if len(pairs) == 0 {
		return nil
	}

	query := `
		INSERT INTO pairs (round_id, position, player1_id, player2_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for _, pair := range pairs {
		var player2ID *int
		if pair.Player2 != nil {
			player2ID = &pair.Player2.ID
		}
		err := executor.QueryRowContext(ctx, query,
			pair.RoundID, pair.Position, pair.Player1.ID, player2ID,
		).Scan(&pair.ID)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for round %d position %d: %w", pair.RoundID, pair.Position, err)
		}
	}
	return nil
}

package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/openpair/roundrobin/models"
	"github.com/openpair/roundrobin/repositories"
	"github.com/openpair/roundrobin/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- фейковые репозитории для юнит-тестов сервиса ---

type fakeTournamentRepo struct {
	repositories.TournamentRepository

	slugExists    bool
	slugExistsErr error
	getBySlugFn   func(slug string) (*models.Tournament, error)
	listResult    []models.Tournament
	deletedID     int
}

func (f *fakeTournamentRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.slugExists, f.slugExistsErr
}

func (f *fakeTournamentRepo) GetBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	if f.getBySlugFn != nil {
		return f.getBySlugFn(slug)
	}
	return nil, repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return f.listResult, nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	f.deletedID = id
	return nil
}

type fakeUserRepo struct {
	repositories.UserRepository

	getByIDFn func(id int) (*models.User, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return &models.User{ID: id, Nickname: "organizer"}, nil
}

type fakePlayerRepo struct {
	repositories.PlayerRepository

	players []models.Player
}

func (f *fakePlayerRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error) {
	return f.players, nil
}

type fakeRoundRepo struct {
	repositories.RoundRepository

	rounds []models.Round
}

func (f *fakeRoundRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Round, error) {
	return f.rounds, nil
}

func newTestService(tournamentRepo *fakeTournamentRepo, playerRepo *fakePlayerRepo, roundRepo *fakeRoundRepo, userRepo *fakeUserRepo) TournamentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTournamentService(
		nil, // *sql.DB не нужен: тесты не доходят до транзакции
		tournamentRepo,
		playerRepo,
		roundRepo,
		nil,
		userRepo,
		schedule.NewRoundRobinGenerator(),
		nil,
		logger,
	)
}

func validInput() CreateTournamentInput {
	return CreateTournamentInput{
		Title:         "Spring Open",
		Players:       "Alice;Bob;Carol;Dave",
		ScoringSystem: models.ScoringClassic,
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateTournamentInput)
		wantErr error
	}{
		{
			name:    "title too short",
			mutate:  func(in *CreateTournamentInput) { in.Title = "  ab  " },
			wantErr: ErrTournamentTitleTooShort,
		},
		{
			name:    "empty player name",
			mutate:  func(in *CreateTournamentInput) { in.Players = "Alice;;Carol;Dave" },
			wantErr: ErrPlayerNameEmpty,
		},
		{
			name:    "whitespace-only player name",
			mutate:  func(in *CreateTournamentInput) { in.Players = "Alice;   ;Carol;Dave" },
			wantErr: ErrPlayerNameEmpty,
		},
		{
			name:    "too few players",
			mutate:  func(in *CreateTournamentInput) { in.Players = "Alice;Bob;Carol" },
			wantErr: ErrPlayerCountOutOfRange,
		},
		{
			name: "too many players",
			mutate: func(in *CreateTournamentInput) {
				in.Players = "P1;P2;P3;P4;P5;P6;P7;P8;P9"
			},
			wantErr: ErrPlayerCountOutOfRange,
		},
		{
			name:    "unknown scoring system",
			mutate:  func(in *CreateTournamentInput) { in.ScoringSystem = "golf" },
			wantErr: ErrScoringSystemInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeTournamentRepo{}, &fakePlayerRepo{}, &fakeRoundRepo{}, &fakeUserRepo{})

			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), 1, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSlugConflict(t *testing.T) {
	svc := newTestService(&fakeTournamentRepo{slugExists: true}, &fakePlayerRepo{}, &fakeRoundRepo{}, &fakeUserRepo{})

	_, err := svc.Create(context.Background(), 1, validInput())
	assert.ErrorIs(t, err, ErrTournamentTitleConflict)
}

func TestCreateOrganizerNotFound(t *testing.T) {
	userRepo := &fakeUserRepo{
		getByIDFn: func(id int) (*models.User, error) {
			return nil, repositories.ErrUserNotFound
		},
	}
	svc := newTestService(&fakeTournamentRepo{}, &fakePlayerRepo{}, &fakeRoundRepo{}, userRepo)

	_, err := svc.Create(context.Background(), 42, validInput())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetBySlugAssemblesTournament(t *testing.T) {
	players := []models.Player{
		{ID: 10, Seed: 0, Name: "Alice"},
		{ID: 11, Seed: 1, Name: "Bob"},
		{ID: 12, Seed: 2, Name: "Carol"},
		{ID: 13, Seed: 3, Name: "Dave"},
	}
	rounds := []models.Round{
		{ID: 100, Number: 1, Pairs: []models.Pair{
			{ID: 1000, Position: 0, Player1: players[0], Player2: &players[2]},
			{ID: 1001, Position: 1, Player1: players[1], Player2: &players[3]},
		}},
	}
	tournamentRepo := &fakeTournamentRepo{
		getBySlugFn: func(slug string) (*models.Tournament, error) {
			require.Equal(t, "spring-open", slug)
			return &models.Tournament{ID: 7, Title: "Spring Open", Slug: slug, OrganizerID: 1}, nil
		},
	}
	svc := newTestService(tournamentRepo, &fakePlayerRepo{players: players}, &fakeRoundRepo{rounds: rounds}, &fakeUserRepo{})

	got, err := svc.GetBySlug(context.Background(), "spring-open")
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	assert.Len(t, got.Players, 4)
	assert.Len(t, got.Rounds, 1)
	assert.Equal(t, "Alice", got.Rounds[0].Pairs[0].Player1.Name)
}

func TestGetBySlugNotFound(t *testing.T) {
	svc := newTestService(&fakeTournamentRepo{}, &fakePlayerRepo{}, &fakeRoundRepo{}, &fakeUserRepo{})

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestDeleteForbiddenForNonOrganizer(t *testing.T) {
	tournamentRepo := &fakeTournamentRepo{
		getBySlugFn: func(slug string) (*models.Tournament, error) {
			return &models.Tournament{ID: 7, Slug: slug, OrganizerID: 1}, nil
		},
	}
	svc := newTestService(tournamentRepo, &fakePlayerRepo{}, &fakeRoundRepo{}, &fakeUserRepo{})

	err := svc.Delete(context.Background(), "spring-open", 2)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	assert.Zero(t, tournamentRepo.deletedID, "delete must not reach the repository")
}

func TestDeleteByOrganizer(t *testing.T) {
	tournamentRepo := &fakeTournamentRepo{
		getBySlugFn: func(slug string) (*models.Tournament, error) {
			return &models.Tournament{ID: 7, Slug: slug, OrganizerID: 1}, nil
		},
	}
	svc := newTestService(tournamentRepo, &fakePlayerRepo{}, &fakeRoundRepo{}, &fakeUserRepo{})

	err := svc.Delete(context.Background(), "spring-open", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, tournamentRepo.deletedID)
}

func TestParsePlayerListPreservesOrder(t *testing.T) {
	players, err := parsePlayerList(" Alice ; Bob;Carol ;Dave;Eve")
	require.NoError(t, err)
	require.Len(t, players, 5)

	for i, want := range []string{"Alice", "Bob", "Carol", "Dave", "Eve"} {
		assert.Equal(t, want, players[i].Name)
		assert.Equal(t, i, players[i].Seed)
		assert.Zero(t, players[i].Points)
	}
}

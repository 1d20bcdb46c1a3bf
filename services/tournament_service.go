package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/openpair/roundrobin/models"
	"github.com/openpair/roundrobin/repositories"
	"github.com/openpair/roundrobin/schedule"
	"github.com/openpair/roundrobin/storage"
	"github.com/openpair/roundrobin/utils"
	"golang.org/x/sync/errgroup"
)

const (
	minTitleLength = 3
	minPlayerCount = 4
	maxPlayerCount = 8

	// Разделитель списка игроков в форме создания турнира.
	playerListSeparator = ";"
)

type CreateTournamentInput struct {
	Title string `json:"title"`
	// Players — список имён, разделённый точкой с запятой.
	Players       string               `json:"players"`
	ScoringSystem models.ScoringSystem `json:"scoring_system"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Delete(ctx context.Context, slug string, currentUserID int) error
	UploadLogo(ctx context.Context, slug string, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	roundRepo      repositories.RoundRepository
	pairRepo       repositories.PairRepository
	userRepo       repositories.UserRepository
	generator      schedule.ScheduleGenerator
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	pairRepo repositories.PairRepository,
	userRepo repositories.UserRepository,
	generator schedule.ScheduleGenerator,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		roundRepo:      roundRepo,
		pairRepo:       pairRepo,
		userRepo:       userRepo,
		generator:      generator,
		uploader:       uploader,
		logger:         logger,
	}
}

// parsePlayerList разбирает строку вида "Алиса;Боб;Кэрол" в список игроков
// с нулевыми очками. Seed — позиция в исходном порядке.
func parsePlayerList(raw string) ([]models.Player, error) {
	entries := strings.Split(raw, playerListSeparator)

	players := make([]models.Player, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry)
		if name == "" {
			return nil, ErrPlayerNameEmpty
		}
		players = append(players, models.Player{
			Seed: len(players),
			Name: name,
		})
	}

	if len(players) < minPlayerCount || len(players) > maxPlayerCount {
		return nil, ErrPlayerCountOutOfRange
	}
	return players, nil
}

// Create валидирует вход, генерирует расписание и записывает турнир
// целиком в одной транзакции: либо виден весь турнир (метаданные, игроки,
// все туры и пары), либо ничего.
func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (result *models.Tournament, err error) {
	// Синтаксическая валидация — без обращений к БД.
	title := strings.TrimSpace(input.Title)
	if len([]rune(title)) < minTitleLength {
		return nil, ErrTournamentTitleTooShort
	}
	players, err := parsePlayerList(input.Players)
	if err != nil {
		return nil, err
	}
	if !input.ScoringSystem.Valid() {
		return nil, ErrScoringSystemInvalid
	}

	// Слаг — чистая функция от названия; проверка уникальности — отдельный
	// запрос в репозиторий, а не побочный эффект валидации.
	slug := utils.SlugFromTitle(title)
	exists, err := s.tournamentRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
	}
	if exists {
		return nil, ErrTournamentTitleConflict
	}

	if _, err := s.userRepo.GetByID(ctx, organizerID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load organizer %d: %w", organizerID, err)
	}

	// Расписание строится полностью до начала записи.
	rounds, err := s.generator.GenerateSchedule(ctx, schedule.GenerateScheduleParams{Players: players})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s schedule: %w", s.generator.GetName(), err)
	}

	tournament := &models.Tournament{
		Title:         title,
		Slug:          slug,
		ScoringSystem: input.ScoringSystem,
		OrganizerID:   organizerID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Коммит или откат решается по итоговому err. Ошибка коммита тоже
	// должна дойти до вызывающего кода, поэтому возвращаемые значения
	// именованные.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", err))
			}
			result = nil
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
			result = nil
		}
	}()

	if err = s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentSlugConflict) {
			// Гонка двух одновременных созданий с одинаковым названием:
			// проигравший получает тот же ответ, что и при обычном дубле.
			err = ErrTournamentTitleConflict
		}
		return nil, err
	}

	playerPtrs := make([]*models.Player, len(players))
	for i := range players {
		players[i].TournamentID = tournament.ID
		playerPtrs[i] = &players[i]
	}
	if err = s.playerRepo.CreateBatch(ctx, tx, playerPtrs); err != nil {
		return nil, err
	}

	// После вставки у игроков появились ID из базы; пары расписания
	// ссылаются на игроков по Seed и переподвязываются здесь.
	bySeed := make(map[int]models.Player, len(players))
	for _, p := range players {
		bySeed[p.Seed] = p
	}

	for i := range rounds {
		rounds[i].TournamentID = tournament.ID
		if err = s.roundRepo.Create(ctx, tx, &rounds[i]); err != nil {
			return nil, err
		}

		pairPtrs := make([]*models.Pair, len(rounds[i].Pairs))
		for j := range rounds[i].Pairs {
			pair := &rounds[i].Pairs[j]
			pair.RoundID = rounds[i].ID
			pair.Player1 = bySeed[pair.Player1.Seed]
			if pair.Player2 != nil {
				p2 := bySeed[pair.Player2.Seed]
				pair.Player2 = &p2
			}
			pairPtrs[j] = pair
		}
		if err = s.pairRepo.CreateBatch(ctx, tx, pairPtrs); err != nil {
			return nil, err
		}
	}

	tournament.Players = players
	tournament.Rounds = rounds

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.String("slug", tournament.Slug),
		slog.Int("players", len(players)),
		slog.Int("rounds", len(rounds)),
	)
	return tournament, nil
}

// GetBySlug возвращает турнир вместе с игроками и полным расписанием.
func (s *tournamentService) GetBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		players, err := s.playerRepo.ListByTournament(gCtx, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to list players for tournament %d: %w", tournament.ID, err)
		}
		tournament.Players = players
		return nil
	})

	g.Go(func() error {
		rounds, err := s.roundRepo.ListByTournament(gCtx, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to list rounds for tournament %d: %w", tournament.ID, err)
		}
		tournament.Rounds = rounds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		populateTournamentLogoURL(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) Delete(ctx context.Context, slug string, currentUserID int) error {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.OrganizerID != currentUserID {
		return ErrForbiddenOperation
	}

	if err := s.tournamentRepo.Delete(ctx, tournament.ID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	if tournament.LogoKey != nil && *tournament.LogoKey != "" && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *tournament.LogoKey); delErr != nil {
			s.logger.Warn("failed to delete tournament logo from storage",
				slog.String("key", *tournament.LogoKey), slog.Any("error", delErr))
		}
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, slug string, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, ErrUnsupportedLogoFormat
	}

	oldKey := tournament.LogoKey
	newKey := fmt.Sprintf("tournaments/%d/logo%s", tournament.ID, ext)

	if _, err := s.uploader.Upload(ctx, newKey, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournament.ID, &newKey); err != nil {
		// БД не приняла новый ключ — подчищаем уже загруженный объект.
		if delErr := s.uploader.Delete(ctx, newKey); delErr != nil {
			s.logger.Warn("failed to delete orphaned logo object",
				slog.String("key", newKey), slog.Any("error", delErr))
		}
		return nil, err
	}

	if oldKey != nil && *oldKey != "" && *oldKey != newKey {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous logo object",
				slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	tournament.LogoKey = &newKey
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

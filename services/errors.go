package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrTournamentTitleTooShort = errors.New("tournament title must be at least 3 characters long")
	ErrPlayerNameEmpty         = errors.New("player names must not be empty")
	ErrPlayerCountOutOfRange   = errors.New("tournament requires between 4 and 8 players")
	ErrScoringSystemInvalid    = errors.New("unknown scoring system")
	ErrUnsupportedLogoFormat   = errors.New("unsupported logo content type")

	// Ошибки конфликтов
	ErrUserEmailConflict       = errors.New("email address is already in use")
	ErrUserNicknameConflict    = errors.New("nickname is already in use")
	ErrTournamentTitleConflict = errors.New("tournament title already exists")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
)

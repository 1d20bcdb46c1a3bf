package models

import "time"

// Tournament представляет круговой турнир. Slug — это URL-безопасный
// идентификатор, детерминированно выводимый из названия.
type Tournament struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	ScoringSystem ScoringSystem `json:"scoring_system"`
	OrganizerID   int           `json:"organizer_id"`
	CreatedAt     time.Time     `json:"created_at"`
	LogoKey       *string       `json:"-"`
	LogoURL       *string       `json:"logo_url,omitempty"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Organizer *User    `json:"organizer,omitempty"`
	Players   []Player `json:"players,omitempty"`
	Rounds    []Round  `json:"rounds,omitempty"`
}

package schedule

import (
	"context"

	"github.com/openpair/roundrobin/models"
)

type GenerateScheduleParams struct {
	Players []models.Player
}

type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]models.Round, error)

	GetName() string
}

package http

import (
	"net/http"
	"time"

	barberHttp "github.com/martosdev/barbershop-backend/internal/barber/http"
	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
	"github.com/martosdev/barbershop-backend/internal/schedule"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

var errBadTimeLabel = apperror.New(http.StatusBadRequest, `times must be formatted as "hh:mm AM" or "hh:mm PM"`)

type ScheduleResponse struct {
	ID        string               `json:"id"`
	Barber    barberHttp.BarberTag `json:"barber"`
	WorkDate  string               `json:"work_date"`
	EntryTime string               `json:"entry_time"`
	ExitTime  string               `json:"exit_time"`
	IsActive  bool                 `json:"is_active"`
	CreatedAt time.Time            `json:"created_at"`
}

func NewScheduleResponse(s *schedule.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		Barber:    barberHttp.BarberTag{ID: s.BarberID, Name: s.BarberName},
		WorkDate:  s.WorkDate,
		EntryTime: s.EntryMinute.Format12Hour(),
		// The midnight sentinel still displays as 12:00 AM.
		ExitTime:  s.ExitMinute.Format12Hour(),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

type CreateScheduleRequest struct {
	BarberID  string `json:"barber_id" binding:"required,uuid"`
	WorkDate  string `json:"work_date" binding:"required"`
	EntryTime string `json:"entry_time" binding:"required"`
	ExitTime  string `json:"exit_time" binding:"required"`
}

type UpdateScheduleRequest struct {
	EntryTime *string `json:"entry_time"`
	ExitTime  *string `json:"exit_time"`
	IsActive  *bool   `json:"is_active"`
}

// parseTimeLabel converts a 12-hour label from the request into the
// canonical minute-of-day form, mapping parse failures to a 400.
func parseTimeLabel(label string) (timeslot.TimeOfDay, error) {
	t, err := timeslot.Parse12Hour(label)
	if err != nil {
		return 0, errBadTimeLabel
	}
	return t, nil
}

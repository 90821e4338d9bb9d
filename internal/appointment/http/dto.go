package http

import (
	"net/http"
	"time"

	"github.com/martosdev/barbershop-backend/internal/appointment"
	barberHttp "github.com/martosdev/barbershop-backend/internal/barber/http"
	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
	servicetypeHttp "github.com/martosdev/barbershop-backend/internal/servicetype/http"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

var errBadTimeLabel = apperror.New(http.StatusBadRequest, `times must be formatted as "hh:mm AM" or "hh:mm PM"`)

type AppointmentResponse struct {
	ID            string                          `json:"id"`
	Barber        barberHttp.BarberTag            `json:"barber"`
	Service       servicetypeHttp.ServiceTypeTag  `json:"service"`
	CustomerName  string                          `json:"customer_name"`
	CustomerEmail string                          `json:"customer_email,omitempty"`
	CustomerPhone string                          `json:"customer_phone,omitempty"`
	Comments      string                          `json:"comments,omitempty"`
	WorkDate      string                          `json:"work_date"`
	StartTime     string                          `json:"start_time"`
	EndTime       string                          `json:"end_time"`
	Price         float64                         `json:"price"`
	Status        string                          `json:"status"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `json:"updated_at"`
}

func NewAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	iv := a.Interval()
	return AppointmentResponse{
		ID:     a.ID,
		Barber: barberHttp.BarberTag{ID: a.BarberID, Name: a.BarberName},
		Service: servicetypeHttp.ServiceTypeTag{
			ID:              a.ServiceTypeID,
			Name:            a.ServiceName,
			DurationMinutes: a.DurationMinutes,
		},
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		CustomerPhone: a.CustomerPhone,
		Comments:      a.Comments,
		WorkDate:      a.WorkDate,
		StartTime:     iv.Start.Format12Hour(),
		EndTime:       iv.End.Format12Hour(),
		Price:         a.Price,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// OccupiedRange is a taken stretch of the day, rendered with 12-hour labels.
type OccupiedRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AvailabilityResponse struct {
	Barber    barberHttp.BarberTag `json:"barber"`
	WorkDate  string               `json:"work_date"`
	EntryTime string               `json:"entry_time"`
	ExitTime  string               `json:"exit_time"`
	Slots     []string             `json:"slots"`
	Occupied  []OccupiedRange      `json:"occupied"`
}

func NewAvailabilityResponse(av *appointment.BarberAvailability) AvailabilityResponse {
	slots := make([]string, len(av.Slots))
	for i, s := range av.Slots {
		slots[i] = s.Format12Hour()
	}
	occupied := make([]OccupiedRange, len(av.Occupied))
	for i, iv := range av.Occupied {
		occupied[i] = OccupiedRange{From: iv.Start.Format12Hour(), To: iv.End.Format12Hour()}
	}
	return AvailabilityResponse{
		Barber:    barberHttp.BarberTag{ID: av.BarberID, Name: av.BarberName},
		WorkDate:  av.WorkDate,
		EntryTime: av.Window.Entry.Format12Hour(),
		ExitTime:  av.Window.Exit.Format12Hour(),
		Slots:     slots,
		Occupied:  occupied,
	}
}

type CreateAppointmentRequest struct {
	BarberID      string `json:"barber_id" binding:"required,uuid"`
	ServiceTypeID string `json:"service_type_id" binding:"required,uuid"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone string `json:"customer_phone"`
	Comments      string `json:"comments"`
	WorkDate      string `json:"work_date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	WorkDate  string `json:"work_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

func parseTimeLabel(label string) (timeslot.TimeOfDay, error) {
	t, err := timeslot.Parse12Hour(label)
	if err != nil {
		return 0, errBadTimeLabel
	}
	return t, nil
}

package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/martosdev/barbershop-backend/internal/appointment"
	"github.com/martosdev/barbershop-backend/internal/pkg/request"
	"github.com/martosdev/barbershop-backend/internal/pkg/response"
)

type Handler struct {
	service appointment.Service
}

func NewHandler(service appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := request.ValidateDate(body.WorkDate); err != nil {
		response.Error(c, err)
		return
	}
	start, err := parseTimeLabel(body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), appointment.CreateRequest{
		BarberID:      body.BarberID,
		ServiceTypeID: body.ServiceTypeID,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		Comments:      body.Comments,
		WorkDate:      body.WorkDate,
		StartMinute:   start,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewAppointmentResponse(a))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := appointment.Filter{
		BarberID: c.Query("barber_id"),
		WorkDate: c.Query("work_date"),
		Page:     page,
		PageSize: pageSize,
	}

	if filter.BarberID != "" {
		if _, err := uuid.Parse(filter.BarberID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber_id"})
			return
		}
	}
	if filter.WorkDate != "" {
		if err := request.ValidateDate(filter.WorkDate); err != nil {
			response.Error(c, err)
			return
		}
	}
	if raw := c.Query("status"); raw != "" {
		status, err := appointment.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = status
	}

	appointments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewAppointmentResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// Day returns one barber's full sheet for a date, every status included, so
// staff can see completed and cancelled entries alongside active ones.
func (h *Handler) Day(c *gin.Context) {
	barberID := c.Query("barber_id")
	if _, err := uuid.Parse(barberID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber_id"})
		return
	}
	workDate := c.Query("date")
	if err := request.ValidateDate(workDate); err != nil {
		response.Error(c, err)
		return
	}

	appointments, err := h.service.ListForDay(c.Request.Context(), barberID, workDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewAppointmentResponse(a)
	}
	c.JSON(http.StatusOK, gin.H{"barber_id": barberID, "date": workDate, "appointments": items})
}

func (h *Handler) Reschedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := request.ValidateDate(body.WorkDate); err != nil {
		response.Error(c, err)
		return
	}
	start, err := parseTimeLabel(body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.service.Reschedule(c.Request.Context(), id, appointment.RescheduleRequest{
		WorkDate:    body.WorkDate,
		StartMinute: start,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// transition runs one of the status-change operations against the path ID.
func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id string) (*appointment.Appointment, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	a, err := op(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

func (h *Handler) Availability(c *gin.Context) {
	workDate := c.Query("date")
	if err := request.ValidateDate(workDate); err != nil {
		response.Error(c, err)
		return
	}

	barberID := c.Query("barber_id")
	if barberID != "" {
		if _, err := uuid.Parse(barberID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber_id"})
			return
		}

		av, err := h.service.Availability(c.Request.Context(), barberID, workDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewAvailabilityResponse(av))
		return
	}

	availabilities, err := h.service.DayAvailability(c.Request.Context(), workDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AvailabilityResponse, len(availabilities))
	for i, av := range availabilities {
		items[i] = NewAvailabilityResponse(av)
	}
	c.JSON(http.StatusOK, gin.H{"date": workDate, "barbers": items})
}

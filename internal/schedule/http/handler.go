package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/martosdev/barbershop-backend/internal/pkg/request"
	"github.com/martosdev/barbershop-backend/internal/pkg/response"
	"github.com/martosdev/barbershop-backend/internal/schedule"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := schedule.Filter{
		BarberID:   c.Query("barber_id"),
		WorkDate:   c.Query("work_date"),
		ActiveOnly: c.DefaultQuery("active_only", "false") == "true",
		Page:       page,
		PageSize:   pageSize,
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

	schedules, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		items[i] = NewScheduleResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := request.ValidateDate(body.WorkDate); err != nil {
		response.Error(c, err)
		return
	}

	entry, err := parseTimeLabel(body.EntryTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	exit, err := parseTimeLabel(body.ExitTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), schedule.CreateRequest{
		BarberID:    body.BarberID,
		WorkDate:    body.WorkDate,
		EntryMinute: entry,
		ExitMinute:  exit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewScheduleResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var req schedule.UpdateRequest
	req.IsActive = body.IsActive
	if body.EntryTime != nil {
		entry, err := parseTimeLabel(*body.EntryTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.EntryMinute = &entry
	}
	if body.ExitTime != nil {
		exit, err := parseTimeLabel(*body.ExitTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.ExitMinute = &exit
	}

	s, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/appointments")

	// === Public Routes (customer booking flow) ===
	group.GET("/availability", h.Availability)
	group.POST("", h.Create)

	// === Staff Routes ===
	staff := group.Group("")
	staff.Use(authMiddleware)
	{
		staff.GET("", h.List)
		staff.GET("/day", h.Day)
		staff.GET("/:id", h.Get)
		staff.PATCH("/:id/reschedule", h.Reschedule)
		staff.POST("/:id/confirm", h.Confirm)
		staff.POST("/:id/cancel", h.Cancel)
		staff.POST("/:id/complete", h.Complete)
	}
}

package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/martosdev/barbershop-backend/internal/appointment"
	appointmentHttp "github.com/martosdev/barbershop-backend/internal/appointment/http"
	"github.com/martosdev/barbershop-backend/internal/auth"
	"github.com/martosdev/barbershop-backend/internal/barber"
	barberHttp "github.com/martosdev/barbershop-backend/internal/barber/http"
	"github.com/martosdev/barbershop-backend/internal/schedule"
	scheduleHttp "github.com/martosdev/barbershop-backend/internal/schedule/http"
	"github.com/martosdev/barbershop-backend/internal/servicetype"
	servicetypeHttp "github.com/martosdev/barbershop-backend/internal/servicetype/http"
	"github.com/martosdev/barbershop-backend/internal/user"
)

// Config carries the services and settings the router assembles.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated list of allowed origins

	UserService        user.Service
	BarberService      barber.Service
	ServiceTypeService servicetype.Service
	ScheduleService    schedule.Service
	AppointmentService appointment.Service
	JWTManager         *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:4200", // Angular dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid staff JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated staff user is an admin.
	adminMiddleware := auth.RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	barberHandler := barberHttp.NewHandler(cfg.BarberService)
	serviceTypeHandler := servicetypeHttp.NewHandler(cfg.ServiceTypeService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService)
	appointmentHandler := appointmentHttp.NewHandler(cfg.AppointmentService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/register", authMiddleware, adminMiddleware, authHandler.Register)
		v1.GET("/me", authMiddleware, authHandler.Me)

		barberHttp.RegisterRoutes(v1, barberHandler, authMiddleware, adminMiddleware)
		servicetypeHttp.RegisterRoutes(v1, serviceTypeHandler, authMiddleware, adminMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware, adminMiddleware)
		appointmentHttp.RegisterRoutes(v1, appointmentHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/martosdev/barbershop-backend/internal/api"
	"github.com/martosdev/barbershop-backend/internal/appointment"
	"github.com/martosdev/barbershop-backend/internal/auth"
	"github.com/martosdev/barbershop-backend/internal/barber"
	"github.com/martosdev/barbershop-backend/internal/pkg/storage"
	"github.com/martosdev/barbershop-backend/internal/schedule"
	"github.com/martosdev/barbershop-backend/internal/servicetype"
	"github.com/martosdev/barbershop-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	imageProcessor := storage.NewImageProcessor()

	// User Module (staff accounts)
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Barber Module
	barberRepo := barber.NewPgxRepository(cfg.DBPool)
	barberService := barber.NewService(barberRepo, store, imageProcessor)

	// ServiceType Module
	stRepo := servicetype.NewPgxRepository(cfg.DBPool)
	stService := servicetype.NewService(stRepo)

	// Schedule Module
	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)
	scheduleService := schedule.NewService(scheduleRepo, barberService)

	// Appointment Module
	appointmentRepo := appointment.NewPgxRepository(cfg.DBPool)
	appointmentService := appointment.NewService(appointmentRepo, scheduleService, stService, barberService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		BarberService:      barberService,
		ServiceTypeService: stService,
		ScheduleService:    scheduleService,
		AppointmentService: appointmentService,
		JWTManager:         jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}

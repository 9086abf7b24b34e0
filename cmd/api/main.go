package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusworks/hosteldesk-backend/api/routes"
	"github.com/campusworks/hosteldesk-backend/internal/allotments"
	"github.com/campusworks/hosteldesk-backend/internal/auth"
	"github.com/campusworks/hosteldesk-backend/internal/hostels"
	"github.com/campusworks/hosteldesk-backend/internal/maintenance"
	"github.com/campusworks/hosteldesk-backend/internal/notifications"
	"github.com/campusworks/hosteldesk-backend/internal/rooms"
	"github.com/campusworks/hosteldesk-backend/internal/students"
	"github.com/campusworks/hosteldesk-backend/internal/users"
	"github.com/campusworks/hosteldesk-backend/pkg/auth/session"
	"github.com/campusworks/hosteldesk-backend/pkg/config"
	"github.com/campusworks/hosteldesk-backend/pkg/db"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
	"github.com/campusworks/hosteldesk-backend/pkg/metrics"
	"github.com/campusworks/hosteldesk-backend/pkg/migrate"
	"github.com/campusworks/hosteldesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	allotmentMetrics := metrics.NewAllotmentMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	studentsRepo := students.NewRepository(dbClient.DB())
	hostelsRepo := hostels.NewRepository(dbClient.DB())
	roomsRepo := rooms.NewRepository(dbClient.DB())
	allotmentsRepo := allotments.NewRepository(dbClient.DB())
	maintenanceRepo := maintenance.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		StudentRepo:    studentsRepo,
		HostelRepo:     hostelsRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:           dbClient,
		PasswordConfig:     cfg.Password,
		RegistrationConfig: cfg.Registration,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	studentsService, err := students.NewService(studentsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create students service", err)
		os.Exit(1)
	}

	hostelsService, err := hostels.NewService(hostelsRepo, usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create hostels service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	studentNotifier, err := notifications.NewStudentNotifier(notificationsService, studentsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create student notifier", err)
		os.Exit(1)
	}

	allotmentsService, err := allotments.NewService(allotmentsRepo, dbClient, allotmentMetrics, studentNotifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create allotments service", err)
		os.Exit(1)
	}

	roomsService, err := rooms.NewService(roomsRepo, hostelsRepo, allotmentsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create rooms service", err)
		os.Exit(1)
	}

	maintenanceService, err := maintenance.NewService(maintenanceRepo, roomsRepo, studentNotifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create maintenance service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:              cfg,
			Logger:              logg,
			DB:                  dbClient,
			Redis:               redisClient,
			SessionManager:      sessionManager,
			Gatherer:            registry,
			AuthService:         authService,
			RegisterService:     registerService,
			StudentsService:     studentsService,
			HostelsService:      hostelsService,
			RoomsService:        roomsService,
			AllotmentsService:   allotmentsService,
			MaintenanceService:  maintenanceService,
			NotificationService: notificationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

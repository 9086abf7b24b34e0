package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusworks/hosteldesk-backend/api/controllers"
	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/internal/allotments"
	"github.com/campusworks/hosteldesk-backend/internal/auth"
	"github.com/campusworks/hosteldesk-backend/internal/hostels"
	"github.com/campusworks/hosteldesk-backend/internal/maintenance"
	"github.com/campusworks/hosteldesk-backend/internal/notifications"
	"github.com/campusworks/hosteldesk-backend/internal/rooms"
	"github.com/campusworks/hosteldesk-backend/internal/students"
	"github.com/campusworks/hosteldesk-backend/pkg/auth/session"
	"github.com/campusworks/hosteldesk-backend/pkg/config"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
	"github.com/campusworks/hosteldesk-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionManager session.AccessSessionChecker
	Gatherer       prometheus.Gatherer

	AuthService         auth.Service
	RegisterService     auth.RegisterService
	StudentsService     students.Service
	HostelsService      hostels.Service
	RoomsService        rooms.Service
	AllotmentsService   allotments.Service
	MaintenanceService  maintenance.Service
	NotificationService notifications.Service
}

// NewRouter assembles the chi router with the full middleware stack.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegisterStudent(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register-staff", controllers.AuthRegisterStaff(p.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
	})

	var idempotencyStore redis.IdempotencyStore
	if p.Redis != nil {
		idempotencyStore = p.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/auth/change-password", controllers.AuthChangePassword(p.AuthService, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(p.NotificationService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(p.NotificationService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(p.NotificationService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleWarden, enums.UserRoleSuperAdmin)).
				Post("/", controllers.SendNotification(p.NotificationService, logg))
		})

		r.Route("/student", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleStudent))
			r.Use(middleware.StudentContext(logg))

			r.Get("/profile", controllers.StudentProfile(p.StudentsService, logg))
			r.Route("/allotments", func(r chi.Router) {
				r.Get("/active", controllers.StudentActiveAllotment(p.AllotmentsService, logg))
				r.Get("/history", controllers.StudentAllotmentHistory(p.AllotmentsService, logg))
				r.Post("/apply", controllers.AllotmentApply(p.AllotmentsService, logg))
			})
			r.Route("/maintenance", func(r chi.Router) {
				r.Get("/", controllers.StudentMaintenanceList(p.MaintenanceService, logg))
				r.Post("/", controllers.MaintenanceCreate(p.MaintenanceService, logg))
			})
		})

		r.Route("/warden", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleWarden))
			r.Use(middleware.HostelContext(logg))

			r.Get("/hostel", controllers.WardenHostel(p.HostelsService, logg))
			r.Route("/students", func(r chi.Router) {
				r.Get("/", controllers.StudentList(p.StudentsService, logg))
				r.Get("/search", controllers.StudentSearch(p.StudentsService, logg))
				r.Get("/eligible", controllers.StudentEligibleList(p.StudentsService, logg))
				r.Get("/with-rooms", controllers.StudentsWithRooms(p.StudentsService, logg))
			})
			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", controllers.RoomList(p.RoomsService, logg))
				r.Post("/", controllers.RoomCreate(p.RoomsService, logg))
				r.Get("/search", controllers.RoomSearch(p.RoomsService, logg))
				r.Get("/available", controllers.RoomAvailable(p.RoomsService, logg))
				r.Get("/{roomId}/occupants", controllers.RoomOccupants(p.RoomsService, logg))
				r.Patch("/{roomId}", controllers.RoomUpdate(p.RoomsService, logg))
				r.Post("/{roomId}/maintenance", controllers.RoomSetMaintenance(p.RoomsService, logg))
			})
			r.Route("/allotments", func(r chi.Router) {
				r.Get("/", controllers.WardenActiveAllotments(p.AllotmentsService, logg))
				r.Post("/", controllers.AllotmentAllocate(p.AllotmentsService, logg))
				r.Get("/pending", controllers.AllotmentPending(p.AllotmentsService, logg))
				r.Post("/{allotmentId}/approve", controllers.AllotmentApprove(p.AllotmentsService, logg))
				r.Post("/{allotmentId}/vacate", controllers.AllotmentVacate(p.AllotmentsService, logg))
			})
			r.Route("/maintenance", func(r chi.Router) {
				r.Get("/", controllers.WardenMaintenanceList(p.MaintenanceService, logg))
				r.Get("/overdue", controllers.MaintenanceOverdueList(p.MaintenanceService, logg))
				r.Get("/statistics", controllers.MaintenanceStatistics(p.MaintenanceService, logg))
				r.Patch("/{requestId}/status", controllers.MaintenanceUpdateStatus(p.MaintenanceService, logg))
			})
			r.Get("/reports/occupancy", controllers.OccupancyReport(p.AllotmentsService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleSuperAdmin))

			r.Route("/hostels", func(r chi.Router) {
				r.Get("/", controllers.HostelList(p.HostelsService, logg))
				r.Post("/", controllers.HostelCreate(p.HostelsService, logg))
				r.Get("/{hostelId}", controllers.HostelDetail(p.HostelsService, logg))
				r.Patch("/{hostelId}", controllers.HostelUpdate(p.HostelsService, logg))
			})
			r.Route("/students", func(r chi.Router) {
				r.Get("/", controllers.StudentList(p.StudentsService, logg))
				r.Get("/search", controllers.StudentSearch(p.StudentsService, logg))
				r.Get("/eligible", controllers.StudentEligibleList(p.StudentsService, logg))
				r.Get("/with-rooms", controllers.StudentsWithRooms(p.StudentsService, logg))
				r.Get("/{studentId}", controllers.StudentDetail(p.StudentsService, logg))
				r.Patch("/{studentId}", controllers.StudentUpdate(p.StudentsService, logg))
			})
			r.Route("/rooms", func(r chi.Router) {
				r.Get("/search", controllers.RoomSearch(p.RoomsService, logg))
				r.Get("/available", controllers.RoomAvailable(p.RoomsService, logg))
				r.Get("/{roomId}/occupants", controllers.RoomOccupants(p.RoomsService, logg))
				r.Post("/{roomId}/recompute", controllers.RoomRecompute(p.AllotmentsService, logg))
			})
			r.Post("/notifications/purge", controllers.PurgeNotifications(p.NotificationService, logg))
			r.Get("/reports/occupancy", controllers.OccupancyReport(p.AllotmentsService, logg))
		})
	})

	return r
}

// Package app wires repositories, adapters, services and the HTTP stack together.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rglregistrations/config"
	"rglregistrations/internal/adapters/auth"
	"rglregistrations/internal/adapters/email"
	deliveryhttp "rglregistrations/internal/delivery/http"
	"rglregistrations/internal/delivery/http/controllers"
	"rglregistrations/internal/delivery/http/middleware"
	"rglregistrations/internal/domain"
	"rglregistrations/internal/observability"
	"rglregistrations/internal/repository/cache"
	"rglregistrations/internal/repository/memory"
	"rglregistrations/internal/repository/postgres"
	"rglregistrations/internal/services"
)

// Stores is the set of repositories the services run on.
type Stores struct {
	Registrations domain.RegistrationRepository
	Events        domain.EventRepository
	Members       domain.MemberRepository
	Invitations   domain.InvitationRepository
	Feedbacks     domain.FeedbackRepository
	Deliveries    domain.EmailDeliveryRepository
}

// MemoryStores returns empty in-memory repositories.
func MemoryStores() Stores {
	return Stores{
		Registrations: memory.NewRegistrationRepo(),
		Events:        memory.NewEventRepo(),
		Members:       memory.NewMemberRepo(),
		Invitations:   memory.NewInvitationRepo(),
		Feedbacks:     memory.NewFeedbackRepo(),
		Deliveries:    memory.NewEmailDeliveryRepo(),
	}
}

// PostgresStores returns Postgres repositories reporting query metrics to obs (may be nil).
func PostgresStores(db *sql.DB, obs postgres.DBObserver) Stores {
	return Stores{
		Registrations: postgres.NewRegistrationRepository(db, obs),
		Events:        postgres.NewEventRepository(db, obs),
		Members:       postgres.NewMemberRepository(db, obs),
		Invitations:   postgres.NewInvitationRepository(db, obs),
		Feedbacks:     postgres.NewFeedbackRepository(db, obs),
		Deliveries:    postgres.NewEmailDeliveryRepository(db, obs),
	}
}

// App holds the assembled services and the HTTP handler.
type App struct {
	Registrations domain.RegistrationService
	Events        domain.EventService
	Members       domain.MemberService
	Invitations   domain.InvitationService
	Auth          domain.AuthService
	Handler       http.Handler
}

// Options configures New. Registry may be nil, in which case a fresh registry is used.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Stores   Stores
	Mailer   domain.Mailer
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
}

// NewMetrics registers the application collectors plus the Go and process collectors on reg.
func NewMetrics(reg *prometheus.Registry) *observability.Metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return observability.NewMetrics(reg)
}

// NewMailer builds the configured email transport.
func NewMailer(cfg *config.Config, logger *slog.Logger) (domain.Mailer, error) {
	return email.NewMailer(email.MailerConfig{
		Provider: cfg.EmailProvider,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
}

// New assembles the services and the HTTP handler:
// CORS -> request logging -> metrics -> router.
func New(o Options) (*App, error) {
	cfg, logger := o.Config, o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := o.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := o.Metrics
	if metrics == nil {
		metrics = NewMetrics(reg)
	}

	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}
	mailer := o.Mailer
	if mailer == nil {
		if mailer, err = NewMailer(cfg, logger); err != nil {
			return nil, err
		}
	}

	events := domain.EventRepository(o.Stores.Events)
	if cfg.EventCacheTTL > 0 {
		events = cache.NewEventRepository(events, cfg.EventCacheTTL, logger)
	}

	hasher := auth.NewBcryptHasher(0)
	admin := domain.AdminCredentials{
		Email:        cfg.AdminEmail,
		PasswordSalt: cfg.AdminPasswordSalt,
		PasswordHash: cfg.AdminPasswordHash,
	}
	if admin.Email == "" || admin.PasswordHash == "" {
		logger.Warn("admin credentials not configured, /admin routes are unreachable")
	}

	a := &App{
		Registrations: services.NewRegistrationService(o.Stores.Registrations, events, o.Stores.Members, logger),
		Events:        services.NewEventService(events),
		Members:       services.NewMemberService(o.Stores.Members),
		Auth:          services.NewAuthService(admin, hasher, auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry),
	}
	eventMailer := services.NewEventMailer(mailer, renderer, o.Stores.Deliveries, metrics, cfg.BaseURL, logger)
	a.Invitations = services.NewInvitationService(o.Stores.Registrations, events, o.Stores.Invitations, o.Stores.Feedbacks, eventMailer, logger)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:         controllers.NewAuthController(logger, a.Auth),
		Event:        controllers.NewEventController(logger, a.Events),
		Registration: controllers.NewRegistrationController(logger, a.Registrations),
		Invitation:   controllers.NewInvitationController(logger, a.Invitations),
		Member:       controllers.NewMemberController(logger, a.Members),
	},
		middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret, domain.RoleAdmin), logger),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)

	var handler http.Handler = metrics.Middleware(router)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	a.Handler = handler
	return a, nil
}

// Package rest serves the dashboard and booking-widget HTTP API.
package rest

import (
	"context"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/metrics"
	"salonbook/backend/internal/service/appointments"
	"salonbook/backend/internal/service/schedule"
)

type AppointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	Reschedule(ctx context.Context, in appointments.RescheduleInput) (domain.Appointment, error)
	Cancel(ctx context.Context, salonSlug string, appointmentID uuid.UUID) error
}

type HoursService interface {
	Get(ctx context.Context, salonSlug string) ([]domain.DayHours, error)
	Set(ctx context.Context, salonSlug string, days []domain.DayHours) ([]domain.DayHours, error)
}

type ScheduleService interface {
	Day(ctx context.Context, salonSlug, date string) (schedule.DayView, error)
	Week(ctx context.Context, salonSlug, date string) (schedule.WeekView, error)
	Services(ctx context.Context, salonSlug string) ([]domain.Service, error)
}

type Config struct {
	CORSOrigins []string
	// RateLimit is requests per minute per client IP for the in-process
	// limiter. Ignored when Deps.Limiter is set; zero disables it.
	RateLimit      int
	BodyLimitBytes int64
}

type Deps struct {
	Appointments AppointmentsService
	Hours        HoursService
	Schedule     ScheduleService

	// Optional.
	Metrics *metrics.Metrics
	Limiter func(http.Handler) http.Handler
	Ready   []ReadyCheck
	Log     *slog.Logger
}

type api struct {
	appointments AppointmentsService
	hours        HoursService
	schedule     ScheduleService
	validate     *validator.Validate
	log          *slog.Logger
	bodyLimit    int64
}

func NewRouter(deps Deps, cfg Config) http.Handler {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	a := &api{
		appointments: deps.Appointments,
		hours:        deps.Hours,
		schedule:     deps.Schedule,
		validate:     newValidator(),
		log:          log.With(slog.String("component", "http")),
		bodyLimit:    cfg.BodyLimitBytes,
	}
	if a.bodyLimit <= 0 {
		a.bodyLimit = 1 << 20
	}

	r := chi.NewRouter()
	r.Use(routeSpanName)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(a.log))
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key", "X-Idempotency-Key", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.Ready, a.log))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/s/{slug}", func(r chi.Router) {
		switch {
		case deps.Limiter != nil:
			r.Use(deps.Limiter)
		case cfg.RateLimit > 0:
			r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
		}

		r.Get("/services", a.listServices)

		r.Post("/appointments", a.createAppointment)
		r.Patch("/appointments/{id}", a.rescheduleAppointment)
		r.Delete("/appointments/{id}", a.cancelAppointment)

		r.Get("/business-hours", a.getHours)
		r.Post("/business-hours", a.setHours)
		r.Put("/business-hours", a.setHours)

		r.Get("/dashboard/today", a.dayView)
		r.Get("/dashboard/week", a.weekView)
	})

	return otelhttp.NewHandler(r, "salonbook.http")
}

// routeSpanName renames the request span after routing so span names carry the
// chi pattern instead of slugs and ids.
func routeSpanName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return
		}
		pattern := rctx.RoutePattern()
		if pattern == "" {
			return
		}
		span := trace.SpanFromContext(r.Context())
		span.SetName(r.Method + " " + pattern)
		span.SetAttributes(attribute.String("http.route", pattern))
	})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	return v
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.DebugContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

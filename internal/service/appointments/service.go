package appointments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/events"
	"salonbook/backend/internal/service/salons"
	"salonbook/backend/internal/store"
)

const maxIdempotencyKeyLen = 256

// Recorder counts operation outcomes.
type Recorder interface {
	RecordOutcome(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordOutcome(string, string) {}

// Service creates, reschedules and cancels bookings. It never retries: every
// rejection is final for the request as given.
type Service struct {
	salons    *salons.Resolver
	dir       store.Directory
	repo      store.AppointmentRepository
	hours     store.BusinessHoursRepository
	publisher events.Publisher
	recorder  Recorder
	log       *slog.Logger
	tracer    trace.Tracer
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(resolver *salons.Resolver, dir store.Directory, repo store.AppointmentRepository, hours store.BusinessHoursRepository, opts ...Option) *Service {
	s := &Service{
		salons:    resolver,
		dir:       dir,
		repo:      repo,
		hours:     hours,
		publisher: events.Nop{},
		recorder:  nopRecorder{},
		log:       slog.Default(),
		tracer:    otel.Tracer("salonbook/backend/internal/service/appointments"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("component", "appointments"))
	return s
}

type Customer struct {
	Name  string
	Phone string
	Email string
}

type CreateInput struct {
	SalonSlug      string
	ServiceID      uuid.UUID
	StartAt        time.Time
	Customer       Customer
	Notes          string
	InternalNote   string
	Source         string
	IdempotencyKey string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (out domain.Appointment, err error) {
	ctx, span := s.tracer.Start(ctx, "appointments.Create", trace.WithAttributes(attribute.String("salon.slug", in.SalonSlug)))
	defer func() { s.finish(span, "create", err) }()

	if in.ServiceID == uuid.Nil {
		return domain.Appointment{}, domain.Reject(domain.ReasonInvalidArgument, "service_id is required")
	}
	if in.StartAt.IsZero() {
		return domain.Appointment{}, domain.Reject(domain.ReasonInvalidArgument, "start time is required")
	}
	source, ok := domain.ParseSource(in.Source)
	if !ok {
		return domain.Appointment{}, domain.Reject(domain.ReasonInvalidArgument, "source must be website, phone or dashboard")
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		return domain.Appointment{}, domain.Reject(domain.ReasonInvalidArgument, "idempotency key too long")
	}

	salon, err := s.salons.Resolve(ctx, in.SalonSlug)
	if err != nil {
		return domain.Appointment{}, err
	}

	svc, err := s.dir.ServiceForSalon(ctx, salon.ID, in.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, domain.ErrServiceNotFound
		}
		return domain.Appointment{}, fmt.Errorf("load service: %w", err)
	}
	if !svc.Bookable() {
		return domain.Appointment{}, domain.ErrInvalidDuration
	}

	start := in.StartAt.UTC()
	end := start.Add(svc.Duration())

	if err := s.checkHours(ctx, salon, start, end); err != nil {
		return domain.Appointment{}, err
	}

	appt := domain.Appointment{
		SalonID:       salon.ID,
		ServiceID:     svc.ID,
		Kind:          domain.KindBooking,
		Status:        domain.StatusConfirmed,
		Source:        source,
		StartAt:       start,
		EndAt:         end,
		CustomerName:  strings.TrimSpace(in.Customer.Name),
		CustomerPhone: strings.TrimSpace(in.Customer.Phone),
		CustomerEmail: strings.TrimSpace(in.Customer.Email),
		Notes:         strings.TrimSpace(in.Notes),
		InternalNote:  strings.TrimSpace(in.InternalNote),
	}
	if key != "" {
		appt.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("salonbook:create_appointment:"+salon.ID.String()+":"+key))
	}

	// A replayed key must reach the store, so its own row is excluded here.
	conflict, err := s.repo.HasOverlap(ctx, salon.ID, start, end, appt.ID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("overlap pre-check: %w", err)
	}
	if conflict {
		return domain.Appointment{}, domain.ErrOverlap
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return domain.Appointment{}, domain.ErrOverlap
		case errors.Is(err, store.ErrIdempotencyConflict):
			return domain.Appointment{}, domain.ErrIdempotencyConflict
		default:
			return domain.Appointment{}, fmt.Errorf("create appointment: %w", err)
		}
	}
	if created.ServiceName == "" {
		created.ServiceName = svc.Name
	}

	span.SetAttributes(attribute.String("appointment.id", created.ID.String()))
	s.publish(ctx, events.New(events.AppointmentBooked, salon.Salon, created))
	return created, nil
}

type RescheduleInput struct {
	SalonSlug     string
	AppointmentID uuid.UUID
	StartAt       time.Time
}

// Reschedule moves an appointment to a new start. The end is recomputed from the
// service's current duration; the stored interval length is not reused.
func (s *Service) Reschedule(ctx context.Context, in RescheduleInput) (out domain.Appointment, err error) {
	ctx, span := s.tracer.Start(ctx, "appointments.Reschedule", trace.WithAttributes(
		attribute.String("salon.slug", in.SalonSlug),
		attribute.String("appointment.id", in.AppointmentID.String()),
	))
	defer func() { s.finish(span, "reschedule", err) }()

	if in.AppointmentID == uuid.Nil {
		return domain.Appointment{}, domain.Reject(domain.ReasonInvalidArgument, "appointment_id is required")
	}
	if in.StartAt.IsZero() {
		return domain.Appointment{}, domain.Reject(domain.ReasonInvalidArgument, "start time is required")
	}

	salon, err := s.salons.Resolve(ctx, in.SalonSlug)
	if err != nil {
		return domain.Appointment{}, err
	}

	current, err := s.repo.Get(ctx, salon.ID, in.AppointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, domain.ErrAppointmentNotFound
		}
		return domain.Appointment{}, fmt.Errorf("load appointment: %w", err)
	}
	if !current.Active() {
		return domain.Appointment{}, domain.ErrAppointmentNotFound
	}

	svc, err := s.dir.ServiceForSalon(ctx, salon.ID, current.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, domain.ErrInvalidDuration
		}
		return domain.Appointment{}, fmt.Errorf("load service: %w", err)
	}
	if !svc.Bookable() {
		return domain.Appointment{}, domain.ErrInvalidDuration
	}

	start := in.StartAt.UTC()
	end := start.Add(svc.Duration())

	if err := s.checkHours(ctx, salon, start, end); err != nil {
		return domain.Appointment{}, err
	}

	if current.Blocking() {
		conflict, err := s.repo.HasOverlap(ctx, salon.ID, start, end, current.ID)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("overlap pre-check: %w", err)
		}
		if conflict {
			return domain.Appointment{}, domain.ErrOverlap
		}
	}

	updated, err := s.repo.Reschedule(ctx, salon.ID, current.ID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return domain.Appointment{}, domain.ErrOverlap
		case errors.Is(err, store.ErrNotFound):
			return domain.Appointment{}, domain.ErrAppointmentNotFound
		default:
			return domain.Appointment{}, fmt.Errorf("reschedule appointment: %w", err)
		}
	}

	s.publish(ctx, events.New(events.AppointmentRescheduled, salon.Salon, updated))
	return updated, nil
}

// Cancel deletes the appointment. An unknown id is not an error.
func (s *Service) Cancel(ctx context.Context, salonSlug string, appointmentID uuid.UUID) (err error) {
	ctx, span := s.tracer.Start(ctx, "appointments.Cancel", trace.WithAttributes(
		attribute.String("salon.slug", salonSlug),
		attribute.String("appointment.id", appointmentID.String()),
	))
	defer func() { s.finish(span, "cancel", err) }()

	if appointmentID == uuid.Nil {
		return domain.Reject(domain.ReasonInvalidArgument, "appointment_id is required")
	}

	salon, err := s.salons.Resolve(ctx, salonSlug)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, salon.ID, appointmentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.publish(ctx, events.New(events.AppointmentDeleted, salon.Salon, domain.Appointment{ID: appointmentID, SalonID: salon.ID}))
	return nil
}

func (s *Service) checkHours(ctx context.Context, salon salons.Salon, start, end time.Time) error {
	rows, err := s.hours.ListHours(ctx, salon.ID)
	if err != nil {
		return fmt.Errorf("load business hours: %w", err)
	}
	return domain.CheckAvailability(domain.NewHours(rows), salon.Location, start, end)
}

func (s *Service) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "publish event failed",
			slog.String("event_type", string(ev.Type)),
			slog.String("appointment_id", ev.AppointmentID.String()),
			slog.Any("err", err),
		)
	}
}

func (s *Service) finish(span trace.Span, operation string, err error) {
	defer span.End()

	outcome := "ok"
	if err != nil {
		if rej, ok := domain.AsRejection(err); ok {
			outcome = string(rej.Reason)
			span.SetAttributes(attribute.String("rejection.reason", outcome))
		} else {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, "internal error")
		}
	}
	s.recorder.RecordOutcome(operation, outcome)
}

package grpc

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/service/appointments"
	"salonbook/backend/internal/service/schedule"
)

type appointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	Reschedule(ctx context.Context, in appointments.RescheduleInput) (domain.Appointment, error)
	Cancel(ctx context.Context, salonSlug string, appointmentID uuid.UUID) error
}

type hoursService interface {
	Get(ctx context.Context, salonSlug string) ([]domain.DayHours, error)
	Set(ctx context.Context, salonSlug string, days []domain.DayHours) ([]domain.DayHours, error)
}

type scheduleService interface {
	Day(ctx context.Context, salonSlug, date string) (schedule.DayView, error)
	Week(ctx context.Context, salonSlug, date string) (schedule.WeekView, error)
	Services(ctx context.Context, salonSlug string) ([]domain.Service, error)
}

type Server struct {
	appointments appointmentsService
	hours        hoursService
	schedule     scheduleService
	log          *slog.Logger
}

var _ SalonbookServer = (*Server)(nil)

func NewServer(appts appointmentsService, hours hoursService, sched scheduleService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		appointments: appts,
		hours:        hours,
		schedule:     sched,
		log:          log.With(slog.String("component", "grpc.salonbook")),
	}
}

func (s *Server) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*AppointmentResponse, error) {
	log := s.rpcLogger(ctx, "CreateAppointment")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	if req.StartAt == nil {
		log.Warn("invalid request", slog.String("reason", "missing_start"), slog.String("salon", req.SalonSlug))
		return nil, invalidArgument("start_at is required")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("salon", req.SalonSlug))
		return nil, invalidArgument("service_id must be a UUID")
	}

	appt, err := s.appointments.Create(ctx, appointments.CreateInput{
		SalonSlug: req.SalonSlug,
		ServiceID: serviceID,
		StartAt:   *req.StartAt,
		Customer: appointments.Customer{
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Email: req.CustomerEmail,
		},
		Notes:          req.Notes,
		InternalNote:   req.InternalNote,
		Source:         req.Source,
		IdempotencyKey: idempotencyKey(ctx),
	})
	if err != nil {
		return nil, toStatus(ctx, log, "appointment create", err,
			slog.String("salon", req.SalonSlug),
			slog.Time("start_at", *req.StartAt),
		)
	}

	log.Info(
		"appointment created",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("salon", req.SalonSlug),
		slog.Time("start_at", appt.StartAt),
		slog.Time("end_at", appt.EndAt),
	)
	return &AppointmentResponse{Appointment: appt}, nil
}

func (s *Server) RescheduleAppointment(ctx context.Context, req *RescheduleAppointmentRequest) (*AppointmentResponse, error) {
	log := s.rpcLogger(ctx, "RescheduleAppointment")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	if req.StartAt == nil {
		log.Warn("invalid request", slog.String("reason", "missing_start"), slog.String("salon", req.SalonSlug))
		return nil, invalidArgument("start_at is required")
	}
	id, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("salon", req.SalonSlug))
		return nil, invalidArgument("appointment_id must be a UUID")
	}

	appt, err := s.appointments.Reschedule(ctx, appointments.RescheduleInput{
		SalonSlug:     req.SalonSlug,
		AppointmentID: id,
		StartAt:       *req.StartAt,
	})
	if err != nil {
		return nil, toStatus(ctx, log, "appointment reschedule", err,
			slog.String("salon", req.SalonSlug),
			slog.String("appointment_id", id.String()),
		)
	}

	log.Info(
		"appointment rescheduled",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("salon", req.SalonSlug),
		slog.Time("start_at", appt.StartAt),
		slog.Time("end_at", appt.EndAt),
	)
	return &AppointmentResponse{Appointment: appt}, nil
}

func (s *Server) CancelAppointment(ctx context.Context, req *CancelAppointmentRequest) (*CancelAppointmentResponse, error) {
	log := s.rpcLogger(ctx, "CancelAppointment")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	id, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("salon", req.SalonSlug))
		return nil, invalidArgument("appointment_id must be a UUID")
	}

	if err := s.appointments.Cancel(ctx, req.SalonSlug, id); err != nil {
		return nil, toStatus(ctx, log, "appointment cancel", err,
			slog.String("salon", req.SalonSlug),
			slog.String("appointment_id", id.String()),
		)
	}

	log.Info("appointment cancelled", slog.String("appointment_id", id.String()), slog.String("salon", req.SalonSlug))
	return &CancelAppointmentResponse{}, nil
}

func (s *Server) GetBusinessHours(ctx context.Context, req *GetBusinessHoursRequest) (*BusinessHoursResponse, error) {
	log := s.rpcLogger(ctx, "GetBusinessHours")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	days, err := s.hours.Get(ctx, req.SalonSlug)
	if err != nil {
		return nil, toStatus(ctx, log, "business hours get", err, slog.String("salon", req.SalonSlug))
	}
	return &BusinessHoursResponse{Hours: days}, nil
}

func (s *Server) SetBusinessHours(ctx context.Context, req *SetBusinessHoursRequest) (*BusinessHoursResponse, error) {
	log := s.rpcLogger(ctx, "SetBusinessHours")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	days, err := s.hours.Set(ctx, req.SalonSlug, req.Hours)
	if err != nil {
		return nil, toStatus(ctx, log, "business hours set", err, slog.String("salon", req.SalonSlug))
	}

	log.Info("business hours updated", slog.String("salon", req.SalonSlug), slog.Int("days", len(req.Hours)))
	return &BusinessHoursResponse{Hours: days}, nil
}

func (s *Server) DayView(ctx context.Context, req *DayViewRequest) (*DayViewResponse, error) {
	log := s.rpcLogger(ctx, "DayView")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	view, err := s.schedule.Day(ctx, req.SalonSlug, req.Date)
	if err != nil {
		return nil, toStatus(ctx, log, "day view", err, slog.String("salon", req.SalonSlug), slog.String("date", req.Date))
	}

	log.Debug("day view listed", slog.String("salon", req.SalonSlug), slog.String("date", view.Date), slog.Int("count", view.Count))
	return &DayViewResponse{Day: view}, nil
}

func (s *Server) WeekView(ctx context.Context, req *WeekViewRequest) (*WeekViewResponse, error) {
	log := s.rpcLogger(ctx, "WeekView")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	view, err := s.schedule.Week(ctx, req.SalonSlug, req.Date)
	if err != nil {
		return nil, toStatus(ctx, log, "week view", err, slog.String("salon", req.SalonSlug), slog.String("date", req.Date))
	}

	log.Debug("week view listed", slog.String("salon", req.SalonSlug), slog.String("start", view.Start))
	return &WeekViewResponse{Week: view}, nil
}

func (s *Server) ListServices(ctx context.Context, req *ListServicesRequest) (*ListServicesResponse, error) {
	log := s.rpcLogger(ctx, "ListServices")

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, invalidArgument("request is required")
	}
	services, err := s.schedule.Services(ctx, req.SalonSlug)
	if err != nil {
		return nil, toStatus(ctx, log, "services list", err, slog.String("salon", req.SalonSlug))
	}
	return &ListServicesResponse{Services: services}, nil
}

func (s *Server) rpcLogger(ctx context.Context, rpc string) *slog.Logger {
	return s.log.With(
		slog.String("rpc", rpc),
		slog.String("request_id", RequestIDFromContext(ctx)),
	)
}

func idempotencyKey(ctx context.Context) string {
	return firstMetadata(ctx, "idempotency-key", "x-idempotency-key")
}

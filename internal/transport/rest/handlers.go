package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/service/appointments"
)

type appointmentResponse struct {
	Appointment domain.Appointment `json:"appointment"`
}

type hoursResponse struct {
	Hours []domain.DayHours `json:"hours"`
}

type servicesResponse struct {
	Services []domain.Service `json:"services"`
}

func (a *api) createAppointment(w http.ResponseWriter, r *http.Request) {
	raw, ok := a.readObject(w, r)
	if !ok {
		return
	}
	req := normalizeAppointment(raw)
	if err := a.validate.Struct(req); err != nil {
		badRequest(w, validationMessage(err))
		return
	}
	start, ok := parseInstant(w, req.StartAt)
	if !ok {
		return
	}

	appt, err := a.appointments.Create(r.Context(), appointments.CreateInput{
		SalonSlug: chi.URLParam(r, "slug"),
		ServiceID: uuid.MustParse(req.ServiceID),
		StartAt:   start,
		Customer: appointments.Customer{
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Email: req.CustomerEmail,
		},
		Notes:          req.Notes,
		InternalNote:   req.InternalNote,
		Source:         req.Source,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		a.writeError(w, r, "create_appointment", err)
		return
	}
	writeJSON(w, http.StatusCreated, appointmentResponse{Appointment: appt})
}

func (a *api) rescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}
	raw, ok := a.readObject(w, r)
	if !ok {
		return
	}
	req := normalizeReschedule(raw)
	if err := a.validate.Struct(req); err != nil {
		badRequest(w, validationMessage(err))
		return
	}
	start, ok := parseInstant(w, req.StartAt)
	if !ok {
		return
	}

	appt, err := a.appointments.Reschedule(r.Context(), appointments.RescheduleInput{
		SalonSlug:     chi.URLParam(r, "slug"),
		AppointmentID: id,
		StartAt:       start,
	})
	if err != nil {
		a.writeError(w, r, "reschedule_appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentResponse{Appointment: appt})
}

func (a *api) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}
	if err := a.appointments.Cancel(r.Context(), chi.URLParam(r, "slug"), id); err != nil {
		a.writeError(w, r, "cancel_appointment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) getHours(w http.ResponseWriter, r *http.Request) {
	days, err := a.hours.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.writeError(w, r, "get_business_hours", err)
		return
	}
	writeJSON(w, http.StatusOK, hoursResponse{Hours: days})
}

func (a *api) setHours(w http.ResponseWriter, r *http.Request) {
	body, ok := a.readBody(w, r)
	if !ok {
		return
	}
	days, err := normalizeHours(body)
	if err != nil {
		badRequest(w, "body must be a JSON array or an object with hours")
		return
	}
	week, err := a.hours.Set(r.Context(), chi.URLParam(r, "slug"), days)
	if err != nil {
		a.writeError(w, r, "set_business_hours", err)
		return
	}
	writeJSON(w, http.StatusOK, hoursResponse{Hours: week})
}

func (a *api) dayView(w http.ResponseWriter, r *http.Request) {
	view, err := a.schedule.Day(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("date"))
	if err != nil {
		a.writeError(w, r, "day_view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *api) weekView(w http.ResponseWriter, r *http.Request) {
	view, err := a.schedule.Week(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("date"))
	if err != nil {
		a.writeError(w, r, "week_view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *api) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := a.schedule.Services(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.writeError(w, r, "list_services", err)
		return
	}
	writeJSON(w, http.StatusOK, servicesResponse{Services: services})
}

func (a *api) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.bodyLimit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large", Code: string(domain.ReasonInvalidArgument)})
			return nil, false
		}
		badRequest(w, "could not read request body")
		return nil, false
	}
	return body, true
}

func (a *api) readObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body, ok := a.readBody(w, r)
	if !ok {
		return nil, false
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		badRequest(w, "body must be a JSON object")
		return nil, false
	}
	return raw, true
}

func appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "appointment id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseInstant requires an explicit offset so the instant is unambiguous.
func parseInstant(w http.ResponseWriter, text string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		badRequest(w, "start_at must be an RFC 3339 timestamp with offset")
		return time.Time{}, false
	}
	return t, true
}

func idempotencyKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Idempotency-Key"))
}

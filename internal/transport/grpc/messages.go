package grpc

import (
	"time"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/service/schedule"
)

type CreateAppointmentRequest struct {
	SalonSlug     string     `json:"salon_slug"`
	ServiceID     string     `json:"service_id"`
	StartAt       *time.Time `json:"start_at"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	InternalNote  string     `json:"internal_note,omitempty"`
	Source        string     `json:"source,omitempty"`
}

type RescheduleAppointmentRequest struct {
	SalonSlug     string     `json:"salon_slug"`
	AppointmentID string     `json:"appointment_id"`
	StartAt       *time.Time `json:"start_at"`
}

type AppointmentResponse struct {
	Appointment domain.Appointment `json:"appointment"`
}

type CancelAppointmentRequest struct {
	SalonSlug     string `json:"salon_slug"`
	AppointmentID string `json:"appointment_id"`
}

type CancelAppointmentResponse struct{}

type GetBusinessHoursRequest struct {
	SalonSlug string `json:"salon_slug"`
}

type SetBusinessHoursRequest struct {
	SalonSlug string            `json:"salon_slug"`
	Hours     []domain.DayHours `json:"hours"`
}

type BusinessHoursResponse struct {
	Hours []domain.DayHours `json:"hours"`
}

type DayViewRequest struct {
	SalonSlug string `json:"salon_slug"`
	Date      string `json:"date,omitempty"`
}

type DayViewResponse struct {
	Day schedule.DayView `json:"day"`
}

type WeekViewRequest struct {
	SalonSlug string `json:"salon_slug"`
	Date      string `json:"date,omitempty"`
}

type WeekViewResponse struct {
	Week schedule.WeekView `json:"week"`
}

type ListServicesRequest struct {
	SalonSlug string `json:"salon_slug"`
}

type ListServicesResponse struct {
	Services []domain.Service `json:"services"`
}

package domain

import "errors"

// Reason is a stable machine-readable code attached to every rejected request.
type Reason string

const (
	ReasonInvalidArgument     Reason = "INVALID_ARGUMENT"
	ReasonInvalidHours        Reason = "INVALID_HOURS"
	ReasonSalonNotFound       Reason = "SALON_NOT_FOUND"
	ReasonServiceNotFound     Reason = "SERVICE_NOT_FOUND"
	ReasonInvalidDuration     Reason = "INVALID_DURATION"
	ReasonAppointmentNotFound Reason = "APPOINTMENT_NOT_FOUND"
	ReasonOutsideHours        Reason = "OUTSIDE_HOURS"
	ReasonCrossesMidnight     Reason = "CROSSES_MIDNIGHT"
	ReasonOverlap             Reason = "OVERLAP"
	ReasonIdempotencyConflict Reason = "IDEMPOTENCY_CONFLICT"
)

type Class int

const (
	ClassValidation Class = iota
	ClassNotFound
	ClassConflict
)

func (r Reason) Class() Class {
	switch r {
	case ReasonSalonNotFound, ReasonServiceNotFound, ReasonAppointmentNotFound:
		return ClassNotFound
	case ReasonOverlap, ReasonIdempotencyConflict:
		return ClassConflict
	default:
		return ClassValidation
	}
}

// Rejection is a permanent refusal of a request as given. Callers must not retry it.
type Rejection struct {
	Reason  Reason
	Message string
}

func Reject(reason Reason, msg string) *Rejection {
	return &Rejection{Reason: reason, Message: msg}
}

func (r *Rejection) Error() string {
	return r.Message
}

// Is matches any rejection carrying the same reason.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

var (
	ErrSalonNotFound       = Reject(ReasonSalonNotFound, "salon not found")
	ErrServiceNotFound     = Reject(ReasonServiceNotFound, "service not found for this salon")
	ErrInvalidDuration     = Reject(ReasonInvalidDuration, "invalid service duration")
	ErrAppointmentNotFound = Reject(ReasonAppointmentNotFound, "appointment not found")
	ErrOutsideHours        = Reject(ReasonOutsideHours, "outside business hours")
	ErrCrossesMidnight     = Reject(ReasonCrossesMidnight, "appointment must end on the day it starts")
	ErrOverlap             = Reject(ReasonOverlap, "time slot already booked")
	ErrIdempotencyConflict = Reject(ReasonIdempotencyConflict, "idempotency key was already used for a different appointment")
)

// AsRejection unwraps err to a *Rejection if it carries one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

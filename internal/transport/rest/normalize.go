package rest

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"salonbook/backend/internal/domain"
)

// Dashboard and widget clients spell the same fields differently. Each list is
// in priority order; the first non-empty value wins.
var (
	serviceAliases      = []string{"service_id", "serviceId"}
	startAliases        = []string{"start_at", "startAt", "start_time", "start"}
	customerNameAliases = []string{"customer_name", "customerName", "name"}
	phoneAliases        = []string{"customer_phone", "customerPhone", "phone"}
	emailAliases        = []string{"customer_email", "customerEmail", "email"}
	internalNoteAliases = []string{"internal_note", "internalNote", "note"}
	notesAliases        = []string{"notes"}
	sourceAliases       = []string{"source"}

	weekdayAliases = []string{"weekday", "day"}
	openAliases    = []string{"open", "open_time"}
	closeAliases   = []string{"close", "close_time"}
)

type appointmentRequest struct {
	ServiceID     string `field:"service_id" validate:"required,uuid"`
	StartAt       string `field:"start_at" validate:"required"`
	CustomerName  string `field:"customer_name" validate:"max=200"`
	CustomerPhone string `field:"customer_phone" validate:"max=50"`
	CustomerEmail string `field:"customer_email" validate:"omitempty,email"`
	Notes         string `field:"notes" validate:"max=2000"`
	InternalNote  string `field:"internal_note" validate:"max=2000"`
	Source        string `field:"source" validate:"omitempty,oneof=website phone dashboard"`
}

type rescheduleRequest struct {
	StartAt string `field:"start_at" validate:"required"`
}

func normalizeAppointment(raw map[string]any) appointmentRequest {
	return appointmentRequest{
		ServiceID:     pick(raw, serviceAliases),
		StartAt:       pick(raw, startAliases),
		CustomerName:  pick(raw, customerNameAliases),
		CustomerPhone: pick(raw, phoneAliases),
		CustomerEmail: pick(raw, emailAliases),
		Notes:         pick(raw, notesAliases),
		InternalNote:  pick(raw, internalNoteAliases),
		Source:        pick(raw, sourceAliases),
	}
}

func normalizeReschedule(raw map[string]any) rescheduleRequest {
	return rescheduleRequest{StartAt: pick(raw, startAliases)}
}

// normalizeHours accepts {"hours": [...]}, {"rows": [...]} or a bare array.
func normalizeHours(body []byte) ([]domain.DayHours, error) {
	var rows []map[string]any
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Hours []map[string]any `json:"hours"`
			Rows  []map[string]any `json:"rows"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		rows = wrapped.Hours
		if rows == nil {
			rows = wrapped.Rows
		}
	}

	out := make([]domain.DayHours, 0, len(rows))
	for _, row := range rows {
		weekday, _ := strconv.Atoi(pick(row, weekdayAliases))
		day := domain.DayHours{
			Weekday: weekday,
			Open:    pick(row, openAliases),
			Close:   pick(row, closeAliases),
		}
		if closed, ok := row["closed"].(bool); ok {
			day.Closed = closed
		}
		out = append(out, day)
	}
	return out, nil
}

func pick(raw map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case json.Number:
			s = t.String()
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

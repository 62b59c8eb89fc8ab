package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook/backend/internal/domain"
)

func TestNormalizeAppointment_Aliases(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want appointmentRequest
	}{
		{
			name: "canonical",
			raw: map[string]any{
				"service_id": "s", "start_at": "t", "customer_name": "Ada",
				"customer_phone": "1", "customer_email": "a@x.io", "internal_note": "vip", "notes": "hi",
			},
			want: appointmentRequest{
				ServiceID: "s", StartAt: "t", CustomerName: "Ada",
				CustomerPhone: "1", CustomerEmail: "a@x.io", InternalNote: "vip", Notes: "hi",
			},
		},
		{
			name: "camel case",
			raw: map[string]any{
				"serviceId": "s", "startAt": "t", "customerName": "Ada",
				"customerPhone": "1", "customerEmail": "a@x.io", "internalNote": "vip",
			},
			want: appointmentRequest{
				ServiceID: "s", StartAt: "t", CustomerName: "Ada",
				CustomerPhone: "1", CustomerEmail: "a@x.io", InternalNote: "vip",
			},
		},
		{
			name: "short names",
			raw:  map[string]any{"serviceId": "s", "start": "t", "name": "Ada", "phone": "1", "email": "a@x.io", "note": "vip"},
			want: appointmentRequest{
				ServiceID: "s", StartAt: "t", CustomerName: "Ada",
				CustomerPhone: "1", CustomerEmail: "a@x.io", InternalNote: "vip",
			},
		},
		{
			name: "start_time and priority",
			raw:  map[string]any{"service_id": "s", "start_time": "late", "start": "later", "customer_name": " ", "name": "Bo"},
			want: appointmentRequest{ServiceID: "s", StartAt: "late", CustomerName: "Bo"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeAppointment(tc.raw))
		})
	}
}

func TestNormalizeHours_AcceptsAllBodyShapes(t *testing.T) {
	want := []domain.DayHours{
		{Weekday: 1, Open: "09:00", Close: "17:00"},
		{Weekday: 7, Closed: true},
	}

	bodies := map[string]string{
		"hours":  `{"hours":[{"weekday":1,"open":"09:00","close":"17:00"},{"weekday":7,"closed":true}]}`,
		"rows":   `{"rows":[{"day":1,"open_time":"09:00","close_time":"17:00"},{"day":"7","closed":true}]}`,
		"bare":   `[{"weekday":1,"open":"09:00","close_time":"17:00"},{"weekday":7,"closed":true}]`,
		"spaced": "  \n[{\"weekday\":1,\"open\":\"09:00\",\"close\":\"17:00\"},{\"weekday\":7,\"closed\":true}]",
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			got, err := normalizeHours([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := normalizeHours([]byte(`"monday"`))
	assert.Error(t, err)
}

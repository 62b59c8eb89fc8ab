package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"salonbook/backend/internal/service/schedule"
)

func TestSpanNamesUseRoutePattern(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	h := newHarness()
	h.sched.dayFn = func(ctx context.Context, salonSlug, date string) (schedule.DayView, error) {
		return schedule.DayView{Date: date}, nil
	}

	rec := h.do(t, http.MethodGet, "/api/s/studio-berlin/dashboard/today?date=2026-03-29", "")
	require.Equal(t, http.StatusOK, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/s/{slug}/dashboard/today", spans[0].Name())
	assert.NotContains(t, spans[0].Name(), "studio-berlin")
	assert.Contains(t, spans[0].Attributes(), attribute.String("http.route", "/api/s/{slug}/dashboard/today"))
}

package events

import (
	"context"
	"log/slog"
)

// LogPublisher records events in the process log when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(slog.String("component", "events"))}
}

func (p *LogPublisher) Publish(ctx context.Context, ev Event) error {
	p.log.InfoContext(ctx, "appointment event",
		slog.String("event_id", ev.ID.String()),
		slog.String("event_type", string(ev.Type)),
		slog.String("salon", ev.SalonSlug),
		slog.String("appointment_id", ev.AppointmentID.String()),
	)
	return nil
}

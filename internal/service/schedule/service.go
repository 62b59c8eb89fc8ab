// Package schedule serves the read side of the dashboard: day and week views
// of active bookings and the service catalog.
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/service/salons"
	"salonbook/backend/internal/store"
)

const weekDays = 7

type Service struct {
	salons *salons.Resolver
	dir    store.Directory
	repo   store.AppointmentRepository
	hours  store.BusinessHoursRepository
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(resolver *salons.Resolver, dir store.Directory, repo store.AppointmentRepository, hours store.BusinessHoursRepository, opts ...Option) *Service {
	s := &Service{salons: resolver, dir: dir, repo: repo, hours: hours, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type DayView struct {
	Date            string               `json:"date"`
	Appointments    []domain.Appointment `json:"appointments"`
	Count           int                  `json:"count"`
	DisplayStartMin int                  `json:"display_start_min"`
	DisplayEndMin   int                  `json:"display_end_min"`
	Hours           domain.DayHours      `json:"hours"`
}

type WeekDay struct {
	Date         string               `json:"date"`
	Appointments []domain.Appointment `json:"appointments"`
}

type WeekView struct {
	Start string    `json:"start"`
	Days  []WeekDay `json:"days"`
}

// Day lists the bookings intersecting the local day. An empty date means today
// in the salon's zone.
func (s *Service) Day(ctx context.Context, salonSlug, date string) (DayView, error) {
	salon, err := s.salons.Resolve(ctx, salonSlug)
	if err != nil {
		return DayView{}, err
	}
	day, err := s.localDate(date, salon.Location)
	if err != nil {
		return DayView{}, err
	}

	start, end := domain.DayBounds(day, salon.Location)
	rows, err := s.repo.ListActive(ctx, salon.ID, start, end)
	if err != nil {
		return DayView{}, fmt.Errorf("list appointments: %w", err)
	}
	hourRows, err := s.hours.ListHours(ctx, salon.ID)
	if err != nil {
		return DayView{}, fmt.Errorf("load business hours: %w", err)
	}

	weekday := domain.ISOWeekday(day.Weekday())
	hours := domain.NewHours(hourRows)
	w, open := hours.WindowFor(weekday)
	displayStart, displayEnd := domain.DisplayRange(w, open)

	return DayView{
		Date:            domain.FormatDate(start, salon.Location),
		Appointments:    nonNil(rows),
		Count:           len(rows),
		DisplayStartMin: displayStart,
		DisplayEndMin:   displayEnd,
		Hours:           hours.Week()[weekday-1],
	}, nil
}

// Week returns seven local days starting at date, each with the bookings that
// intersect it.
func (s *Service) Week(ctx context.Context, salonSlug, date string) (WeekView, error) {
	salon, err := s.salons.Resolve(ctx, salonSlug)
	if err != nil {
		return WeekView{}, err
	}
	day, err := s.localDate(date, salon.Location)
	if err != nil {
		return WeekView{}, err
	}

	type bounds struct{ start, end time.Time }
	days := make([]bounds, weekDays)
	for i := range days {
		start, end := domain.DayBounds(day.AddDate(0, 0, i), salon.Location)
		days[i] = bounds{start: start, end: end}
	}

	rows, err := s.repo.ListActive(ctx, salon.ID, days[0].start, days[weekDays-1].end)
	if err != nil {
		return WeekView{}, fmt.Errorf("list appointments: %w", err)
	}

	out := WeekView{
		Start: domain.FormatDate(days[0].start, salon.Location),
		Days:  make([]WeekDay, weekDays),
	}
	for i, b := range days {
		bucket := WeekDay{Date: domain.FormatDate(b.start, salon.Location), Appointments: []domain.Appointment{}}
		for _, a := range rows {
			if domain.Overlaps(a.StartAt, a.EndAt, b.start, b.end) {
				bucket.Appointments = append(bucket.Appointments, a)
			}
		}
		out.Days[i] = bucket
	}
	return out, nil
}

// Services lists the salon's catalog ordered by name.
func (s *Service) Services(ctx context.Context, salonSlug string) ([]domain.Service, error) {
	salon, err := s.salons.Resolve(ctx, salonSlug)
	if err != nil {
		return nil, err
	}
	rows, err := s.dir.ListServices(ctx, salon.ID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if rows == nil {
		rows = []domain.Service{}
	}
	return rows, nil
}

func (s *Service) localDate(text string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(text) == "" {
		start, _ := domain.DayBounds(s.now(), loc)
		return start, nil
	}
	d, err := domain.ParseLocalDate(text, loc)
	if err != nil {
		return time.Time{}, domain.Reject(domain.ReasonInvalidArgument, err.Error())
	}
	return d, nil
}

func nonNil(rows []domain.Appointment) []domain.Appointment {
	if rows == nil {
		return []domain.Appointment{}
	}
	return rows
}

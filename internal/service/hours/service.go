// Package hours reads and replaces a salon's weekly business hours.
package hours

import (
	"context"
	"fmt"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/service/salons"
	"salonbook/backend/internal/store"
)

type Service struct {
	salons *salons.Resolver
	repo   store.BusinessHoursRepository
}

func NewService(resolver *salons.Resolver, repo store.BusinessHoursRepository) *Service {
	return &Service{salons: resolver, repo: repo}
}

// Get returns all seven weekdays, Monday first.
func (s *Service) Get(ctx context.Context, salonSlug string) ([]domain.DayHours, error) {
	salon, err := s.salons.Resolve(ctx, salonSlug)
	if err != nil {
		return nil, err
	}
	return s.week(ctx, salon)
}

// Set applies days atomically and returns the stored week. Weekdays not listed
// keep their current hours; an invalid entry rejects the whole batch.
func (s *Service) Set(ctx context.Context, salonSlug string, days []domain.DayHours) ([]domain.DayHours, error) {
	salon, err := s.salons.Resolve(ctx, salonSlug)
	if err != nil {
		return nil, err
	}
	changes, err := domain.PlanHoursChanges(days)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return s.week(ctx, salon)
	}
	if err := s.repo.ApplyHours(ctx, salon.ID, changes); err != nil {
		return nil, fmt.Errorf("apply business hours: %w", err)
	}
	return s.week(ctx, salon)
}

func (s *Service) week(ctx context.Context, salon salons.Salon) ([]domain.DayHours, error) {
	rows, err := s.repo.ListHours(ctx, salon.ID)
	if err != nil {
		return nil, fmt.Errorf("load business hours: %w", err)
	}
	return domain.NewHours(rows).Week(), nil
}

// Package salons resolves a salon slug to the tenant row and its time zone.
package salons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/store"
)

// Salon is a resolved tenant with its loaded location.
type Salon struct {
	domain.Salon
	Location *time.Location
}

type Resolver struct {
	dir             store.Directory
	defaultTimezone string
}

func NewResolver(dir store.Directory, defaultTimezone string) *Resolver {
	if strings.TrimSpace(defaultTimezone) == "" {
		defaultTimezone = domain.DefaultTimezone
	}
	return &Resolver{dir: dir, defaultTimezone: defaultTimezone}
}

func (r *Resolver) Resolve(ctx context.Context, slug string) (Salon, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Salon{}, domain.Reject(domain.ReasonInvalidArgument, "salon slug is required")
	}
	s, err := r.dir.SalonBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Salon{}, domain.ErrSalonNotFound
		}
		return Salon{}, fmt.Errorf("load salon %q: %w", slug, err)
	}
	return Salon{Salon: s, Location: domain.LoadLocation(s.Timezone, r.defaultTimezone)}, nil
}

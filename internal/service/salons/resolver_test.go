package salons

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/store"
)

type fakeDirectory struct {
	salonBySlugFn func(ctx context.Context, slug string) (domain.Salon, error)
}

func (f *fakeDirectory) SalonBySlug(ctx context.Context, slug string) (domain.Salon, error) {
	if f.salonBySlugFn == nil {
		panic("SalonBySlug not configured")
	}
	return f.salonBySlugFn(ctx, slug)
}

func (f *fakeDirectory) ServiceForSalon(context.Context, uuid.UUID, uuid.UUID) (domain.Service, error) {
	panic("ServiceForSalon not configured")
}

func (f *fakeDirectory) ListServices(context.Context, uuid.UUID) ([]domain.Service, error) {
	panic("ListServices not configured")
}

func TestResolve_LoadsSalonZone(t *testing.T) {
	r := NewResolver(&fakeDirectory{
		salonBySlugFn: func(ctx context.Context, slug string) (domain.Salon, error) {
			return domain.Salon{ID: uuid.New(), Slug: slug, Timezone: "Pacific/Auckland"}, nil
		},
	}, "")

	s, err := r.Resolve(context.Background(), " studio ")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if s.Slug != "studio" {
		t.Fatalf("slug = %q, want studio", s.Slug)
	}
	if s.Location.String() != "Pacific/Auckland" {
		t.Fatalf("location = %s, want Pacific/Auckland", s.Location)
	}
}

func TestResolve_FallsBackToDefaultZone(t *testing.T) {
	r := NewResolver(&fakeDirectory{
		salonBySlugFn: func(ctx context.Context, slug string) (domain.Salon, error) {
			return domain.Salon{ID: uuid.New(), Slug: slug, Timezone: "Not/AZone"}, nil
		},
	}, "America/New_York")

	s, err := r.Resolve(context.Background(), "studio")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if s.Location.String() != "America/New_York" {
		t.Fatalf("location = %s, want America/New_York", s.Location)
	}
}

func TestResolve_MapsNotFound(t *testing.T) {
	r := NewResolver(&fakeDirectory{
		salonBySlugFn: func(ctx context.Context, slug string) (domain.Salon, error) {
			return domain.Salon{}, store.ErrNotFound
		},
	}, "")

	_, err := r.Resolve(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSalonNotFound) {
		t.Fatalf("err = %v, want %v", err, domain.ErrSalonNotFound)
	}
}

func TestResolve_RequiresSlug(t *testing.T) {
	r := NewResolver(&fakeDirectory{}, "")

	_, err := r.Resolve(context.Background(), "  ")
	rej, ok := domain.AsRejection(err)
	if !ok || rej.Reason != domain.ReasonInvalidArgument {
		t.Fatalf("err = %v, want INVALID_ARGUMENT rejection", err)
	}
}

func TestResolve_WrapsInfrastructureErrors(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewResolver(&fakeDirectory{
		salonBySlugFn: func(ctx context.Context, slug string) (domain.Salon, error) {
			return domain.Salon{}, boom
		},
	}, "")

	_, err := r.Resolve(context.Background(), "studio")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if _, ok := domain.AsRejection(err); ok {
		t.Fatalf("infrastructure error must not be a rejection")
	}
}

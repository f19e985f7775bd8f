package leases

import (
	"context"
	"fmt"
	"time"

	"github.com/parklane-pm/parklane/internal/shared"
)

// Service applies lease business rules over the repository.
type Service struct {
	repo Repository
}

// NewService constructs the lease service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns leases matching the filters plus the unfiltered-total for
// pagination.
func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Lease, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 25
	}
	return s.repo.List(ctx, filters)
}

// Get fetches a single lease.
func (s *Service) Get(ctx context.Context, id int64) (Lease, error) {
	if id <= 0 {
		return Lease{}, fmt.Errorf("%w: invalid lease id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new lease.
func (s *Service) Create(ctx context.Context, input CreateLeaseInput) (Lease, error) {
	if err := validateInput(input); err != nil {
		return Lease{}, err
	}
	start, end, err := parseLeaseDates(input.StartDate, input.EndDate)
	if err != nil {
		return Lease{}, err
	}
	lease := Lease{
		LeaseNumber: input.LeaseNumber,
		TenantID:    input.TenantID,
		UnitID:      input.UnitID,
		StartDate:   start,
		EndDate:     end,
		MonthlyRent: input.MonthlyRent,
		DepositHeld: input.DepositHeld,
	}
	return s.repo.Create(ctx, lease)
}

// Update validates and applies changes to an existing lease.
func (s *Service) Update(ctx context.Context, id int64, input UpdateLeaseInput) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid lease id", shared.ErrValidation)
	}
	if err := validateInput(input); err != nil {
		return err
	}
	start, end, err := parseLeaseDates(input.StartDate, input.EndDate)
	if err != nil {
		return err
	}
	lease := Lease{
		LeaseNumber: input.LeaseNumber,
		StartDate:   start,
		EndDate:     end,
		MonthlyRent: input.MonthlyRent,
		DepositHeld: input.DepositHeld,
	}
	return s.repo.Update(ctx, id, lease)
}

// Delete removes a lease.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid lease id", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func parseLeaseDates(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start_date", shared.ErrValidation)
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end_date", shared.ErrValidation)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", shared.ErrValidation)
	}
	return start, end, nil
}

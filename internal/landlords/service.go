package landlords

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/parklane-pm/parklane/internal/shared"
)

var validate = validator.New()

// Service applies landlord business rules over the repository.
type Service struct {
	repo Repository
}

// NewService constructs the landlord service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns landlords matching the filters.
func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Landlord, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 25
	}
	return s.repo.List(ctx, filters)
}

// Get fetches a single landlord.
func (s *Service) Get(ctx context.Context, id int64) (Landlord, error) {
	if id <= 0 {
		return Landlord{}, fmt.Errorf("%w: invalid landlord id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new landlord.
func (s *Service) Create(ctx context.Context, input LandlordInput) (Landlord, error) {
	if err := validateInput(input); err != nil {
		return Landlord{}, err
	}
	return s.repo.Create(ctx, Landlord{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	})
}

// Update validates and applies changes to a landlord.
func (s *Service) Update(ctx context.Context, id int64, input LandlordInput) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid landlord id", shared.ErrValidation)
	}
	if err := validateInput(input); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, Landlord{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	})
}

// Delete removes a landlord.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid landlord id", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func validateInput(input LandlordInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", shared.ErrValidation, err)
}

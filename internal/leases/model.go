// Package leases manages the lease register behind the rent and commission
// reports.
package leases

import "time"

// Lease represents one tenancy agreement on a unit.
type Lease struct {
	ID          int64     `json:"id"`
	LeaseNumber string    `json:"lease_number"`
	TenantID    int64     `json:"tenant_id"`
	TenantName  string    `json:"tenant_name,omitempty"`
	UnitID      int64     `json:"unit_id"`
	UnitLabel   string    `json:"unit_label,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MonthlyRent float64   `json:"monthly_rent"`
	DepositHeld float64   `json:"deposit_held"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateLeaseInput is the payload for creating a lease.
type CreateLeaseInput struct {
	LeaseNumber string  `json:"lease_number" validate:"required,max=32"`
	TenantID    int64   `json:"tenant_id" validate:"required,gt=0"`
	UnitID      int64   `json:"unit_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gte=0"`
	DepositHeld float64 `json:"deposit_held" validate:"gte=0"`
}

// UpdateLeaseInput is the payload for updating a lease.
type UpdateLeaseInput struct {
	LeaseNumber string  `json:"lease_number" validate:"required,max=32"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gte=0"`
	DepositHeld float64 `json:"deposit_held" validate:"gte=0"`
}

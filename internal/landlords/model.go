// Package landlords manages the landlord register that scopes the portfolio
// reports.
package landlords

import "time"

// Landlord represents a property owner whose portfolio the agency manages.
type Landlord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LandlordInput is the payload for creating or updating a landlord.
type LandlordInput struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

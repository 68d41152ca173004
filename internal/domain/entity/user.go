// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Currency represents the user's preferred display currency (ISO 4217 code).
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyBRL Currency = "BRL"
)

// User represents a user in the LedgerFlow system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Currency     Currency
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Currency:     CurrencyUSD,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

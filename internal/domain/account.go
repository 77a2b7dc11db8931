package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusClosed   AccountStatus = "closed"
)

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusClosed:
		return true
	}
	return false
}

// Privilege is the account tier that governs transfer limits.
type Privilege string

const (
	PrivilegePremium Privilege = "premium"
	PrivilegeGold    Privilege = "gold"
	PrivilegeSilver  Privilege = "silver"
)

func (p Privilege) IsValid() bool {
	switch p {
	case PrivilegePremium, PrivilegeGold, PrivilegeSilver:
		return true
	}
	return false
}

type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountNumber string
	Balance       decimal.Decimal
	Privilege     Privilege
	Status        AccountStatus
	PINHash       string
	Version       int64
	CreatedAt     time.Time
}

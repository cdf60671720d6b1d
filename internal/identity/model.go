package identity

import (
	"errors"
	"time"
)

// User represents an account holder. Accounts are provisioned out of band
// (there is no registration endpoint); this service only reads and updates
// them.
type User struct {
	ID                 int64
	Phone              string
	Password           string
	Email              string
	Name               string
	SubscriptionActive bool
	SubscriptionDue    *time.Time
}

// Profile is the subset of User exposed over the API.
type Profile struct {
	Name               string     `json:"nome"`
	Phone              string     `json:"whatsapp_number"`
	Email              string     `json:"email"`
	SubscriptionDue    *time.Time `json:"vencimento_assinatura"`
	SubscriptionActive bool       `json:"assinatura_ativa"`
}

// ProfileChanges carries the fields a profile update may touch. Nil means
// "leave unchanged".
type ProfileChanges struct {
	Email    *string
	Password *string
	Name     *string
}

var (
	// ErrInvalidPhoneFormat reports a login phone that does not match 55 + 10 digits.
	ErrInvalidPhoneFormat = errors.New("invalid phone format")
	// ErrUserNotFound reports a lookup that matched no user row.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword reports a credential mismatch.
	ErrWrongPassword = errors.New("wrong password")
	// ErrNothingToUpdate reports a profile update carrying no updatable field.
	ErrNothingToUpdate = errors.New("nothing to update")
)

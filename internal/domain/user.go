package domain

import (
	"strings"
	"time"
)

// UserRole represents the role of a user in the family.
type UserRole string

const (
	// CaregiverRole represents a parent or guardian who manages tasks and rewards.
	CaregiverRole UserRole = "caregiver"
	// ChildRole represents a child who completes tasks and redeems rewards.
	ChildRole UserRole = "child"
)

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	return r == CaregiverRole || r == ChildRole
}

// User represents a family member. Children carry a token balance; caregivers
// additionally hold a PIN protecting caregiver mode.
type User struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      UserRole     `json:"role"`
	Avatar    string       `json:"avatar,omitempty"`
	Balance   TokenBalance `json:"-"`
	PIN       *PIN         `json:"-"` // Never serialize the PIN hash
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewUser creates a user with a zero token balance.
func NewUser(name string, role UserRole) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Role:      role,
		Balance:   ZeroBalance(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsCaregiver returns true if the user has the caregiver role.
func (u *User) IsCaregiver() bool {
	return u.Role == CaregiverRole
}

// SetPIN hashes and assigns a PIN. Only caregivers may hold one.
func (u *User) SetPIN(raw string) error {
	if !u.IsCaregiver() {
		return NewValidationError("PIN_NOT_ALLOWED",
			"Only caregivers may hold a PIN", nil)
	}
	pin, err := NewPIN(raw)
	if err != nil {
		return err
	}
	u.PIN = &pin
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPIN checks raw against the stored PIN.
func (u *User) VerifyPIN(raw string) error {
	if u.PIN == nil {
		return NewAuthenticationError("PIN_NOT_SET", "No PIN is configured")
	}
	if !u.PIN.Verify(raw) {
		return NewAuthenticationError("PIN_MISMATCH", "PIN does not match")
	}
	return nil
}

// ChangePIN replaces the PIN after verifying the current one.
func (u *User) ChangePIN(current, next string) error {
	if u.PIN == nil {
		return NewAuthenticationError("PIN_NOT_SET", "No PIN is configured")
	}
	pin, err := u.PIN.Change(current, next)
	if err != nil {
		return err
	}
	u.PIN = &pin
	u.UpdatedAt = time.Now()
	return nil
}

// Validate validates the user data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("INVALID_NAME", "Name is required", map[string]interface{}{
			"field": "name",
		})
	}
	if !u.Role.IsValid() {
		return NewValidationError("INVALID_ROLE", "Role must be 'caregiver' or 'child'", map[string]interface{}{
			"field": "role",
			"value": u.Role,
		})
	}
	if u.PIN != nil && !u.IsCaregiver() {
		return NewValidationError("PIN_NOT_ALLOWED",
			"Only caregivers may hold a PIN", nil)
	}
	return nil
}

// CreateUserRequest represents the data needed to create a new user.
type CreateUserRequest struct {
	Name   string   `json:"name" binding:"required,min=1,max=100"`
	Role   UserRole `json:"role" binding:"required"`
	Avatar string   `json:"avatar,omitempty"`
	PIN    string   `json:"pin,omitempty"`
}

// VerifyPINRequest represents a caregiver-mode unlock attempt.
type VerifyPINRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

// ChangePINRequest represents a PIN change.
type ChangePINRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	CurrentPIN string `json:"current_pin" binding:"required"`
	NewPIN     string `json:"new_pin" binding:"required"`
}

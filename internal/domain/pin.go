package domain

import (
	"golang.org/x/crypto/bcrypt"
)

// pinHashCost is deliberately above bcrypt.DefaultCost; a 4-digit space is
// tiny, so the work factor carries the brute-force resistance.
const pinHashCost = 12

const pinLength = 4

// PIN wraps a bcrypt hash of a caregiver's 4-digit secret. The raw value is
// validated at creation and never retained.
type PIN struct {
	hash string
}

// NewPIN hashes a raw 4-digit numeric PIN.
func NewPIN(raw string) (PIN, error) {
	if err := validateRawPIN(raw); err != nil {
		return PIN{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), pinHashCost)
	if err != nil {
		return PIN{}, NewInternalError("PIN_HASH_FAILED", "Failed to hash PIN", err)
	}
	return PIN{hash: string(hash)}, nil
}

// PINFromHash rebuilds a PIN value from a previously stored hash.
func PINFromHash(hash string) (PIN, error) {
	if hash == "" {
		return PIN{}, NewValidationError("EMPTY_PIN_HASH", "PIN hash is required", nil)
	}
	return PIN{hash: hash}, nil
}

// Hash returns the stored bcrypt hash for persistence.
func (p PIN) Hash() string {
	return p.hash
}

// Verify reports whether raw matches the hashed PIN.
func (p PIN) Verify(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(raw)) == nil
}

// Change verifies the current PIN and returns a replacement hashed from next.
func (p PIN) Change(current, next string) (PIN, error) {
	if !p.Verify(current) {
		return PIN{}, NewAuthenticationError("PIN_MISMATCH", "Current PIN is incorrect")
	}
	return NewPIN(next)
}

func validateRawPIN(raw string) error {
	if len(raw) != pinLength {
		return NewValidationError("INVALID_PIN_LENGTH",
			"PIN must be exactly 4 digits", nil)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return NewValidationError("INVALID_PIN_FORMAT",
				"PIN must contain only digits", nil)
		}
	}
	return nil
}

package domain

// TokenBalance is an immutable token amount owned by a single user.
// The normal factory rejects negative amounts; the admin factory and
// AdminSubtract exist for corrective flows (e.g. reopening a task after its
// reward was already spent) and are the only paths to a negative balance.
type TokenBalance struct {
	amount int
}

// NewTokenBalance creates a balance, rejecting negative amounts.
func NewTokenBalance(amount int) (TokenBalance, error) {
	if amount < 0 {
		return TokenBalance{}, NewValidationError("NEGATIVE_BALANCE",
			"Token balance cannot be negative", map[string]interface{}{
				"amount": amount,
			})
	}
	return TokenBalance{amount: amount}, nil
}

// NewAdminTokenBalance creates a balance without the non-negative guard.
func NewAdminTokenBalance(amount int) TokenBalance {
	return TokenBalance{amount: amount}
}

// ZeroBalance returns an empty balance.
func ZeroBalance() TokenBalance {
	return TokenBalance{}
}

// Value returns the raw token amount.
func (b TokenBalance) Value() int {
	return b.amount
}

// Add returns a new balance credited by n.
func (b TokenBalance) Add(n int) (TokenBalance, error) {
	if n < 0 {
		return b, NewValidationError("NEGATIVE_CREDIT",
			"Cannot add a negative token amount", map[string]interface{}{
				"amount": n,
			})
	}
	return TokenBalance{amount: b.amount + n}, nil
}

// Subtract returns a new balance debited by n. The debit must not exceed the
// current amount.
func (b TokenBalance) Subtract(n int) (TokenBalance, error) {
	if n < 0 {
		return b, NewValidationError("NEGATIVE_DEBIT",
			"Cannot subtract a negative token amount", map[string]interface{}{
				"amount": n,
			})
	}
	if n > b.amount {
		return b, NewInsufficientTokensError(n, b.amount)
	}
	return TokenBalance{amount: b.amount - n}, nil
}

// AdminSubtract debits n and allows the result to go negative.
func (b TokenBalance) AdminSubtract(n int) (TokenBalance, error) {
	if n < 0 {
		return b, NewValidationError("NEGATIVE_DEBIT",
			"Cannot subtract a negative token amount", map[string]interface{}{
				"amount": n,
			})
	}
	return TokenBalance{amount: b.amount - n}, nil
}

// CanAfford reports whether the balance covers cost.
func (b TokenBalance) CanAfford(cost int) bool {
	return cost >= 0 && b.amount >= cost
}

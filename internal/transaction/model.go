package transaction

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction and decides the sign of its contribution to
// balances. The wire labels are the Portuguese values the frontend sends.
type Kind string

const (
	KindIncome  Kind = "receita"
	KindExpense Kind = "despesa"
)

// Transaction is a single income or expense record owned by one user.
// Amounts are stored non-negative; Kind implies the sign. Dates travel as
// ISO-8601 strings and are only parsed where a calendar month matters.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	Category    string          `json:"categoria"`
	Date        string          `json:"data"`
	Kind        Kind            `json:"tipo"`
	OwnerID     int64           `json:"userid"`
}

// Input carries the caller-supplied fields for create and update. Kind is
// ignored on update; the stored kind never changes.
type Input struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        string
	Kind        Kind
}

// ErrNotFound reports that no row matched the id/owner pair. A row owned by
// another user yields the same error, so callers cannot tell the two apart.
var ErrNotFound = errors.New("transaction not found")

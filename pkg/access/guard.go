// Package access restricts administrative ledger operations to a single operator account.
package access

import (
	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/proto"
)

// Guard holds the operator identity. It is fixed at construction and never changes.
type Guard struct {
	operator proto.Address
}

func NewGuard(operator proto.Address) (*Guard, error) {
	if operator.IsZero() {
		return nil, errs.NewValidationError("operator address is not set")
	}
	return &Guard{operator: operator}, nil
}

func (g *Guard) Operator() proto.Address {
	return g.operator
}

func (g *Guard) IsOperator(account proto.Address) bool {
	return account == g.operator
}

// RequireOperator fails with an AuthorizationError for any account except the operator.
func (g *Guard) RequireOperator(account proto.Address) error {
	if !g.IsOperator(account) {
		return errs.NewUnauthorizedError(account)
	}
	return nil
}

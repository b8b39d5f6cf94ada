package expression

import (
	"errors"
	"fmt"
)

// ErrIrreversible is returned when an expression has no automatic reversal.
var ErrIrreversible = errors.New("expression cannot be reversed")

// Reversible is implemented by expressions that can derive their own undo.
type Reversible interface {
	Expression
	Reverse() (Expression, error)
}

// Reverse returns the expression that undoes e.
func Reverse(e Expression) (Expression, error) {
	r, ok := e.(Reversible)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIrreversible, e.Kind())
	}
	return r.Reverse()
}

// ReverseAll reverses a sequence of expressions. The result runs in reverse order.
func ReverseAll(exprs []Expression) ([]Expression, error) {
	out := make([]Expression, 0, len(exprs))
	for i := len(exprs) - 1; i >= 0; i-- {
		rev, err := Reverse(exprs[i])
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i+1, err)
		}
		out = append(out, rev)
	}
	return out, nil
}

var (
	_ Reversible = (*CreateTable)(nil)
	_ Reversible = (*RenameTable)(nil)
	_ Reversible = (*CreateColumn)(nil)
	_ Reversible = (*RenameColumn)(nil)
	_ Reversible = (*CreateIndex)(nil)
	_ Reversible = (*CreateConstraint)(nil)
	_ Reversible = (*CreateForeignKey)(nil)
	_ Reversible = (*CreateSchema)(nil)
	_ Reversible = (*AlterSchema)(nil)
	_ Reversible = (*CreateSequence)(nil)
	_ Reversible = (*InsertData)(nil)
)

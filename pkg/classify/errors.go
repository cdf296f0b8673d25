package classify

import (
	"fmt"
)

type ErrPath = error

func NewPathError(path string, err error) ErrPath {
	return fmt.Errorf("invalid field path %q: %w", path, err)
}

type ErrExpr = error

func NewExprError(op string) ErrExpr {
	return fmt.Errorf("unknown comparison operator %q", op)
}

package crosstab

import (
	"fmt"
)

type ErrMalformedChain = error

func NewMalformedChainError(reason string) ErrMalformedChain {
	return fmt.Errorf("cannot cross-tabulate grouping result: %s", reason)
}

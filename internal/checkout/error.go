package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrPaymentLimitExceeded = errors.New("order total exceeds online payment limit")
	ErrPaymentFailed        = errors.New("payment already failed")
	ErrInsufficientStock    = errors.New("insufficient stock")
)

// StockShortfall names one cart line that live stock cannot cover.
type StockShortfall struct {
	Name      string
	Requested int
	Available int
}

// StockShortfallError lists every offending line so the client can show
// one consolidated message.
type StockShortfallError struct {
	Lines []StockShortfall
}

func (e *StockShortfallError) Error() string {
	names := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		names = append(names, fmt.Sprintf("%s (requested %d, available %d)",
			line.Name, line.Requested, line.Available))
	}
	return "insufficient stock: " + strings.Join(names, ", ")
}

func (e *StockShortfallError) Is(target error) bool {
	return target == ErrInsufficientStock
}

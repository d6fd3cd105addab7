package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidAmount   = errors.New("invalid amount")

	// ErrNothingToPayOut не ошибка хранилища, а сигнал "нечего выплачивать" (net payout <= 0).
	ErrNothingToPayOut = errors.New("nothing to pay out")
	ErrFundsLocked     = errors.New("funds are locked until scheme end date")
)

// PayoutRangeError произвольная сумма выплаты вне диапазона (0, Max].
type PayoutRangeError struct {
	Amount decimal.Decimal
	Max    decimal.Decimal
}

func NewPayoutRangeError(amount, maxAmount decimal.Decimal) error {
	return &PayoutRangeError{Amount: amount, Max: maxAmount}
}

func (e *PayoutRangeError) Error() string {
	return fmt.Sprintf("payout amount %s is out of range (0, %s]", e.Amount.String(), e.Max.String())
}

func (e *PayoutRangeError) Unwrap() error {
	return ErrInvalidAmount
}

// NewValidationError оборачивает описание ошибки валидации в ErrValidation.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest absolute difference between total debits and
// total credits that is still considered balanced.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// AmountScale is the number of decimal places money columns store.
const AmountScale int32 = 4

// ExchangeRateScale is the number of decimal places exchange rates store.
const ExchangeRateScale int32 = 8

// HasScale reports whether d fits in places decimal digits without rounding.
// Trailing zeros do not count, so 1.50000 fits a scale of 4.
func HasScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// BalanceType is the normal side of an account.
type BalanceType string

const (
	DebitNormal  BalanceType = "debit"
	CreditNormal BalanceType = "credit"
)

// IsBalanced reports whether |debit - credit| <= BalanceTolerance.
func IsBalanced(debit, credit decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThanOrEqual(BalanceTolerance)
}

// ValidateLineAmounts enforces the debit xor credit rule of a single line:
// exactly one side is positive and the other is exactly zero. Neither may be
// negative or carry more than AmountScale decimal places.
func ValidateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("amounts must not be negative (debit %s, credit %s)", debit, credit)
	}
	if debit.IsPositive() && credit.IsPositive() {
		return fmt.Errorf("line cannot carry both a debit (%s) and a credit (%s)", debit, credit)
	}
	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("line must carry either a debit or a credit amount")
	}
	if !HasScale(debit, AmountScale) || !HasScale(credit, AmountScale) {
		return fmt.Errorf("amounts allow at most %d decimal places (debit %s, credit %s)", AmountScale, debit, credit)
	}
	return nil
}

// SignedNet returns the balance of an account as seen from its normal side.
// Debit-normal accounts (assets, expenses) grow with debits, credit-normal
// accounts (liabilities, equity, revenue) grow with credits.
func SignedNet(balanceType BalanceType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch balanceType {
	case DebitNormal:
		return debit.Sub(credit), nil
	case CreditNormal:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown balance type '%s'", balanceType)
	}
}

// Package finance implements the derivation rules shared by every
// money-tracking resource: a planned amount and a paid amount always
// determine the balance and the fulfillment status.
package finance

import "github.com/shopspring/decimal"

// Status classifies how far a planned amount has been paid off.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPartial   Status = "partial"
	StatusFulfilled Status = "fulfilled"
)

// Derive computes the balance and status for a planned and a paid amount.
//
// The balance is planned minus paid and is not clamped, an overpaid
// resource has a negative balance.
//
// A resource is fulfilled when the paid amount covers a positive planned
// amount, partial when something but not everything has been paid, and
// pending otherwise. A resource with a planned amount of zero is always
// pending.
func Derive(planned, paid decimal.Decimal) (decimal.Decimal, Status) {
	balance := planned.Sub(paid)

	if planned.IsPositive() && paid.GreaterThanOrEqual(planned) {
		return balance, StatusFulfilled
	}

	if paid.IsPositive() && paid.LessThan(planned) {
		return balance, StatusPartial
	}

	return balance, StatusPending
}

package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Wedding errors
var ErrWeddingCurrencyInvalid = errors.New("the wedding currency must be a valid ISO 4217 code")

// Budget errors
var (
	ErrBudgetSectionNameNotUnique = errors.New("the budget section name must be unique for the wedding")
	ErrBudgetItemNameNotUnique    = errors.New("the budget item name must be unique for the section")
)

// Pledge errors
var ErrPledgeAmountNotPositive = errors.New("the pledged amount must be larger than zero")

// Cash ledger errors
var (
	ErrCashEntryAmountNotPositive = errors.New("the cash entry amount must be larger than zero")
	ErrCashEntrySourceTypeInvalid = errors.New("the cash entry source type must be one of pledge, gift, other")
	ErrCashEntryImmutable         = errors.New("cash entries mirroring pledge payments cannot be changed or deleted")
	ErrCashEntryReferenceMissing  = errors.New("cash entries mirroring pledge payments must reference the pledge")
)

// Vendor contract errors
var ErrVendorContractAmountNegative = errors.New("the contract amount must not be negative")

// Expenditure errors
var ErrExpenditureAmountNotPositive = errors.New("the expenditure amount must be larger than zero")

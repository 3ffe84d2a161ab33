package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrExpenseNotFound is returned both for missing expenses and for expenses of another owner.
var ErrExpenseNotFound = errors.New("expense not found")

// MaxAmount is the largest amount a single expense may carry.
var MaxAmount = decimal.New(1, 12)

// Expense is one ledger record. Date is kept exactly as submitted; it is compared and
// grouped as a string.
type Expense struct {
	Id          int
	Amount      decimal.Decimal
	Description string
	CategoryId  int
	Date        string
	OwnerId     int
	CreatedAt   time.Time
}

// Update holds the fields of a partial update; nil fields are left unchanged.
type Update struct {
	Amount      *decimal.Decimal
	Description *string
	CategoryId  *int
	Date        *string
}

func (u Update) IsEmpty() bool {
	return u.Amount == nil && u.Description == nil && u.CategoryId == nil && u.Date == nil
}

func (u Update) apply(e Expense) Expense {
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.CategoryId != nil {
		e.CategoryId = *u.CategoryId
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	return e
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// IsValidDate reports whether s is an ISO-8601 date or date-time.
func IsValidDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

package event_bus

import "github.com/shopspring/decimal"

const (
	ExpenseCreated  EventType = "expense.created"
	ExpenseUpdated  EventType = "expense.updated"
	ExpenseDeleted  EventType = "expense.deleted"
	CategoryDeleted EventType = "category.deleted"
)

// ExpenseChanged is the payload of every expense.* event.
type ExpenseChanged struct {
	Id         int
	OwnerId    int
	CategoryId int
	Amount     decimal.Decimal
	Date       string
}

type CategoryRemoved struct {
	Id      int
	OwnerId int
	Name    string
}

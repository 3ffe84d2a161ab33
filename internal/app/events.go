package app

import (
	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/pkg/expense"
	log "github.com/sirupsen/logrus"
)

// SubscribeLedgerEvents registers the audit log for ledger changes and reports how many
// expenses lose their category when one is deleted.
func SubscribeLedgerEvents(bus *event_bus.EventBus, expenses expense.Repository) {
	audit := func(e event_bus.EventT[event_bus.ExpenseChanged]) error {
		log.WithFields(log.Fields{
			"event":      e.Type,
			"expenseId":  e.Data.Id,
			"userId":     e.Data.OwnerId,
			"categoryId": e.Data.CategoryId,
			"amount":     e.Data.Amount.String(),
			"date":       e.Data.Date,
		}).Info("ledger changed")
		return nil
	}
	for _, eventType := range []event_bus.EventType{event_bus.ExpenseCreated, event_bus.ExpenseUpdated, event_bus.ExpenseDeleted} {
		event_bus.SubscribeTyped(bus, eventType, audit)
	}

	event_bus.SubscribeTyped(bus, event_bus.CategoryDeleted, func(e event_bus.EventT[event_bus.CategoryRemoved]) error {
		orphaned, err := expenses.CountByCategory(e.Context(), e.Data.OwnerId, e.Data.Id)
		if err != nil {
			return err
		}
		fields := log.Fields{"categoryId": e.Data.Id, "category": e.Data.Name, "userId": e.Data.OwnerId, "orphanedExpenses": orphaned}
		if orphaned > 0 {
			log.WithFields(fields).Warn("category deleted, its expenses are left without category")
		} else {
			log.WithFields(fields).Info("category deleted")
		}
		return nil
	})
}

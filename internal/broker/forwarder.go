package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spendwise/spendwise/internal/event_bus"
)

// LedgerMessage is the body published for every ledger event. Amounts are decimal strings.
type LedgerMessage struct {
	Event      event_bus.EventType `json:"event"`
	OccurredAt time.Time           `json:"occurredAt"`
	UserId     int                 `json:"userId"`
	ExpenseId  int                 `json:"expenseId,omitempty"`
	CategoryId int                 `json:"categoryId"`
	Amount     string              `json:"amount,omitempty"`
	Date       string              `json:"date,omitempty"`
	Name       string              `json:"name,omitempty"`
}

type sink interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Forward republishes ledger events from bus to the broker, using the event type as
// routing key. The returned function stops forwarding.
func Forward(bus *event_bus.EventBus, publisher sink) (stop func()) {
	send := func(e event_bus.Event, msg LedgerMessage) error {
		body, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return publisher.Publish(context.WithoutCancel(e.Context()), string(e.Type), body)
	}

	expenseChanged := func(e event_bus.EventT[event_bus.ExpenseChanged]) error {
		return send(e.Event, LedgerMessage{
			Event:      e.Type,
			OccurredAt: e.Timestamp,
			UserId:     e.Data.OwnerId,
			ExpenseId:  e.Data.Id,
			CategoryId: e.Data.CategoryId,
			Amount:     e.Data.Amount.String(),
			Date:       e.Data.Date,
		})
	}

	var unsubscribe []func()
	for _, eventType := range []event_bus.EventType{event_bus.ExpenseCreated, event_bus.ExpenseUpdated, event_bus.ExpenseDeleted} {
		unsubscribe = append(unsubscribe, event_bus.SubscribeTyped(bus, eventType, expenseChanged))
	}
	unsubscribe = append(unsubscribe, event_bus.SubscribeTyped(bus, event_bus.CategoryDeleted,
		func(e event_bus.EventT[event_bus.CategoryRemoved]) error {
			return send(e.Event, LedgerMessage{
				Event:      e.Type,
				OccurredAt: e.Timestamp,
				UserId:     e.Data.OwnerId,
				CategoryId: e.Data.Id,
				Name:       e.Data.Name,
			})
		}))

	return func() {
		for _, u := range unsubscribe {
			u()
		}
	}
}

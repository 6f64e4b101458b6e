package notify

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/you/eventpass/internal/events"
	"github.com/you/eventpass/pkg/logger"
	"github.com/you/eventpass/pkg/mq"
)

// Worker consumes ticketing events and turns them into operator
// notifications.
type Worker struct {
	consumer *mq.Consumer
	notifier Notifier
	log      logger.Logger
}

func NewWorker(consumer *mq.Consumer, notifier Notifier, log logger.Logger) *Worker {
	return &Worker{consumer: consumer, notifier: notifier, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.consumer.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handleDelivery(d); err != nil {
				w.log.Warn("handle event failed", "key", d.RoutingKey, "error", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKTicketIssued:
		ev, err := events.Decode[events.TicketIssued](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Ticket issued",
			fmt.Sprintf("Ticket %s for event %s (x%d)", ev.TicketID, ev.EventID, ev.Quantity))

	case events.RKBookingCreated:
		ev, err := events.Decode[events.BookingCreated](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Booking created",
			fmt.Sprintf("%d pending booking(s) awaiting payment (txn=%s)", len(ev.BookingIDs), ev.TransactionID))

	case events.RKBookingConfirmed:
		ev, err := events.Decode[events.BookingConfirmed](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Booking confirmed",
			fmt.Sprintf("Booking(s) %s confirmed.", strings.Join(ev.BookingIDs, ", ")))

	case events.RKPaymentSettled:
		ev, err := events.Decode[events.PaymentSettled](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Payment settled",
			fmt.Sprintf("Transaction %s settled for %s.", ev.TransactionID, money(ev.Amount, ev.Currency)))

	default:
		w.log.Debug("skip unknown event", "key", d.RoutingKey)
	}
	return nil
}

package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/myevents"
)

const (
	TopicName             = "checkout"
	checkoutCompletedName = TopicName + ".completed"
)

type CheckoutEventService interface {
	OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutCompletedName:
		{
			event := CheckoutCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutCompleted(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("event %s not supported", envelope.EventTypeName))
	}
}

// CheckoutCompleted is published right after an order has been persisted and
// its basket frozen. Subscribers (fulfilment, analytics, the basket service)
// must treat it as at-least-once.
type CheckoutCompleted struct {
	OrderNumber  string
	BasketUID    string
	UserUID      string
	GuestEmail   string
	Currency     string
	TotalInclTax string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.BasketUID
}

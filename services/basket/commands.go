package basket

import (
	"context"
	"fmt"
	"sort"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/services/basket/basketevents"
	"github.com/qusiemahm/django-oscar-api/services/checkoutevents"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

func (s *service) listBaskets(c context.Context, actor identity.Actor) ([]Basket, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch baskets of %s", actor.UserUID)

	baskets, err := s.basketStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	accessible := make([]Basket, 0, len(baskets))
	for _, b := range baskets {
		if b.AccessibleBy(actor) {
			accessible = append(accessible, b)
		}
	}

	sort.Slice(accessible, func(i, j int) bool {
		return accessible[i].CreatedAt.After(accessible[j].CreatedAt)
	})

	return accessible, nil
}

func (s *service) createBasket(c context.Context, actor identity.Actor, currency string) (Basket, error) {
	basketUID := s.uuider.Create()
	basket := Basket{
		UID:        basketUID,
		OwnerUID:   actor.UserUID,
		SessionUID: actor.SessionUID,
		Status:     StatusOpen,
		Currency:   currency,
		Lines:      []Line{},
		CreatedAt:  s.nower.Now(),
	}

	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Creating new basket with uid %s", basketUID)

	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		err := s.basketStore.Put(c, basketUID, basket)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.BasketCreated{
			BasketUID: basketUID,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	return basket, nil
}

func (s *service) basketWithUID(c context.Context, actor identity.Actor, basketUID string) (Basket, error) {
	basket, found, err := s.basketStore.Get(c, basketUID)
	if err != nil {
		return Basket{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Basket{}, myerrors.NewNotFoundError(fmt.Errorf("basket with uid %s not found", basketUID))
	}
	if !basket.AccessibleBy(actor) {
		return Basket{}, myerrors.NewUnauthorizedError(fmt.Errorf("basket %s is not accessible", basketUID))
	}

	return basket, nil
}

func (s *service) addLine(c context.Context, actor identity.Actor, basketUID string, line Line) (Basket, error) {
	if line.Quantity <= 0 {
		return Basket{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", line.Quantity)
	}

	var updated Basket
	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		basket, err := s.basketWithUID(c, actor, basketUID)
		if err != nil {
			return err
		}

		if !basket.IsOpen() {
			return myerrors.NewNotAcceptableError(fmt.Errorf("basket %s is %s and can no longer be changed", basketUID, basket.Status))
		}

		basket.Lines = append(basket.Lines, line)
		updated = basket

		err = s.basketStore.Put(c, basketUID, basket)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Added %d x %s to basket %s", line.Quantity, line.ProductUID, basketUID)

	return updated, nil
}

// OnCheckoutCompleted marks the basket as submitted and stamps the order
// number. The basket was already frozen at placement, this is bookkeeping.
func (s *service) OnCheckoutCompleted(c context.Context, topic string, event checkoutevents.CheckoutCompleted) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityInfo, "Basket %s resulted in order %s", event.BasketUID, event.OrderNumber)

	return s.basketStore.RunInTransaction(c, func(c context.Context) error {
		basket, found, err := s.basketStore.Get(c, event.BasketUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("basket with uid %s not found", event.BasketUID))
		}

		basket.Status = StatusSubmitted
		basket.OrderNumber = event.OrderNumber

		err = s.basketStore.Put(c, event.BasketUID, basket)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
}

package ordering

import (
	"context"
	"fmt"
	"sort"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/checkoutevents"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

// Place persists the order, freezes the basket and publishes the completion
// event, all within a single transaction. The basket status and the order
// number are re-checked here: they are the only facts that can change between
// validation and placement.
func (s *Service) Place(c context.Context, cmd PlaceOrderCommand) (Order, error) {
	orderNumber := GenerateOrderNumber(cmd.Basket.UID)

	var order Order
	err := s.orderStore.RunInTransaction(c, func(c context.Context) error {
		b, found, err := s.basketStore.Get(c, cmd.Basket.UID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("basket with uid %s not found", cmd.Basket.UID))
		}
		if !b.IsOpen() {
			return myerrors.NewConflictError(fmt.Errorf("basket %s is %s: an order has already been placed for it", b.UID, b.Status))
		}

		_, exists, err := s.orderStore.Get(c, orderNumber)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if exists {
			return myerrors.NewConflictError(fmt.Errorf("order %s already exists", orderNumber))
		}

		order = Order{
			Number:             orderNumber,
			BasketUID:          b.UID,
			UserUID:            cmd.Actor.UserUID,
			SessionUID:         cmd.Actor.SessionUID,
			GuestEmail:         cmd.GuestEmail,
			Status:             cmd.Status,
			Currency:           b.Currency,
			Lines:              append([]basket.Line{}, b.Lines...),
			ShippingMethodCode: cmd.ShippingMethodCode,
			ShippingMethodName: cmd.ShippingMethodName,
			ShippingCharge:     cmd.ShippingCharge,
			Total:              cmd.Total,
			ShippingAddress:    copyAddress(cmd.ShippingAddress),
			BillingAddress:     copyAddress(cmd.BillingAddress),
			VehicleUID:         cmd.VehicleUID,
			PlacedAt:           s.nower.Now(),
		}

		err = s.orderStore.Put(c, orderNumber, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		b.Status = basket.StatusFrozen
		err = s.basketStore.Put(c, b.UID, b)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			OrderNumber:  orderNumber,
			BasketUID:    b.UID,
			UserUID:      cmd.Actor.UserUID,
			GuestEmail:   cmd.GuestEmail,
			Currency:     order.Total.Currency,
			TotalInclTax: order.Total.InclTax().StringFixed(2),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.Log(c, order.Number, mylog.SeverityInfo, "Placed order %s for basket %s", order.Number, order.BasketUID)

	return order, nil
}

func (s *Service) listOrders(c context.Context, actor identity.Actor, statusFilter string) ([]Order, error) {
	orders, err := s.orderStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	accessible := make([]Order, 0, len(orders))
	for _, o := range orders {
		if !o.AccessibleBy(actor) {
			continue
		}
		if statusFilter != "" && o.Status != statusFilter {
			continue
		}
		accessible = append(accessible, o)
	}

	sort.Slice(accessible, func(i, j int) bool {
		return accessible[i].PlacedAt.After(accessible[j].PlacedAt)
	})

	return accessible, nil
}

func (s *Service) orderWithNumber(c context.Context, actor identity.Actor, orderNumber string) (Order, error) {
	order, found, err := s.orderStore.Get(c, orderNumber)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}
	// Do not leak existence of other users their orders
	if !found || !order.AccessibleBy(actor) {
		return Order{}, myerrors.NewNotFoundError(fmt.Errorf("order with number %s not found", orderNumber))
	}

	return order, nil
}

func copyAddress(a *address.Address) *address.Address {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}

package checkout

import (
	"context"
	"fmt"
	"net/http"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mymetrics"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/identity"
	"github.com/qusiemahm/django-oscar-api/services/ordering"
	"github.com/qusiemahm/django-oscar-api/services/shipping"
)

// validate recomputes every amount the client asserted and authorizes or
// rejects the checkout. All asserted amounts are cross-checked against the
// server-computed ones: the client never gets to set a price.
func (s *service) validate(c context.Context, actor identity.Actor, intent Intent) (ValidatedIntent, error) {
	if actor.IsAnonymous() && !s.cfg.AllowAnonCheckout {
		return ValidatedIntent{}, myerrors.NewAuthenticationError(fmt.Errorf("anonymous checkout is disabled"))
	}

	b, err := s.accessibleBasket(c, actor, intent.BasketUID)
	if err != nil {
		return ValidatedIntent{}, err
	}

	if b.NumItems() <= 0 {
		return ValidatedIntent{}, ValidationErrors{
			{Field: "basket", Message: fmt.Sprintf("basket %s is empty", b.UID)},
		}
	}

	fieldErrors := ValidationErrors{}

	if actor.IsAnonymous() && intent.GuestEmail == "" {
		fieldErrors = append(fieldErrors, FieldError{
			Field: "guest_email", Message: "guest checkouts require an email address",
		})
	}

	method, err := s.resolveShippingMethod(c, b, actor, intent)
	if err != nil {
		return ValidatedIntent{}, err
	}

	shippingCharge := method.Calculate(b)
	if intent.AssertedShippingCharge != nil && !shippingCharge.Equals(*intent.AssertedShippingCharge) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:    "shipping_charge",
			Message:  "asserted shipping charge does not match the computed charge",
			Expected: shippingCharge.String(),
			Actual:   intent.AssertedShippingCharge.String(),
		})
	}

	total := b.Total().Add(shippingCharge)
	if intent.AssertedTotal != nil && !total.InclTax().Equal(intent.AssertedTotal.InclTax()) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:    "total",
			Message:  "asserted total does not match the computed total",
			Expected: total.InclTax().StringFixed(2),
			Actual:   intent.AssertedTotal.InclTax().StringFixed(2),
		})
	}

	if len(fieldErrors) > 0 {
		return ValidatedIntent{}, fieldErrors
	}

	if intent.VehicleUID != "" {
		err := s.checkVehicleOwnership(c, actor, intent.VehicleUID)
		if err != nil {
			return ValidatedIntent{}, err
		}
	}

	return ValidatedIntent{
		Basket:          b,
		Actor:           actor,
		GuestEmail:      intent.GuestEmail,
		ShippingMethod:  method,
		ShippingCharge:  shippingCharge,
		Total:           total,
		ShippingAddress: intent.ShippingAddress,
		BillingAddress:  intent.BillingAddress,
		VehicleUID:      intent.VehicleUID,
	}, nil
}

// checkout runs validation and hands the result to the order placer. The
// placer owns the freeze of the basket: it happens atomically with the order
// insert, so at most one order per basket can ever come into existence.
func (s *service) checkout(c context.Context, actor identity.Actor, intent Intent) (ordering.Order, error) {
	validated, err := s.validate(c, actor, intent)
	if err != nil {
		mymetrics.CheckoutAttempts.WithLabelValues(outcomeForError(err)).Inc()
		return ordering.Order{}, err
	}

	order, err := s.placer.Place(c, ordering.PlaceOrderCommand{
		Basket:             validated.Basket,
		Actor:              validated.Actor,
		GuestEmail:         validated.GuestEmail,
		Status:             s.cfg.InitialOrderStatus,
		ShippingMethodCode: validated.ShippingMethod.Code,
		ShippingMethodName: validated.ShippingMethod.Name,
		ShippingCharge:     validated.ShippingCharge,
		Total:              validated.Total,
		ShippingAddress:    validated.ShippingAddress,
		BillingAddress:     validated.BillingAddress,
		VehicleUID:         validated.VehicleUID,
	})
	if err != nil {
		mymetrics.CheckoutAttempts.WithLabelValues(outcomeForError(err)).Inc()
		return ordering.Order{}, err
	}

	mymetrics.CheckoutAttempts.WithLabelValues(mymetrics.OutcomeSuccess).Inc()
	mymetrics.OrdersPlaced.Inc()

	s.logger.Log(c, order.Number, mylog.SeverityInfo, "Checkout of basket %s completed: order %s", order.BasketUID, order.Number)

	return order, nil
}

func (s *service) accessibleBasket(c context.Context, actor identity.Actor, basketUID string) (basket.Basket, error) {
	if basketUID == "" {
		return basket.Basket{}, myerrors.NewInvalidInputErrorf("missing basket")
	}

	b, found, err := s.basketStore.Get(c, basketUID)
	if err != nil {
		return basket.Basket{}, myerrors.NewInternalError(err)
	}
	if !found {
		return basket.Basket{}, myerrors.NewNotFoundError(fmt.Errorf("basket with uid %s not found", basketUID))
	}
	if !b.AccessibleBy(actor) {
		return basket.Basket{}, myerrors.NewUnauthorizedError(fmt.Errorf("basket %s is not accessible", basketUID))
	}

	return b, nil
}

func (s *service) resolveShippingMethod(c context.Context, b basket.Basket, actor identity.Actor, intent Intent) (shipping.Method, error) {
	deflt, err := s.shippingRepo.DefaultMethod(c, b, actor, intent.ShippingAddress)
	if err != nil {
		return shipping.Method{}, err
	}

	if intent.ShippingMethodCode == "" {
		return deflt, nil
	}

	candidates, err := s.shippingRepo.Methods(c, b, actor, intent.ShippingAddress)
	if err != nil {
		return shipping.Method{}, err
	}

	method := shipping.Resolve(candidates, intent.ShippingMethodCode, deflt)
	if method.Code != intent.ShippingMethodCode {
		// Longstanding behavior: an unknown code silently gets the default
		// method instead of an error. Kept as-is, but worth a warning.
		s.logger.Log(c, b.UID, mylog.SeverityWarn, "Requested shipping method %s not available for basket %s, falling back to %s", intent.ShippingMethodCode, b.UID, method.Code)
	}

	return method, nil
}

func (s *service) checkVehicleOwnership(c context.Context, actor identity.Actor, vehicleUID string) error {
	v, found, err := s.vehicleStore.Get(c, vehicleUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	if !found {
		return myerrors.NewNotFoundError(fmt.Errorf("vehicle with uid %s not found", vehicleUID))
	}
	if !v.OwnedBy(actor.UserUID) {
		return myerrors.NewAuthenticationError(fmt.Errorf("vehicle %s does not belong to this user", vehicleUID))
	}

	return nil
}

func outcomeForError(err error) string {
	switch myerrors.GetHTTPStatus(err) {
	case http.StatusForbidden:
		return mymetrics.OutcomeForbidden
	case http.StatusUnauthorized:
		return mymetrics.OutcomeNoAccess
	case http.StatusNotFound:
		return mymetrics.OutcomeNoBasket
	case http.StatusNotAcceptable:
		return mymetrics.OutcomeRejected
	case http.StatusConflict:
		return mymetrics.OutcomeConflict
	default:
		return mymetrics.OutcomeErrored
	}
}

package ordering

import (
	"time"

	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/identity"
	"github.com/qusiemahm/django-oscar-api/services/prices"
)

// Order is the immutable result of a successful checkout. Lines and addresses
// are copied in at placement time: later changes to the basket or to the
// customer's address book never show up here.
type Order struct {
	Number     string `json:"number"`
	BasketUID  string `json:"basket_uid"`
	UserUID    string `json:"user_uid,omitempty"`
	SessionUID string `json:"session_uid,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	Status     string `json:"status"`

	Currency string        `json:"currency"`
	Lines    []basket.Line `json:"lines"`

	ShippingMethodCode string       `json:"shipping_method_code"`
	ShippingMethodName string       `json:"shipping_method_name"`
	ShippingCharge     prices.Price `json:"shipping_charge"`
	Total              prices.Price `json:"total"`

	ShippingAddress *address.Address `json:"shipping_address,omitempty"`
	BillingAddress  *address.Address `json:"billing_address,omitempty"`

	VehicleUID string `json:"vehicle_uid,omitempty"`

	PlacedAt time.Time `json:"placed_at"`
}

func (o Order) AccessibleBy(actor identity.Actor) bool {
	if o.UserUID != "" {
		return o.UserUID == actor.UserUID
	}

	return o.SessionUID != "" && o.SessionUID == actor.SessionUID
}

// PlaceOrderCommand carries everything the validator established. Placement
// itself re-checks only what can change concurrently: the basket status and
// the order-number uniqueness.
type PlaceOrderCommand struct {
	Basket     basket.Basket
	Actor      identity.Actor
	GuestEmail string
	Status     string

	ShippingMethodCode string
	ShippingMethodName string
	ShippingCharge     prices.Price
	Total              prices.Price

	ShippingAddress *address.Address
	BillingAddress  *address.Address

	VehicleUID string
}

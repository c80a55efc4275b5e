package checkout

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/identity"
	"github.com/qusiemahm/django-oscar-api/services/prices"
	"github.com/qusiemahm/django-oscar-api/services/shipping"
)

// Config holds the behavior toggles of the checkout service. They are passed
// in at construction, never read from ambient global state.
type Config struct {
	// AllowAnonCheckout permits guests (no user uid) to place orders
	AllowAnonCheckout bool
	// InitialOrderStatus is stamped on every newly placed order
	InitialOrderStatus string
}

// Intent is the client's checkout request after wire parsing. All asserted
// amounts are optional: present ones are cross-checked against the
// server-computed values, absent ones are simply not checked.
type Intent struct {
	BasketUID          string
	GuestEmail         string
	ShippingMethodCode string

	ShippingAddress *address.Address
	BillingAddress  *address.Address

	AssertedShippingCharge *prices.Price
	AssertedTotal          *prices.Price

	VehicleUID string
}

// ValidatedIntent is the outcome of a successful validation: every amount in
// it is authoritative, computed server-side.
type ValidatedIntent struct {
	Basket     basket.Basket
	Actor      identity.Actor
	GuestEmail string

	ShippingMethod shipping.Method
	ShippingCharge prices.Price
	Total          prices.Price

	ShippingAddress *address.Address
	BillingAddress  *address.Address

	VehicleUID string
}

// FieldError reports a single rejected field. For price mismatches both the
// expected (computed) and actual (asserted) values are echoed so the client
// can resubmit with corrected data.
type FieldError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// ValidationErrors is the collected set of field errors of one validation
// run. It maps onto http status 406 the way the original REST surface did.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("checkout rejected: %s", strings.Join(msgs, ", "))
}

func (ve ValidationErrors) GetHTTPErrorCode() int {
	return http.StatusNotAcceptable
}

func (ve ValidationErrors) ErrorFields() interface{} {
	return []FieldError(ve)
}

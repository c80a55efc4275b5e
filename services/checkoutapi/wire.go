package checkoutapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/shopspring/decimal"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/prices"
)

// CheckoutRequest is the client's claim of what it is buying and at what
// price. The server recomputes every amount and rejects the request when the
// claims do not match.
type CheckoutRequest struct {
	Basket             string       `json:"basket" form:"basket"`
	GuestEmail         string       `json:"guest_email" form:"guest_email"`
	Total              PriceData    `json:"total" form:"total"`
	ShippingCharge     PriceData    `json:"shipping_charge" form:"shipping_charge"`
	ShippingMethodCode string       `json:"shipping_method_code" form:"shipping_method_code"`
	VehicleUID         string       `json:"vehicle_uid" form:"vehicle_uid"`
	ShippingAddress    *AddressData `json:"shipping_address" form:"shipping_address"`
	BillingAddress     *AddressData `json:"billing_address" form:"billing_address"`
}

type PriceData struct {
	Currency string          `json:"currency" form:"currency"`
	ExclTax  decimal.Decimal `json:"excl_tax" form:"excl_tax"`
	Tax      decimal.Decimal `json:"tax" form:"tax"`
}

func (p PriceData) ToPrice() prices.Price {
	return prices.New(p.Currency, p.ExclTax, p.Tax)
}

type AddressData struct {
	Title       string `json:"title" form:"title"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	Line1       string `json:"line1" form:"line1"`
	Line2       string `json:"line2" form:"line2"`
	Line3       string `json:"line3" form:"line3"`
	Line4       string `json:"line4" form:"line4"`
	State       string `json:"state" form:"state"`
	Postcode    string `json:"postcode" form:"postcode"`
	Country     string `json:"country" form:"country"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	Notes       string `json:"notes" form:"notes"`
}

func (a *AddressData) ToAddress() *address.Address {
	if a == nil {
		return nil
	}
	return &address.Address{
		Title:       a.Title,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Line1:       a.Line1,
		Line2:       a.Line2,
		Line3:       a.Line3,
		Line4:       a.Line4,
		State:       a.State,
		Postcode:    a.Postcode,
		Country:     a.Country,
		PhoneNumber: a.PhoneNumber,
		Notes:       a.Notes,
	}
}

// BasketUID accepts both a bare uid and a resource URL like
// "https://host/api/basket/123/" and returns the uid.
func (r CheckoutRequest) BasketUID() string {
	uid := strings.TrimSuffix(r.Basket, "/")
	if idx := strings.LastIndex(uid, "/"); idx >= 0 {
		uid = uid[idx+1:]
	}
	return uid
}

var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	decoder := form.NewDecoder()
	decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return decimal.NewFromString(vals[0])
	}, decimal.Decimal{})
	return decoder
}

// NewFromRequest parses a checkout submission. Browsers post forms, API
// clients post JSON, both are supported.
func NewFromRequest(r *http.Request) (CheckoutRequest, error) {
	req := CheckoutRequest{}

	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing content type: %s", err))
	}

	switch contentType {
	case "application/json":
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err))
		}
	case "application/x-www-form-urlencoded":
		err := r.ParseForm()
		if err != nil {
			return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err))
		}
		err = formDecoder.Decode(&req, r.PostForm)
		if err != nil {
			return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err))
		}
	default:
		return req, myerrors.NewUnsupportedMediaTypeError(fmt.Errorf("unsupported content type %s", contentType))
	}

	return req, nil
}

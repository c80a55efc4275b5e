package checkoutapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasketUID(t *testing.T) {
	t.Run("Bare uid", func(t *testing.T) {
		assert.Equal(t, "123", CheckoutRequest{Basket: "123"}.BasketUID())
	})

	t.Run("Resource url", func(t *testing.T) {
		assert.Equal(t, "123", CheckoutRequest{Basket: "https://shop.example.com/api/basket/123/"}.BasketUID())
	})

	t.Run("Resource url without trailing slash", func(t *testing.T) {
		assert.Equal(t, "123", CheckoutRequest{Basket: "/api/basket/123"}.BasketUID())
	})
}

func TestNewFromRequest(t *testing.T) {

	t.Run("Parse json submission", func(t *testing.T) {
		body := `{
			"basket": "/api/basket/123/",
			"guest_email": "henk@example.com",
			"total": {"currency": "EUR", "excl_tax": "55.00", "tax": "5.30"},
			"shipping_charge": {"currency": "EUR", "excl_tax": "10.00", "tax": "0.60"},
			"shipping_method_code": "express",
			"shipping_address": {"first_name": "Henk", "last_name": "Van den Heuvel", "line1": "Roemerlaan 44", "postcode": "7777KK", "country": "NL"}
		}`
		request, _ := http.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")

		got, err := NewFromRequest(request)

		assert.NoError(t, err)
		assert.Equal(t, "123", got.BasketUID())
		assert.Equal(t, "henk@example.com", got.GuestEmail)
		assert.Equal(t, "express", got.ShippingMethodCode)
		assert.Equal(t, "55.00", got.Total.ExclTax.StringFixed(2))
		assert.Equal(t, "0.60", got.ShippingCharge.Tax.StringFixed(2))
		assert.Equal(t, "Henk", got.ShippingAddress.FirstName)
		assert.Nil(t, got.BillingAddress)
	})

	t.Run("Parse form submission", func(t *testing.T) {
		values := url.Values{}
		values.Set("basket", "123")
		values.Set("guest_email", "henk@example.com")
		values.Set("total.currency", "EUR")
		values.Set("total.excl_tax", "55.00")
		values.Set("total.tax", "5.30")
		values.Set("shipping_charge.currency", "EUR")
		values.Set("shipping_charge.excl_tax", "10.00")
		values.Set("shipping_charge.tax", "0.60")
		values.Set("shipping_address.first_name", "Henk")
		values.Set("shipping_address.country", "NL")

		request, _ := http.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(values.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := NewFromRequest(request)

		assert.NoError(t, err)
		assert.Equal(t, "123", got.BasketUID())
		assert.Equal(t, "EUR", got.Total.Currency)
		assert.Equal(t, "10.00", got.ShippingCharge.ExclTax.StringFixed(2))
		assert.Equal(t, "NL", got.ShippingAddress.Country)
	})

	t.Run("Unsupported content type", func(t *testing.T) {
		request, _ := http.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader("<checkout/>"))
		request.Header.Set("Content-Type", "text/xml")

		_, err := NewFromRequest(request)

		assert.Error(t, err)
	})

	t.Run("Malformed amount is rejected", func(t *testing.T) {
		body := `{"basket": "123", "total": {"currency": "EUR", "excl_tax": "not-a-number", "tax": "0"}}`
		request, _ := http.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")

		_, err := NewFromRequest(request)

		assert.Error(t, err)
	})
}

package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/prices"
)

// Method is a selectable fulfilment option with a price-calculation rule.
type Method struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Charge is the regular charge for this method.
	Charge prices.Price `json:"charge"`

	// FreeAbove waives the charge once the basket total (excl tax) reaches
	// the threshold. Nil means the charge always applies.
	FreeAbove *decimal.Decimal `json:"free_above,omitempty"`

	// Countries limits the destinations this method serves. Empty means all.
	Countries []string `json:"countries,omitempty"`
}

// Calculate computes the shipping charge for the given basket. It is pure:
// the same basket yields the same price on every call.
func (m Method) Calculate(b basket.Basket) prices.Price {
	if m.FreeAbove != nil && b.Total().ExclTax.GreaterThanOrEqual(*m.FreeAbove) {
		return prices.Zero(b.Currency)
	}

	return prices.New(b.Currency, m.Charge.ExclTax, m.Charge.Tax)
}

func (m Method) servesCountry(country string) bool {
	if len(m.Countries) == 0 {
		return true
	}
	for _, c := range m.Countries {
		if c == country {
			return true
		}
	}
	return false
}

// Resolve picks the method whose code matches the requested one. Without a
// requested code, or when no candidate matches, the default wins: a client
// asking for an unknown code silently gets the default method. First match
// wins, the order of candidates is authoritative.
func Resolve(candidates []Method, requestedCode string, deflt Method) Method {
	if requestedCode == "" {
		return deflt
	}

	for _, m := range candidates {
		if m.Code == requestedCode {
			return m
		}
	}

	return deflt
}

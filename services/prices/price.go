package prices

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a monetary amount split into an amount excluding tax and the tax
// itself. The tax-inclusive amount is always derived, never stored, so the
// invariant incl_tax == excl_tax + tax cannot drift.
type Price struct {
	Currency string          `json:"currency"`
	ExclTax  decimal.Decimal `json:"excl_tax"`
	Tax      decimal.Decimal `json:"tax"`
}

func New(currency string, exclTax decimal.Decimal, tax decimal.Decimal) Price {
	return Price{
		Currency: currency,
		ExclTax:  exclTax,
		Tax:      tax,
	}
}

func Zero(currency string) Price {
	return Price{
		Currency: currency,
		ExclTax:  decimal.Zero,
		Tax:      decimal.Zero,
	}
}

// InclTax returns the tax-inclusive amount, rounded to the currency's minor unit.
func (p Price) InclTax() decimal.Decimal {
	return p.ExclTax.Add(p.Tax).Round(2)
}

// Equals compares currency, excl-tax amount and tax exactly.
func (p Price) Equals(other Price) bool {
	return p.Currency == other.Currency &&
		p.ExclTax.Equal(other.ExclTax) &&
		p.Tax.Equal(other.Tax)
}

func (p Price) Add(other Price) Price {
	return Price{
		Currency: p.Currency,
		ExclTax:  p.ExclTax.Add(other.ExclTax),
		Tax:      p.Tax.Add(other.Tax),
	}
}

func (p Price) String() string {
	return fmt.Sprintf("%s %s (tax %s)", p.Currency, p.ExclTax.StringFixed(2), p.Tax.StringFixed(2))
}

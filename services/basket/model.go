package basket

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/qusiemahm/django-oscar-api/services/identity"
	"github.com/qusiemahm/django-oscar-api/services/prices"
)

type Status string

const (
	// StatusOpen means the basket can still be mutated
	StatusOpen Status = "open"
	// StatusFrozen means an order has been placed for this basket: no further mutation
	StatusFrozen Status = "frozen"
	// StatusSubmitted means the resulting order has been acknowledged downstream
	StatusSubmitted Status = "submitted"
)

type Basket struct {
	UID         string    `json:"uid"`
	OwnerUID    string    `json:"owner_uid,omitempty"` // empty for guest baskets
	SessionUID  string    `json:"session_uid,omitempty"`
	Status      Status    `json:"status"`
	Currency    string    `json:"currency"`
	Lines       []Line    `json:"lines"`
	OrderNumber string    `json:"order_number,omitempty"` // set once the order is acknowledged
	CreatedAt   time.Time `json:"created_at"`
}

type Line struct {
	ProductUID       string          `json:"product_uid"`
	Description      string          `json:"description"`
	UnitPriceExclTax decimal.Decimal `json:"unit_price_excl_tax"`
	UnitTax          decimal.Decimal `json:"unit_tax"`
	Quantity         int             `json:"quantity"`
}

func (b Basket) IsOpen() bool {
	return b.Status == StatusOpen
}

func (b Basket) NumItems() int {
	count := 0
	for _, line := range b.Lines {
		count += line.Quantity
	}
	return count
}

// Total sums all lines. Shipping is not part of it: that is the order-total
// calculator's job.
func (b Basket) Total() prices.Price {
	total := prices.Zero(b.Currency)
	for _, line := range b.Lines {
		quantity := decimal.NewFromInt(int64(line.Quantity))
		total = total.Add(prices.New(b.Currency,
			line.UnitPriceExclTax.Mul(quantity),
			line.UnitTax.Mul(quantity)))
	}
	return total
}

// AccessibleBy tells whether the actor may operate on this basket: the owner
// always may, a guest basket follows its session.
func (b Basket) AccessibleBy(actor identity.Actor) bool {
	if b.OwnerUID != "" {
		return b.OwnerUID == actor.UserUID
	}

	return b.SessionUID != "" && b.SessionUID == actor.SessionUID
}

package shipping

import (
	"context"
	"fmt"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

// Repository knows which shipping methods exist and which of them are
// eligible for a given basket, actor and destination.
type Repository struct {
	methods []Method
}

func NewRepository(methods ...Method) *Repository {
	return &Repository{
		methods: methods,
	}
}

// Methods returns the eligible methods for this context, in configuration
// order. That order is authoritative for resolution.
func (r *Repository) Methods(c context.Context, b basket.Basket, actor identity.Actor, shippingAddress *address.Address) ([]Method, error) {
	eligible := make([]Method, 0, len(r.methods))
	for _, m := range r.methods {
		if shippingAddress != nil && !m.servesCountry(shippingAddress.Country) {
			continue
		}
		eligible = append(eligible, m)
	}

	return eligible, nil
}

// DefaultMethod returns the context-appropriate default: the first eligible
// method. There is always exactly one default per context.
func (r *Repository) DefaultMethod(c context.Context, b basket.Basket, actor identity.Actor, shippingAddress *address.Address) (Method, error) {
	eligible, err := r.Methods(c, b, actor, shippingAddress)
	if err != nil {
		return Method{}, err
	}
	if len(eligible) == 0 {
		return Method{}, myerrors.NewInternalError(fmt.Errorf("no shipping method available for this context"))
	}

	return eligible[0], nil
}

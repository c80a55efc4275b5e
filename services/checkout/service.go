package checkout

import (
	"context"

	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/identity"
	"github.com/qusiemahm/django-oscar-api/services/ordering"
	"github.com/qusiemahm/django-oscar-api/services/shipping"
	"github.com/qusiemahm/django-oscar-api/services/vehicle"
)

// ShippingRepository yields the eligible shipping methods and the
// context-appropriate default for a basket, actor and destination.
type ShippingRepository interface {
	Methods(c context.Context, b basket.Basket, actor identity.Actor, shippingAddress *address.Address) ([]shipping.Method, error)
	DefaultMethod(c context.Context, b basket.Basket, actor identity.Actor, shippingAddress *address.Address) (shipping.Method, error)
}

// OrderPlacer persists a validated order and freezes its basket atomically.
type OrderPlacer interface {
	Place(c context.Context, cmd ordering.PlaceOrderCommand) (ordering.Order, error)
}

type service struct {
	cfg          Config
	basketStore  mystore.Store[basket.Basket]
	vehicleStore mystore.Store[vehicle.Vehicle]
	shippingRepo ShippingRepository
	placer       OrderPlacer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(cfg Config, basketStore mystore.Store[basket.Basket], vehicleStore mystore.Store[vehicle.Vehicle], shippingRepo ShippingRepository, placer OrderPlacer, logger mylog.Logger) *service {
	return &service{
		cfg:          cfg,
		basketStore:  basketStore,
		vehicleStore: vehicleStore,
		shippingRepo: shippingRepo,
		placer:       placer,
		logger:       logger,
	}
}

package ordering

import (
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mypublisher"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/services/basket"
)

// Service places orders. It owns the basket freeze: the freeze and the order
// insert happen in one transaction, so a basket can never end up frozen
// without an order or the other way around.
type Service struct {
	orderStore  mystore.Store[Order]
	basketStore mystore.Store[basket.Basket]
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(orderStore mystore.Store[Order], basketStore mystore.Store[basket.Basket], publisher mypublisher.Publisher, nower mytime.Nower) *Service {
	return &Service{
		orderStore:  orderStore,
		basketStore: basketStore,
		publisher:   publisher,
		nower:       nower,
		logger:      mylog.New("ordering"),
	}
}

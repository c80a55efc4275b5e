package address

import (
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/lib/myuuid"
)

type service struct {
	addressStore mystore.Store[UserAddress]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[UserAddress], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		addressStore: store,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

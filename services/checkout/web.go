package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qusiemahm/django-oscar-api/lib/mycontext"
	"github.com/qusiemahm/django-oscar-api/lib/myhttp"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/checkoutapi"
	"github.com/qusiemahm/django-oscar-api/services/identity"
	"github.com/qusiemahm/django-oscar-api/services/prices"
	"github.com/qusiemahm/django-oscar-api/services/vehicle"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(cfg Config, basketStore mystore.Store[basket.Basket], vehicleStore mystore.Store[vehicle.Vehicle], shippingRepo ShippingRepository, placer OrderPlacer) *webService {
	logger := mylog.New("checkout")
	return &webService{
		logger:  logger,
		service: newService(cfg, basketStore, vehicleStore, shippingRepo, placer, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/checkout", s.checkoutPage()).Methods("POST")

	return nil
}

func (s *webService) checkoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		req, err := checkoutapi.NewFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		order, err := s.service.checkout(c, actor, intentFromRequest(req))
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

func intentFromRequest(req checkoutapi.CheckoutRequest) Intent {
	return Intent{
		BasketUID:              req.BasketUID(),
		GuestEmail:             req.GuestEmail,
		ShippingMethodCode:     req.ShippingMethodCode,
		ShippingAddress:        req.ShippingAddress.ToAddress(),
		BillingAddress:         req.BillingAddress.ToAddress(),
		AssertedShippingCharge: assertedPrice(req.ShippingCharge),
		AssertedTotal:          assertedPrice(req.Total),
		VehicleUID:             req.VehicleUID,
	}
}

// assertedPrice distinguishes "not asserted" from an asserted zero amount:
// an empty currency means the client made no claim at all.
func assertedPrice(data checkoutapi.PriceData) *prices.Price {
	if data.Currency == "" {
		return nil
	}
	price := data.ToPrice()
	return &price
}

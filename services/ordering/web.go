package ordering

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qusiemahm/django-oscar-api/lib/mycontext"
	"github.com/qusiemahm/django-oscar-api/lib/myhttp"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/services/checkoutevents"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

type webService struct {
	logger  mylog.Logger
	service *Service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(service *Service) *webService {
	return &webService{
		logger:  mylog.New("ordering"),
		service: service,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/orders", s.listOrdersPage()).Methods("GET")
	router.HandleFunc("/api/orders/{orderNumber}", s.orderDetailsPage()).Methods("GET")

	return s.service.publisher.CreateTopic(c, checkoutevents.TopicName)
}

func (s *webService) listOrdersPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		orders, err := s.service.listOrders(c, actor, r.URL.Query().Get("status"))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func (s *webService) orderDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		orderNumber := mux.Vars(r)["orderNumber"]

		order, err := s.service.orderWithNumber(c, actor, orderNumber)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

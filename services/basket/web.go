package basket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/qusiemahm/django-oscar-api/lib/mycontext"
	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/myhttp"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mypublisher"
	"github.com/qusiemahm/django-oscar-api/lib/mypubsub"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/lib/myuuid"
	"github.com/qusiemahm/django-oscar-api/services/basket/basketevents"
	"github.com/qusiemahm/django-oscar-api/services/checkoutevents"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

type webService struct {
	logger     mylog.Logger
	service    *service
	subscriber mypubsub.PubSub
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store mystore.Store[Basket], nower mytime.Nower, uuider myuuid.UUIDer, subscriber mypubsub.PubSub, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("basket")
	return &webService{
		logger:     logger,
		service:    newService(store, nower, uuider, logger, publisher),
		subscriber: subscriber,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/baskets", s.listBasketsPage()).Methods("GET")
	router.HandleFunc("/api/basket", s.createBasketPage()).Methods("POST")
	router.HandleFunc("/api/basket/{basketUID}", s.basketDetailsPage()).Methods("GET")
	router.HandleFunc("/api/basket/{basketUID}/lines", s.addLinePage()).Methods("POST")

	err := s.service.publisher.CreateTopic(c, basketevents.TopicName)
	if err != nil {
		return err
	}

	// Listen for completed checkouts to stamp the order number on the basket
	router.HandleFunc("/api/basket/event", s.handleEventEnvelope()).Methods("POST")

	err = s.subscriber.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return err
	}

	err = s.subscriber.Subscribe(c, checkoutevents.TopicName, ownBaseURL()+"/api/basket/event")
	if err != nil {
		return err
	}

	return nil
}

func ownBaseURL() string {
	baseURL := os.Getenv("OWN_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return baseURL
}

type createBasketRequest struct {
	Currency string `json:"currency"`
}

func (s *webService) listBasketsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		baskets, err := s.service.listBaskets(c, actor)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, baskets)
	}
}

func (s *webService) createBasketPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		req := createBasketRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if req.Currency == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing currency"))
			return
		}

		basket, err := s.service.createBasket(c, actor, req.Currency)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}

func (s *webService) basketDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		basketUID := mux.Vars(r)["basketUID"]

		basket, err := s.service.basketWithUID(c, actor, basketUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}

func (s *webService) addLinePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		basketUID := mux.Vars(r)["basketUID"]

		line := Line{}
		err := json.NewDecoder(r.Body).Decode(&line)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing line: %s", err)))
			return
		}

		basket, err := s.service.addLine(c, actor, basketUID, line)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

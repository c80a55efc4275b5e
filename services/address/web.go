package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qusiemahm/django-oscar-api/lib/mycontext"
	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/myhttp"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/lib/myuuid"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store mystore.Store[UserAddress], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("address")
	return &webService{
		logger:  logger,
		service: newService(store, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/addresses", s.listAddressesPage()).Methods("GET")
	router.HandleFunc("/api/addresses", s.createAddressPage()).Methods("POST")
	router.HandleFunc("/api/addresses/{addressUID}", s.addressDetailsPage()).Methods("GET")
	router.HandleFunc("/api/addresses/{addressUID}", s.updateAddressPage()).Methods("PUT")
	router.HandleFunc("/api/addresses/{addressUID}", s.removeAddressPage()).Methods("DELETE")
}

func (s *webService) listAddressesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		addresses, err := s.service.listAddresses(c, actor)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, addresses)
	}
}

func (s *webService) createAddressPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		addr := Address{}
		err := json.NewDecoder(r.Body).Decode(&addr)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing address: %s", err)))
			return
		}

		created, err := s.service.createAddress(c, actor, addr)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, created)
	}
}

func (s *webService) addressDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		addressUID := mux.Vars(r)["addressUID"]

		userAddress, err := s.service.addressWithUID(c, actor, addressUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, userAddress)
	}
}

func (s *webService) updateAddressPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		addressUID := mux.Vars(r)["addressUID"]

		addr := Address{}
		err := json.NewDecoder(r.Body).Decode(&addr)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing address: %s", err)))
			return
		}

		updated, err := s.service.updateAddress(c, actor, addressUID, addr)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s *webService) removeAddressPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		addressUID := mux.Vars(r)["addressUID"]

		err := s.service.removeAddress(c, actor, addressUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

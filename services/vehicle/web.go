package vehicle

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
func NewWebService(store mystore.Store[Vehicle], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("vehicle")
	return &webService{
		logger:  logger,
		service: newService(store, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/vehicles", s.listVehiclesPage()).Methods("GET")
	router.HandleFunc("/api/vehicles", s.registerVehiclePage()).Methods("POST")
	router.HandleFunc("/api/vehicles/{vehicleUID}", s.vehicleDetailsPage()).Methods("GET")

	return nil
}

type registerVehicleRequest struct {
	PlateNumber string `json:"plate_number"`
	Description string `json:"description"`
}

func (s *webService) listVehiclesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		vehicles, err := s.service.listVehicles(c, actor)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, vehicles)
	}
}

func (s *webService) registerVehiclePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		req := registerVehicleRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		vehicle, err := s.service.registerVehicle(c, actor, req.PlateNumber, req.Description)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, vehicle)
	}
}

func (s *webService) vehicleDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		actor := identity.FromRequest(r)

		vehicleUID := mux.Vars(r)["vehicleUID"]

		vehicle, err := s.service.vehicleWithUID(c, actor, vehicleUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, vehicle)
	}
}

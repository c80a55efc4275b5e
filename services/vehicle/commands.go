package vehicle

import (
	"context"
	"fmt"
	"sort"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

func (s *service) listVehicles(c context.Context, actor identity.Actor) ([]Vehicle, error) {
	if actor.IsAnonymous() {
		return nil, myerrors.NewAuthenticationError(fmt.Errorf("anonymous users have no vehicles"))
	}

	vehicles, err := s.vehicleStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	owned := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.OwnedBy(actor.UserUID) {
			owned = append(owned, v)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	return owned, nil
}

func (s *service) registerVehicle(c context.Context, actor identity.Actor, plateNumber string, description string) (Vehicle, error) {
	if actor.IsAnonymous() {
		return Vehicle{}, myerrors.NewAuthenticationError(fmt.Errorf("anonymous users cannot register a vehicle"))
	}
	if plateNumber == "" {
		return Vehicle{}, myerrors.NewInvalidInputErrorf("missing plate_number")
	}

	vehicleUID := s.uuider.Create()
	vehicle := Vehicle{
		UID:         vehicleUID,
		OwnerUID:    actor.UserUID,
		PlateNumber: plateNumber,
		Description: description,
		CreatedAt:   s.nower.Now(),
	}

	err := s.vehicleStore.Put(c, vehicleUID, vehicle)
	if err != nil {
		return Vehicle{}, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, vehicleUID, mylog.SeverityInfo, "Registered vehicle %s for user %s", vehicleUID, actor.UserUID)

	return vehicle, nil
}

func (s *service) vehicleWithUID(c context.Context, actor identity.Actor, vehicleUID string) (Vehicle, error) {
	vehicle, found, err := s.vehicleStore.Get(c, vehicleUID)
	if err != nil {
		return Vehicle{}, myerrors.NewInternalError(err)
	}
	// Do not leak existence of other users their vehicles
	if !found || !vehicle.OwnedBy(actor.UserUID) {
		return Vehicle{}, myerrors.NewNotFoundError(fmt.Errorf("vehicle with uid %s not found", vehicleUID))
	}

	return vehicle, nil
}

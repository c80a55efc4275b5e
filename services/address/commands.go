package address

import (
	"context"
	"fmt"
	"sort"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
	"github.com/qusiemahm/django-oscar-api/services/identity"
)

func (s *service) listAddresses(c context.Context, actor identity.Actor) ([]UserAddress, error) {
	addresses, err := s.addressStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	owned := make([]UserAddress, 0, len(addresses))
	for _, a := range addresses {
		if a.UserUID == actor.UserUID {
			owned = append(owned, a)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	return owned, nil
}

func (s *service) createAddress(c context.Context, actor identity.Actor, addr Address) (UserAddress, error) {
	if actor.IsAnonymous() {
		return UserAddress{}, myerrors.NewAuthenticationError(fmt.Errorf("anonymous users have no address book"))
	}

	userAddress := UserAddress{
		UID:       s.uuider.Create(),
		UserUID:   actor.UserUID,
		Address:   addr,
		CreatedAt: s.nower.Now(),
	}

	s.logger.Log(c, userAddress.UID, mylog.SeverityInfo, "Creating address %s for user %s", userAddress.UID, actor.UserUID)

	err := s.addressStore.Put(c, userAddress.UID, userAddress)
	if err != nil {
		return UserAddress{}, myerrors.NewInternalError(err)
	}

	return userAddress, nil
}

func (s *service) addressWithUID(c context.Context, actor identity.Actor, addressUID string) (UserAddress, error) {
	userAddress, found, err := s.addressStore.Get(c, addressUID)
	if err != nil {
		return UserAddress{}, myerrors.NewInternalError(err)
	}
	if !found || userAddress.UserUID != actor.UserUID {
		// Do not leak existence of other users' addresses
		return UserAddress{}, myerrors.NewNotFoundError(fmt.Errorf("address with uid %s not found", addressUID))
	}

	return userAddress, nil
}

func (s *service) updateAddress(c context.Context, actor identity.Actor, addressUID string, addr Address) (UserAddress, error) {
	var updated UserAddress
	err := s.addressStore.RunInTransaction(c, func(c context.Context) error {
		existing, err := s.addressWithUID(c, actor, addressUID)
		if err != nil {
			return err
		}

		// The owner of an address can never be changed
		existing.Address = addr
		updated = existing

		err = s.addressStore.Put(c, addressUID, existing)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return UserAddress{}, err
	}

	return updated, nil
}

func (s *service) removeAddress(c context.Context, actor identity.Actor, addressUID string) error {
	return s.addressStore.RunInTransaction(c, func(c context.Context) error {
		existing, err := s.addressWithUID(c, actor, addressUID)
		if err != nil {
			return err
		}

		err = s.addressStore.Remove(c, existing.UID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
}

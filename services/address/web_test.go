package address

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/lib/myuuid"
)

var henk = Address{
	FirstName:   "Henk",
	LastName:    "Van den Heuvel",
	Line1:       "Roemerlaan 44",
	Line4:       "Kroekingen",
	Postcode:    "7777KK",
	State:       "Gerendrecht",
	Country:     "NL",
	PhoneNumber: "+31 26 370 4887",
}

func TestAddressService(t *testing.T) {

	t.Run("Create address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("addr_1")

		// when
		body, _ := json.Marshal(henk)
		request, err := http.NewRequest(http.MethodPost, "/api/addresses", strings.NewReader(string(body)))
		assert.NoError(t, err)
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := UserAddress{}
		err = json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, "addr_1", got.UID)
		assert.Equal(t, "user_1", got.UserUID)
		assert.Equal(t, "Henk", got.Address.FirstName)
	})

	t.Run("Create address anonymously is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		body, _ := json.Marshal(henk)
		request, _ := http.NewRequest(http.MethodPost, "/api/addresses", strings.NewReader(string(body)))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 403, response.Code)
	})

	t.Run("List addresses is scoped to owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "addr_1", UserAddress{UID: "addr_1", UserUID: "user_1", Address: henk})
		storer.Put(ctx, "addr_2", UserAddress{UID: "addr_2", UserUID: "user_2", Address: henk})

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/addresses", nil)
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := []UserAddress{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "addr_1", got[0].UID)
	})

	t.Run("Get address of other user reports not-found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _ := setup(t, ctrl)

		storer.Put(ctx, "addr_2", UserAddress{UID: "addr_2", UserUID: "user_2", Address: henk})

		request, _ := http.NewRequest(http.MethodGet, "/api/addresses/addr_2", nil)
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 404, response.Code)
	})

	t.Run("Update address keeps owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _ := setup(t, ctrl)

		storer.Put(ctx, "addr_1", UserAddress{UID: "addr_1", UserUID: "user_1", Address: henk})

		changed := henk
		changed.Line1 = "Boerderijstraat 19"
		body, _ := json.Marshal(changed)
		request, _ := http.NewRequest(http.MethodPut, "/api/addresses/addr_1", strings.NewReader(string(body)))
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		stored, found, _ := storer.Get(ctx, "addr_1")
		assert.True(t, found)
		assert.Equal(t, "user_1", stored.UserUID)
		assert.Equal(t, "Boerderijstraat 19", stored.Address.Line1)
	})

	t.Run("Remove address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _ := setup(t, ctrl)

		storer.Put(ctx, "addr_1", UserAddress{UID: "addr_1", UserUID: "user_1", Address: henk})

		request, _ := http.NewRequest(http.MethodDelete, "/api/addresses/addr_1", nil)
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		_, found, _ := storer.Get(ctx, "addr_1")
		assert.False(t, found)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[UserAddress], *mytime.MockNower, *myuuid.MockUUIDer) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[UserAddress](c)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)

	sut := NewWebService(storer, nower, uuider)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, nower, uuider
}

package basket

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

	"github.com/qusiemahm/django-oscar-api/lib/myevents"
	"github.com/qusiemahm/django-oscar-api/lib/mypublisher"
	"github.com/qusiemahm/django-oscar-api/lib/mypubsub"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/lib/myuuid"
	"github.com/qusiemahm/django-oscar-api/services/basket/basketevents"
	"github.com/qusiemahm/django-oscar-api/services/checkoutevents"
)

func TestBasketService(t *testing.T) {

	t.Run("Create basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, uuider, publisher := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("123")
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketCreated{BasketUID: "123"}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/basket", strings.NewReader(`{"currency": "EUR"}`))
		assert.NoError(t, err)
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := Basket{}
		err = json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, "123", got.UID)
		assert.Equal(t, StatusOpen, got.Status)
		assert.Equal(t, "user_1", got.OwnerUID)

		stored, found, _ := storer.Get(ctx, "123")
		assert.True(t, found)
		assert.Equal(t, StatusOpen, stored.Status)
	})

	t.Run("Create basket without currency is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _, _ := setup(t, ctrl)

		request, _ := http.NewRequest(http.MethodPost, "/api/basket", strings.NewReader(`{}`))
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 400, response.Code)
	})

	t.Run("Add line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", Basket{UID: "123", OwnerUID: "user_1", Status: StatusOpen, Currency: "EUR", Lines: []Line{}})

		request, _ := http.NewRequest(http.MethodPost, "/api/basket/123/lines",
			strings.NewReader(`{"product_uid": "product_tennis_racket", "unit_price_excl_tax": "45.00", "unit_tax": "4.50", "quantity": 2}`))
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		got := Basket{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, 2, got.NumItems())
		assert.Equal(t, "90.00", got.Total().ExclTax.StringFixed(2))
	})

	t.Run("Add line to frozen basket is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", Basket{UID: "123", OwnerUID: "user_1", Status: StatusFrozen, Currency: "EUR"})

		request, _ := http.NewRequest(http.MethodPost, "/api/basket/123/lines",
			strings.NewReader(`{"product_uid": "product_tennis_racket", "quantity": 1}`))
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 406, response.Code)
	})

	t.Run("Basket of other user is denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", Basket{UID: "123", OwnerUID: "user_2", Status: StatusOpen, Currency: "EUR"})

		request, _ := http.NewRequest(http.MethodGet, "/api/basket/123", nil)
		request.Header.Set("X-User-UID", "user_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 401, response.Code)
	})

	t.Run("Guest basket follows session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", Basket{UID: "123", SessionUID: "session_1", Status: StatusOpen, Currency: "EUR"})

		request, _ := http.NewRequest(http.MethodGet, "/api/basket/123", nil)
		request.Header.Set("X-Session-UID", "session_1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
	})

	t.Run("Checkout-completed event stamps order number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", Basket{UID: "123", OwnerUID: "user_1", Status: StatusFrozen, Currency: "EUR"})

		// when the checkout-completed event arrives over push delivery
		body := pushRequestBody(t, checkoutevents.CheckoutCompleted{
			OrderNumber: "100001",
			BasketUID:   "123",
			UserUID:     "user_1",
		})
		request, _ := http.NewRequest(http.MethodPost, "/api/basket/event", strings.NewReader(body))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		stored, _, _ := storer.Get(ctx, "123")
		assert.Equal(t, StatusSubmitted, stored.Status)
		assert.Equal(t, "100001", stored.OrderNumber)
	})
}

func pushRequestBody(t *testing.T, event checkoutevents.CheckoutCompleted) string {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	envelope := myevents.EventEnvelope{
		UID:           "event_1",
		Topic:         checkoutevents.TopicName,
		AggregateUID:  event.BasketUID,
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}
	data, err := json.Marshal(envelope)
	assert.NoError(t, err)
	pushRequest, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: data,
			ID:   "msg_1",
		},
	})
	assert.NoError(t, err)
	return string(pushRequest)
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Basket], *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[Basket](c)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	subscriber := mypubsub.NewMockPubSub(ctrl)

	publisher.EXPECT().CreateTopic(gomock.Any(), basketevents.TopicName).Return(nil)
	subscriber.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)
	subscriber.EXPECT().Subscribe(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil)

	sut := NewWebService(storer, nower, uuider, subscriber, publisher)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, nower, uuider, publisher
}

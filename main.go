package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/qusiemahm/django-oscar-api/lib/mymetrics"
	"github.com/qusiemahm/django-oscar-api/lib/mypublisher"
	"github.com/qusiemahm/django-oscar-api/lib/mypubsub"
	"github.com/qusiemahm/django-oscar-api/lib/myqueue"
	"github.com/qusiemahm/django-oscar-api/lib/mystore"
	"github.com/qusiemahm/django-oscar-api/lib/mytime"
	"github.com/qusiemahm/django-oscar-api/lib/myuuid"
	"github.com/qusiemahm/django-oscar-api/services/address"
	"github.com/qusiemahm/django-oscar-api/services/basket"
	"github.com/qusiemahm/django-oscar-api/services/checkout"
	"github.com/qusiemahm/django-oscar-api/services/ordering"
	"github.com/qusiemahm/django-oscar-api/services/prices"
	"github.com/qusiemahm/django-oscar-api/services/shipping"
	"github.com/qusiemahm/django-oscar-api/services/vehicle"
)

func main() {
	c := context.Background()

	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	basketStore, basketStoreCleanup, err := mystore.New[basket.Basket](c)
	if err != nil {
		log.Fatalf("Error creating basket store: %s", err)
	}
	defer basketStoreCleanup()

	orderStore, orderStoreCleanup, err := mystore.New[ordering.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	addressStore, addressStoreCleanup, err := mystore.New[address.UserAddress](c)
	if err != nil {
		log.Fatalf("Error creating address store: %s", err)
	}
	defer addressStoreCleanup()

	vehicleStore, vehicleStoreCleanup, err := mystore.New[vehicle.Vehicle](c)
	if err != nil {
		log.Fatalf("Error creating vehicle store: %s", err)
	}
	defer vehicleStoreCleanup()

	router := mux.NewRouter()

	publisher.RegisterEndpoints(c, router)

	basketService := basket.NewWebService(basketStore, nower, uuider, pubsub, publisher)
	err = basketService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering basket service: %s", err)
	}

	addressService := address.NewWebService(addressStore, nower, uuider)
	addressService.RegisterEndpoints(c, router)

	vehicleService := vehicle.NewWebService(vehicleStore, nower, uuider)
	err = vehicleService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering vehicle service: %s", err)
	}

	orderingService := ordering.NewService(orderStore, basketStore, publisher, nower)
	orderingWebService := ordering.NewWebService(orderingService)
	err = orderingWebService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering ordering service: %s", err)
	}

	checkoutService := checkout.NewWebService(checkoutConfig(), basketStore, vehicleStore, shippingRepository(), orderingService)
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout service: %s", err)
	}

	router.Handle("/metrics", mymetrics.Handler()).Methods("GET")

	startWebServerBlocking(router)
}

func checkoutConfig() checkout.Config {
	initialStatus := os.Getenv("INITIAL_ORDER_STATUS")
	if initialStatus == "" {
		initialStatus = "new"
	}

	return checkout.Config{
		AllowAnonCheckout:  os.Getenv("ALLOW_ANON_CHECKOUT") == "true",
		InitialOrderStatus: initialStatus,
	}
}

func shippingRepository() *shipping.Repository {
	freeAbove := decimal.RequireFromString("100.00")

	return shipping.NewRepository(
		shipping.Method{
			Code:        "standard",
			Name:        "Standard",
			Description: "Delivery within 3 working days",
			Charge:      prices.New("EUR", decimal.RequireFromString("10.00"), decimal.RequireFromString("0.60")),
			FreeAbove:   &freeAbove,
		},
		shipping.Method{
			Code:        "express",
			Name:        "Express",
			Description: "Next-day delivery",
			Charge:      prices.New("EUR", decimal.RequireFromString("25.00"), decimal.RequireFromString("1.30")),
		},
		shipping.Method{
			Code:        "collect",
			Name:        "Click and collect",
			Description: "Pick up at the store, bring your registered vehicle",
			Charge:      prices.Zero("EUR"),
			Countries:   []string{"NL"},
		},
	)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}

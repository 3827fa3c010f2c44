package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/akgarg0472/urlshortener-payment-service/config"
	"github.com/akgarg0472/urlshortener-payment-service/internal/controller"
	"github.com/akgarg0472/urlshortener-payment-service/internal/event"
	"github.com/akgarg0472/urlshortener-payment-service/internal/infrastructure/cache"
	circuitbreaker "github.com/akgarg0472/urlshortener-payment-service/internal/infrastructure/circuit-breaker"
	"github.com/akgarg0472/urlshortener-payment-service/internal/infrastructure/database/postgres"
	messagequeue "github.com/akgarg0472/urlshortener-payment-service/internal/infrastructure/message-queue/kafka"
	"github.com/akgarg0472/urlshortener-payment-service/internal/infrastructure/tracing"
	localmiddleware "github.com/akgarg0472/urlshortener-payment-service/internal/middleware"
	"github.com/akgarg0472/urlshortener-payment-service/internal/paymentgateway"
	"github.com/akgarg0472/urlshortener-payment-service/internal/repository"
	"github.com/akgarg0472/urlshortener-payment-service/internal/service"
	"github.com/akgarg0472/urlshortener-payment-service/internal/subscription"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	conf := config.CreateNewConfig()

	traceProvider, err := tracing.InitTracing(conf.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if traceProvider == nil {
			return
		}
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	var orderRepo repository.OrderRepository
	var subscriptionCache subscription.Cache
	var publisher event.Publisher

	if conf.Environment == "dev" {
		orderRepo = repository.CreateInMemoryOrderRepository()
		subscriptionCache = subscription.CreateInMemoryCache()
		publisher = event.CreateNoopPublisher()
	} else {
		db, err := postgres.GetDBInstance(conf.PostgreSQLConfig.DBUsername, conf.PostgreSQLConfig.DBPassword, conf.PostgreSQLConfig.DBHost, conf.PostgreSQLConfig.DBPort, conf.PostgreSQLConfig.DBName)
		if err != nil {
			panic(err)
		}
		orderRepo = repository.CreateOrderRepository(db)

		redisClient, err := cache.CreateRedisClient(conf)
		if err != nil {
			panic(err)
		}
		subscriptionCache = subscription.CreateRedisCache(redisClient)

		kafkaProducer := messagequeue.CreateKafkaProducer(conf)
		publisher = event.CreateKafkaPublisher(kafkaProducer)
	}

	cb := circuitbreaker.CreateCircuitBreaker("payment-service")
	paypalAdapter := paymentgateway.CreatePaypalAdapter(paymentgateway.PaypalConfig{
		BaseURL:      conf.PaypalConfig.BaseURL,
		ClientID:     conf.PaypalConfig.ClientID,
		ClientSecret: conf.PaypalConfig.ClientSecret,
		ReturnURL:    conf.PaypalConfig.ReturnURL,
		CancelURL:    conf.PaypalConfig.CancelURL,
	}, cb)

	snapClient, coreClient := paymentgateway.CreateMidtransClients(conf.MidtransConfig.ServerKey)
	midtransAdapter := paymentgateway.CreateMidtransAdapter(snapClient, coreClient)

	gatewayFactory := paymentgateway.CreateFactory(paypalAdapter, midtransAdapter)

	paymentSvc := service.CreatePaymentService(orderRepo, gatewayFactory, publisher, subscriptionCache, conf.DefaultGateway)

	e := echo.New()
	g := e.Group("/api/v1")

	tracer := traceProvider.Tracer("payment-service")
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", conf.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	controller.CreatePaymentController(g, paymentSvc)

	packLoader := subscription.CreatePackLoader(subscriptionCache, conf.SubscriptionServiceHost)
	packLoader.RefreshPacks()

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			15*time.Minute,
		),
		gocron.NewTask(
			packLoader.RefreshPacks,
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", conf.ServicePort)))
}

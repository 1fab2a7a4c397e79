package main

import (
	"context"
	"log"

	"backoffice-service/config"
	bookinghandler "backoffice-service/internal/module/booking/handler"
	"backoffice-service/internal/module/booking/numbering"
	bookingrepositories "backoffice-service/internal/module/booking/repositories"
	bookingusecases "backoffice-service/internal/module/booking/usecases"
	ledgerhandler "backoffice-service/internal/module/ledger/handler"
	ledgerrepositories "backoffice-service/internal/module/ledger/repositories"
	ledgerusecases "backoffice-service/internal/module/ledger/usecases"
	"backoffice-service/internal/pkg/database"
	"backoffice-service/internal/pkg/http"
	"backoffice-service/internal/pkg/httpclient"
	log_internal "backoffice-service/internal/pkg/log"
	"backoffice-service/internal/pkg/messagestream"
	"backoffice-service/internal/pkg/middleware"
	internalredis "backoffice-service/internal/pkg/redis"
	"backoffice-service/internal/pkg/scheduler"
	"backoffice-service/internal/pkg/settings"
	router "backoffice-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters := initService(cfg)

	for _, r := range messageRouters {
		ctx := context.Background()
		go func(r *message.Router) {
			if err := r.Run(ctx); err != nil {
				log.Fatal(err)
			}
		}(r)
	}

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router) {

	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := internalredis.SetupClient(&cfg.Redis)
	locker := internalredis.NewLocker(redisClient)
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create subscriber")
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create publisher")
	}

	// init scheduler
	sched := scheduler.Scheduler{Log: logger}
	asynqClient := sched.InitClient(&cfg.Redis)
	asynqInspector := sched.InitInspector(&cfg.Redis)
	go sched.StartMonitoring(&cfg.Redis)

	settingsStore := settings.NewStore(db)
	issuer := numbering.NewService()

	bookingRepo := bookingrepositories.New(db, logger, httpClient, &cfg.UserService, &cfg.NotificationService, redisClient, asynqClient, asynqInspector)
	ledgerRepo := ledgerrepositories.New(db, logger)

	ledgerUsecase := ledgerusecases.New(ledgerRepo, issuer, logger)
	bookingUsecase := bookingusecases.New(bookingRepo, ledgerUsecase, settingsStore, issuer, locker, publisher, logger)

	m := middleware.Middleware{
		Log:  logger,
		Repo: bookingRepo,
	}

	v := validator.New()
	bookingHandler := bookinghandler.BookingHandler{
		Log:       logger,
		Validator: v,
		Usecase:   bookingUsecase,
		Publish:   publisher,
	}
	ledgerHandler := ledgerhandler.LedgerHandler{
		Log:       logger,
		Validator: v,
		Usecase:   ledgerUsecase,
	}

	// start asynq worker for the booking expiry sweep
	go sched.StartHandler(&cfg.Redis,
		[]string{scheduler.TypeExpireBooking},
		[]func(ctx context.Context, t *asynq.Task) error{bookingHandler.ExpireBooking},
	)

	var messageRouters []*message.Router

	notificationRouter, err := messagestream.NewRouter(publisher, "booking_confirmation_poisoned", "booking_confirmation_handler", bookingusecases.TopicBookingConfirmation, subscriber, bookingHandler.ConsumeNotificationQueue)
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create booking_confirmation router")
	}

	messageRouters = append(messageRouters, notificationRouter)

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, &bookingHandler, &ledgerHandler, &m)

	return r, messageRouters

}

package main

import (
	bookingshandler "tranquilstay/internal/bookings/handler"
	bookingsrepository "tranquilstay/internal/bookings/repository"
	bookingsservice "tranquilstay/internal/bookings/service"
	bookingsvalidator "tranquilstay/internal/bookings/validator"
	"tranquilstay/internal/events"
	feedbackhandler "tranquilstay/internal/feedback/handler"
	feedbackrepository "tranquilstay/internal/feedback/repository"
	feedbackservice "tranquilstay/internal/feedback/service"
	feedbackvalidator "tranquilstay/internal/feedback/validator"
	roomshandler "tranquilstay/internal/rooms/handler"
	roomsrepository "tranquilstay/internal/rooms/repository"
	roomsservice "tranquilstay/internal/rooms/service"
	sessionhandler "tranquilstay/internal/session/handler"
	usershandler "tranquilstay/internal/users/handler"
	usersrepository "tranquilstay/internal/users/repository"
	usersservice "tranquilstay/internal/users/service"
	usersvalidator "tranquilstay/internal/users/validator"
	"tranquilstay/pkg/app"
	"tranquilstay/pkg/auth"
	"tranquilstay/pkg/config"
	"tranquilstay/pkg/contracts"
	mongotx "tranquilstay/pkg/db/mongo"
	"tranquilstay/pkg/kafka"
	kafka_config "tranquilstay/pkg/kafka/config"
	kafka_middleware "tranquilstay/pkg/kafka/middleware"
	"tranquilstay/pkg/middleware"
)

const ServiceName = "tranquilstay-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Tranquil Stay API")
	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(cfg.Client.Mongo, handlers...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events will not be published")
		return events.NewNoopPublisher(cfg.Log)
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.KafkaEventsTopic, cfg.KafkaDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	cfg.Client.SetKafka(producer)

	cfg.Log.Info("Kafka producer initialized", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, ServiceName)
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	txManager := mongotx.NewTransactionManager(cfg.Client.Mongo)

	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.SessionTTL)
	guard := middleware.NewAuthGuard(tokens, cfg.Log)

	userRepo := usersrepository.NewMongoUserRepository(db, cfg)
	roomRepo := roomsrepository.NewMongoRoomRepository(db, cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(db, txManager, cfg)
	feedbackRepo := feedbackrepository.NewMongoFeedbackRepository(db, cfg)

	userService := usersservice.NewUserService(userRepo, usersvalidator.NewUserValidator(cfg.Log), cfg)
	roomService := roomsservice.NewRoomService(roomRepo, cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	feedbackService := feedbackservice.NewFeedbackService(
		feedbackRepo,
		feedbackvalidator.NewFeedbackValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		sessionhandler.NewSessionHandler(tokens, cfg.IsProduction(), cfg.Log),
		usershandler.NewUserHandler(userService, cfg.Log),
		roomshandler.NewRoomHandler(roomService, guard, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, guard, cfg.Log),
		feedbackhandler.NewFeedbackHandler(feedbackService, guard, cfg.Log),
	}
}

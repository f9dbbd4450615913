package main

import (
	"context"
	"jadwalin-service/internal/app/config"
	"jadwalin-service/internal/app/delivery/http/controllers"
	"jadwalin-service/internal/app/delivery/http/middlewares"
	"jadwalin-service/internal/app/delivery/http/routers"
	"jadwalin-service/internal/app/drivers/database"
	"jadwalin-service/internal/app/drivers/logger"
	"jadwalin-service/internal/app/drivers/messaging"
	"jadwalin-service/internal/app/services/core/bookingrecords"
	"jadwalin-service/internal/app/services/core/bookings"
	"jadwalin-service/internal/app/services/core/sessions"
	"jadwalin-service/internal/app/services/fhir_spark/appointments"
	"jadwalin-service/internal/app/services/fhir_spark/bundles"
	"jadwalin-service/internal/app/services/fhir_spark/patients"
	"jadwalin-service/internal/app/services/fhir_spark/practitioner_roles"
	"jadwalin-service/internal/app/services/fhir_spark/schedules"
	"jadwalin-service/internal/app/services/fhir_spark/slots"
	"jadwalin-service/internal/app/services/shared/notifqueue"
	"jadwalin-service/internal/app/services/shared/redis"
	"jadwalin-service/internal/app/services/shared/slotgate"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, log)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}, log)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap, log *logrus.Logger) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, redisRepository, bootstrap.InternalConfig)

	// FHIR clients
	slotFhirClient := slots.NewSlotFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	scheduleFhirClient := schedules.NewScheduleFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	practitionerRoleFhirClient := practitioner_roles.NewPractitionerRoleFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	patientFhirClient := patients.NewPatientFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	appointmentFhirClient := appointments.NewAppointmentFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	bundleFhirClient := bundles.NewBundleFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.Logger)

	// Slot gate
	slotGate := slotgate.NewRegistry(bootstrap.Logger)

	// Booking records
	bookingRecordRepository := bookingrecords.NewBookingRecordRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		bootstrap.InternalConfig.App.BookingRecordCollection,
	)

	// Notification queue
	notificationPublisher, err := notifqueue.NewService(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.App.BookingNotificationQueue,
		bootstrap.Logger,
	)
	if err != nil {
		log.Fatalf("Failed to declare booking notification queue: %s", err.Error())
	}

	// Session
	sessionService := sessions.NewSessionService(redisRepository)

	// Booking
	bookingUsecase := bookings.NewBookingUsecase(
		slotGate,
		slotFhirClient,
		scheduleFhirClient,
		practitionerRoleFhirClient,
		patientFhirClient,
		appointmentFhirClient,
		bundleFhirClient,
		bookingRecordRepository,
		notificationPublisher,
		sessionService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, bookingController)
}

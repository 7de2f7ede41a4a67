package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gumeo/internal/config"
	"gumeo/internal/database"
	"gumeo/internal/middleware"
	"gumeo/internal/modules/appointment"
	"gumeo/internal/modules/assistant"
	"gumeo/internal/modules/auth"
	"gumeo/internal/modules/notification"
	"gumeo/internal/modules/onboarding"
	"gumeo/internal/modules/patient"
	"gumeo/internal/modules/payment"
	"gumeo/internal/modules/profile"
	jwtsvc "gumeo/internal/pkg/jwt"
	"gumeo/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notification.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, profileRepo, j)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)

	patientService := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientService)

	appointmentService := appointment.NewService(appointmentRepo, patientRepo)
	appointmentHandler := appointment.NewHandler(appointmentService)

	paymentService := payment.NewService(paymentRepo, patientRepo, notificationService)
	paymentHandler := payment.NewHandler(paymentService)

	onboardingService := onboarding.NewService(profileRepo, patientRepo, appointmentRepo)
	onboardingHandler := onboarding.NewHandler(onboardingService)

	aiClient := assistant.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	assistantService := assistant.NewService(aiClient, profileRepo, notificationService)
	assistantHandler := assistant.NewHandler(assistantService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		assistantHandler.RegisterRoutes(v1)

		// service-to-service
		internal := v1.Group("/")
		internal.Use(middleware.InternalTokenAuth(cfg.InternalToken))
		{
			notificationHandler.RegisterDispatchRoute(internal)
		}

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			profileHandler.RegisterRoutes(protected)
			patientHandler.RegisterRoutes(protected)
			appointmentHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			onboardingHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

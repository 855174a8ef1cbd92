package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/anisgadi/roombooking/config"
	"github.com/anisgadi/roombooking/internal/consumer"
	"github.com/anisgadi/roombooking/internal/handler"
	"github.com/anisgadi/roombooking/internal/jobs"
	"github.com/anisgadi/roombooking/internal/middleware"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/anisgadi/roombooking/pkg/cache"
	"github.com/anisgadi/roombooking/pkg/database"
	"github.com/anisgadi/roombooking/pkg/rabbitmq"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Redis is optional; without it the room listing just skips its cache
	var listingCache *cache.Cache
	if cfg.RedisAddr != "" {
		var err error
		listingCache, err = cache.New(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer listingCache.Close()
	}

	// RabbitMQ is optional too; without it lifecycle events and the
	// notification feed are disabled
	var publisher *rabbitmq.Publisher
	notificationRepo := repository.NewNotificationRepository(db)
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewBookingConsumer(notificationRepo).Start(msgs)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	if err := seedAdmin(cfg, userRepo); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, service.SystemClock)
	roomSvc := service.NewRoomService(roomRepo, listingCache)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, reviewRepo, publisher, service.SystemClock, cfg.AutoConfirm)
	reviewSvc := service.NewReviewService(reviewRepo, roomRepo, bookingRepo, service.SystemClock)

	// Completion sweep: confirmed bookings whose end has passed
	if err := jobs.StartCompletionSweep(cron.New(), bookingRepo, service.SystemClock); err != nil {
		log.Fatalf("failed to start completion sweep: %v", err)
	}

	// Echo
	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "roombooking"})
	})

	auth := middleware.JWT(cfg.JWTSecret, userRepo)
	optionalAuth := middleware.OptionalJWT(cfg.JWTSecret, userRepo)

	handler.NewAuthHandler(authSvc).RegisterRoutes(e, auth)
	handler.NewRoomHandler(roomSvc).RegisterRoutes(e, auth, optionalAuth)
	handler.NewBookingHandler(bookingSvc, service.SystemClock).RegisterRoutes(e, auth)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(e, auth)
	handler.NewAdminHandler(userRepo).RegisterRoutes(e, auth)
	handler.NewNotificationHandler(notificationRepo).RegisterRoutes(e, auth)

	log.Printf("Room Booking API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

// seedAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set. Admins cannot self-register through the API.
func seedAdmin(cfg *config.Config, userRepo repository.UserRepository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	if _, err := userRepo.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Printf("seeding admin account %s", cfg.AdminEmail)
	return userRepo.Create(ctx, &models.User{
		FirstName: "Admin",
		LastName:  "Admin",
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		Active:    true,
	})
}

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/config"
	"github.com/arzan03/TourNest/internal/db"
	"github.com/arzan03/TourNest/internal/handlers"
	"github.com/arzan03/TourNest/internal/mail"
	"github.com/arzan03/TourNest/internal/middleware"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/services"
	"github.com/arzan03/TourNest/internal/storage"
	"github.com/arzan03/TourNest/internal/token"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Initialize Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler: apperror.Handler(cfg.Env),
		BodyLimit:    10 * 1024 * 1024, // room for image uploads
	})

	// Middleware
	app.Use(helmet.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Hour,
		LimitReached: func(c *fiber.Ctx) error {
			return apperror.New(fiber.StatusTooManyRequests,
				"too many requests from this IP, please try again in an hour")
		},
	}))

	// Collaborators
	storage.InitMinio(cfg)
	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.DBName)
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	mailer := mail.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)

	services.Init(mongoDB, tokens, mailer)
	handlers.Init(cfg)

	protect := middleware.Protect(tokens)
	manageTours := middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide)

	// Tour Routes
	tours := app.Group("/api/v1/tours")
	tours.Get("/top-5-cheap", handlers.AliasTopTours, handlers.GetAll(services.Tours()))
	tours.Get("/tour-stats", handlers.GetTourStats)
	tours.Get("/monthly-plan/:year", protect,
		middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide),
		handlers.GetMonthlyPlan)
	tours.Get("/", handlers.GetAll(services.Tours()))
	tours.Post("/", protect, manageTours, handlers.CreateOne(services.Tours()))
	tours.Get("/:id", handlers.GetOne(services.Tours()))
	tours.Patch("/:id/images", protect, manageTours, handlers.UploadTourImages)
	tours.Patch("/:id", protect, manageTours, handlers.UpdateOne(services.Tours()))
	tours.Delete("/:id", protect, manageTours, handlers.DeleteOne(services.Tours()))

	// Nested review routes: /api/v1/tours/:tourId/reviews
	tours.Get("/:tourId/reviews", protect, handlers.GetAllReviews)
	tours.Post("/:tourId/reviews", protect, middleware.RestrictTo(models.RoleUser), handlers.CreateReview)

	// User Routes
	users := app.Group("/api/v1/users")
	users.Post("/signup", handlers.Signup)
	users.Post("/login", handlers.Login)
	users.Post("/forgotPassword", handlers.ForgotPassword)
	users.Patch("/resetPassword/:token", handlers.ResetPassword)

	users.Patch("/updateMyPassword", protect, handlers.UpdatePassword)
	users.Get("/me", protect, handlers.GetMe)
	users.Patch("/updateMe", protect, handlers.UpdateMe)
	users.Delete("/deleteMe", protect, handlers.DeleteMe)

	admin := middleware.RestrictTo(models.RoleAdmin)
	users.Get("/", protect, admin, handlers.GetAll(services.Users()))
	users.Post("/", protect, admin, handlers.CreateUser)
	users.Get("/:id", protect, admin, handlers.GetOne(services.Users()))
	users.Patch("/:id", protect, admin, handlers.UpdateOne(services.Users(), handlers.CheckUserUpdate))
	users.Delete("/:id", protect, admin, handlers.DeleteOne(services.Users()))

	// Review Routes
	reviews := app.Group("/api/v1/reviews", protect)
	reviews.Get("/", handlers.GetAllReviews)
	reviews.Post("/", middleware.RestrictTo(models.RoleUser), handlers.CreateReview)
	reviews.Patch("/:id", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), handlers.UpdateReview)
	reviews.Delete("/:id", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), handlers.DeleteReview)

	// Unknown routes
	app.Use(func(c *fiber.Ctx) error {
		return apperror.NotFound(fmt.Sprintf("can't find %s on this server", c.OriginalURL()))
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}

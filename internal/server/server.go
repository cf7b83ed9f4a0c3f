// Package server assembles the Fiber application.
package server

import (
	"strings"
	"time"

	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/render"
	"recipebox/internal/repositories"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Options are the collaborators and settings of the application.
type Options struct {
	DB            *gorm.DB
	JWTSecret     string
	SessionTTL    time.Duration
	CookieSecure  bool
	SessionStore  fiber.Storage            // nil keeps sessions in memory
	Publisher     services.EventPublisher // nil disables notification events
	CORSOrigins   []string
	DisableAccess bool // turns off the access log
}

// App is the assembled application with its services.
type App struct {
	*fiber.App
	Store    *repositories.Store
	Auth     *services.AuthService
	Users    *services.UserService
	Recipes  *services.RecipeService
	Social   *services.SocialService
	Notifier *services.NotificationService
}

// New wires repositories, services, handlers and middleware into a Fiber app.
func New(opts Options) *App {
	// --- Initialize Repositories ---
	store := repositories.NewStore(opts.DB)

	// --- Initialize Services ---
	authService := services.NewAuthService(store.Users, opts.JWTSecret, opts.SessionTTL)
	userService := services.NewUserService(store)
	recipeService := services.NewRecipeService(store, render.NewRenderer())
	socialService := services.NewSocialService(store, opts.Publisher)
	notificationService := services.NewNotificationService(store)

	sessions := middleware.NewSessionStore(middleware.SessionConfig{
		TTL:          opts.SessionTTL,
		CookieSecure: opts.CookieSecure,
		Storage:      opts.SessionStore,
	})
	requireAuth := middleware.AuthRequired(sessions, authService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "recipebox",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	if !opts.DisableAccess {
		app.Use(middleware.AccessLog())
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(opts.CORSOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	// --- Health Check and Metrics Endpoints ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewAuthHandler(authService, userService, sessions).RegisterRoutes(api, requireAuth)
	handlers.NewUserHandler(userService, sessions).RegisterRoutes(api, requireAuth)
	handlers.NewRecipeHandler(recipeService).RegisterRoutes(api, requireAuth)
	handlers.NewSocialHandler(socialService).RegisterRoutes(api, requireAuth)
	handlers.NewNotificationHandler(notificationService).RegisterRoutes(api, requireAuth)

	return &App{
		App:      app,
		Store:    store,
		Auth:     authService,
		Users:    userService,
		Recipes:  recipeService,
		Social:   socialService,
		Notifier: notificationService,
	}
}

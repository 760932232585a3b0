package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/xwingdb/squad-api/internal/config"
	"github.com/xwingdb/squad-api/internal/constants"
	"github.com/xwingdb/squad-api/internal/database"
	"github.com/xwingdb/squad-api/internal/handlers"
	"github.com/xwingdb/squad-api/internal/middleware"
	"github.com/xwingdb/squad-api/internal/oauth"
	"github.com/xwingdb/squad-api/internal/repository"
	"github.com/xwingdb/squad-api/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie-backed session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// CORS for browser clients on other origins, with credentials so the
	// session cookie travels along
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	squadRepo := repository.NewSquadRepository(db)
	authService := services.NewAuthService(userRepo)
	squadService := services.NewSquadService(squadRepo)

	// Initialize handlers
	providers := oauth.NewRegistry(cfg)
	authHandler := handlers.NewAuthHandler(authService, providers)
	squadHandler := handlers.NewSquadHandler(squadService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Squad Database API is running",
		})
	})

	// Landing page and provider discovery
	r.GET("/", authHandler.Index)
	r.GET("/methods", authHandler.Methods)

	// OAuth routes (public)
	auth := r.Group("/auth")
	{
		auth.GET("/failure", authHandler.Failure)
		auth.GET("/logout", authHandler.Logout)
		auth.GET("/:provider", authHandler.Login)
		// Providers differ on the callback verb, so support both
		auth.GET("/:provider/callback", authHandler.Callback)
		auth.POST("/:provider/callback", authHandler.Callback)
	}

	// Everyone can view the full list
	r.GET("/all", squadHandler.ListAll)

	// Squad routes (protected)
	squads := r.Group("/squads")
	squads.Use(middleware.RequireAuth(authService))
	{
		squads.GET("/list", squadHandler.ListMine)
		squads.PUT("/new", squadHandler.Create)
		squads.POST("/:id", squadHandler.Update)
		squads.DELETE("/:id", squadHandler.Delete)
	}

	r.GET("/ping", middleware.RequireAuth(authService), squadHandler.Ping)

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

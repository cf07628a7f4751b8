package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"movie-circles/internal/auth"
	"movie-circles/internal/database"
	"movie-circles/internal/handlers"
	"movie-circles/internal/services"
	"movie-circles/internal/tmdb"
	"movie-circles/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load database configuration
	dbConfig := database.LoadConfig()

	// Connect to database
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize the movie provider and the cache it feeds
	tmdbClient := tmdb.NewClient(os.Getenv("TMDB_BASE_URL"), os.Getenv("TMDB_API_KEY"))
	moviesService := services.NewMoviesService(database.DB, tmdbClient)

	// Start the background search-refresh worker
	workerService := worker.NewService(moviesService, 64)
	if err := workerService.Start(); err != nil {
		log.Fatal("Failed to start background workers:", err)
	}

	// Setup graceful shutdown
	setupGracefulShutdown(workerService)

	// Setup HTTP server
	setupServer(moviesService, workerService)
}

func setupGracefulShutdown(workerService *worker.Service) {
	// Setup signal handling for graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")

		// Stop background workers
		workerService.Stop()

		// Close database connection
		database.Close()

		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer(moviesService *services.MoviesService, workerService *worker.Service) {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins()
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Initialize auth collaborators
	googleClient := auth.NewGoogleClient(
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		os.Getenv("GOOGLE_REDIRECT_URI"),
	)
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set")
	}
	sessions := auth.NewSessionManager(sessionSecret)

	// Initialize services shared across handlers
	notificationsService := services.NewNotificationsService(database.DB)
	circlesService := services.NewCirclesService(database.DB, moviesService, notificationsService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(database.DB, googleClient, sessions, circlesService)
	moviesHandler := handlers.NewMoviesHandler(moviesService, workerService)
	watchstreamsHandler := handlers.NewWatchstreamsHandler(database.DB, moviesService)
	circlesHandler := handlers.NewCirclesHandler(circlesService)
	notificationsHandler := handlers.NewNotificationsHandler(database.DB)
	docsHandler := handlers.NewDocsHandler()

	// Health check
	r.GET("/health", moviesHandler.HealthCheck)

	// Serve documentation
	r.GET("/docs/:doc", docsHandler.ServeMarkdownAsHTML)

	api := r.Group("/api")
	{
		// Auth routes: only /me requires a session
		api.GET("/auth/google/url", authHandler.GoogleURL)
		api.POST("/auth/google/callback", authHandler.GoogleCallback)
		api.POST("/auth/logout", authHandler.Logout)

		authed := api.Group("")
		authed.Use(handlers.RequireSession(sessions))
		{
			authed.GET("/auth/me", authHandler.Me)

			authed.GET("/movies/search", moviesHandler.Search)
			authed.GET("/movies/:id", moviesHandler.GetByID)

			authed.GET("/watchstreams", watchstreamsHandler.List)
			authed.POST("/watchstreams", watchstreamsHandler.Create)
			authed.PUT("/watchstreams/:id", watchstreamsHandler.Rename)
			authed.DELETE("/watchstreams/:id", watchstreamsHandler.Delete)
			authed.GET("/watchstreams/:id/movies", watchstreamsHandler.ListMovies)
			authed.POST("/watchstreams/:id/movies", watchstreamsHandler.AddMovie)
			authed.PUT("/watchstreams/:id/movies/:movieId", watchstreamsHandler.UpdateStatus)
			authed.DELETE("/watchstreams/:id/movies/:movieId", watchstreamsHandler.RemoveMovie)

			authed.GET("/circles", circlesHandler.List)
			authed.POST("/circles", circlesHandler.Create)
			authed.GET("/circles/movies/:circleMovieId/comments", circlesHandler.ListComments)
			authed.POST("/circles/movies/:circleMovieId/comments", circlesHandler.AddComment)
			authed.GET("/circles/:id", circlesHandler.Get)
			authed.DELETE("/circles/:id", circlesHandler.Delete)
			authed.POST("/circles/:id/invite", circlesHandler.Invite)
			authed.POST("/circles/:id/accept", circlesHandler.Accept)
			authed.POST("/circles/:id/decline", circlesHandler.Decline)
			authed.DELETE("/circles/:id/members/:userId", circlesHandler.RemoveMember)
			authed.GET("/circles/:id/movies", circlesHandler.ListMovies)
			authed.POST("/circles/:id/movies", circlesHandler.AddMovie)
			authed.DELETE("/circles/:id/movies/:movieId", circlesHandler.RemoveMovie)

			authed.GET("/notifications", notificationsHandler.List)
			authed.POST("/notifications/:id/read", notificationsHandler.MarkRead)
			authed.POST("/notifications/read-all", notificationsHandler.MarkAllRead)
			authed.DELETE("/notifications/:id", notificationsHandler.Delete)

			authed.GET("/worker/status", moviesHandler.WorkerStatus)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func allowedOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

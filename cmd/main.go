package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lifemate-backend/internal/aichat"
	"lifemate-backend/internal/auth"
	"lifemate-backend/internal/config"
	"lifemate-backend/internal/database"
	"lifemate-backend/internal/handlers"
	"lifemate-backend/internal/jobfeed"
	"lifemate-backend/internal/jobs"
	"lifemate-backend/internal/repository"
	"lifemate-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository and the balance feed shared by every service that
	// writes to the ledger
	repo := repository.NewRepository(database.GetDB())
	balanceFeed := services.NewBalanceFeed()

	// Outbound clients
	feedClient := jobfeed.NewClient(cfg.JobFeed.BaseURL, cfg.JobFeed.APIKey)
	chatClient := aichat.NewClient(cfg.AIChat.BaseURL, cfg.AIChat.APIKey, cfg.AIChat.Model)

	// Initialize services
	authService := services.NewAuthService(database.GetDB())
	ledgerService := services.NewLedgerService(repo, balanceFeed)
	rewardService := services.NewRewardService(repo, balanceFeed)
	withdrawalService := services.NewWithdrawalService(repo, balanceFeed, cfg.App.MinWithdrawal)
	tournamentService := services.NewTournamentService(repo, rewardService)
	adService := services.NewAdService(repo, rewardService)
	jobBoardService := services.NewJobBoardService(repo, feedClient)
	wellnessService := services.NewWellnessService(repo, rewardService)
	adviceService := services.NewCareerAdviceService(repo, chatClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(ledgerService, withdrawalService)
	adHandler := handlers.NewAdHandler(ledgerService, adService)
	gameHandler := handlers.NewGameHandler(ledgerService, rewardService)
	tournamentHandler := handlers.NewTournamentHandler(ledgerService, tournamentService)
	jobHandler := handlers.NewJobHandler(jobBoardService)
	wellnessHandler := handlers.NewWellnessHandler(ledgerService, wellnessService)
	adviceHandler := handlers.NewAdviceHandler(ledgerService, adviceService)
	adminHandler := handlers.NewAdminHandler(tournamentService, withdrawalService)

	// Start background jobs
	settler := jobs.NewTournamentSettler(tournamentService, 5*time.Minute)
	go settler.Start()
	log.Println("Tournament settler started")

	refresher := jobs.NewFeedRefresher(jobBoardService)
	refresher.Start(cfg.JobFeed.RefreshInterval)
	log.Println("Job feed refresher started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.Me)
	}

	// Public content routes
	router.GET("/api/jobs", jobHandler.List)
	router.GET("/api/jobs/:id", jobHandler.Get)
	router.GET("/api/wellness/remedies", wellnessHandler.List)
	router.GET("/api/tournaments", tournamentHandler.List)
	router.GET("/api/tournaments/current", tournamentHandler.Current)
	router.GET("/api/tournaments/:id/leaderboard", tournamentHandler.Leaderboard)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Wallet endpoints
		api.GET("/wallet", walletHandler.GetBalance)
		api.GET("/wallet/transactions", walletHandler.GetTransactions)
		api.GET("/wallet/stream", walletHandler.StreamBalance)
		api.POST("/wallet/withdrawals", walletHandler.RequestWithdrawal)
		api.GET("/wallet/withdrawals", walletHandler.GetWithdrawals)

		// Ad endpoints
		api.POST("/ads/impressions", adHandler.RecordImpression)
		api.POST("/ads/watched", adHandler.AdWatched)

		// Game endpoints
		api.POST("/games/scores", gameHandler.SubmitScore)
		api.GET("/games/scores", gameHandler.GetScores)

		// Tournament endpoints
		api.POST("/tournaments/:id/join", tournamentHandler.Join)

		// Wellness endpoints
		api.POST("/wellness/remedies/:id/complete", wellnessHandler.CompletePractice)

		// Career advice endpoints
		api.POST("/advice", adviceHandler.Ask)
		api.GET("/advice", adviceHandler.History)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware(cfg.App.AdminEmails))
	{
		admin.POST("/tournaments", adminHandler.CreateTournament)
		admin.POST("/tournaments/:id/settle", adminHandler.SettleTournament)
		admin.GET("/withdrawals", adminHandler.WithdrawalQueue)
		admin.POST("/withdrawals/:id/review", adminHandler.ReviewWithdrawal)
		admin.POST("/withdrawals/:id/complete", adminHandler.CompleteWithdrawal)
		admin.POST("/jobs/refresh", jobHandler.Refresh)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	settler.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/squeedr/squeedr-api/internal/config"
	"github.com/squeedr/squeedr-api/internal/database"
	"github.com/squeedr/squeedr-api/internal/handlers"
	"github.com/squeedr/squeedr-api/internal/logger"
	authmw "github.com/squeedr/squeedr-api/internal/middleware"
	"github.com/squeedr/squeedr-api/internal/permissions"
	"github.com/squeedr/squeedr-api/internal/services"
	"github.com/squeedr/squeedr-api/internal/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("squeedr-api", os.Stdout, cfg.IsProduction())

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	sessionService := services.NewSessionService(db)
	workspaceService := services.NewWorkspaceService(db)
	requestService := services.NewPermissionRequestService(db)
	waitlistService := services.NewWaitlistService(db, cfg.WaitlistClaimWindow)

	hub := sse.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService, waitlistService, hub)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	requestHandler := handlers.NewPermissionRequestHandler(requestService)
	waitlistHandler := handlers.NewWaitlistHandler(waitlistService, workspaceService)
	sseHandler := handlers.NewSSEHandler(hub, workspaceService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestLogger(log))

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		limiter := authmw.NewLoginRateLimiter(redis.NewClient(opts))
		auth.Use(limiter.Middleware())
		log.Info().Msg("login rate limiting enabled")
	}
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Post("/auth/select-role", authHandler.SelectRole)
	protected.Post("/auth/switch-role", authHandler.SelectRole)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	admin := protected.Group("/users")
	admin.Use(authmw.RequirePermission(permissions.UsersManage))
	admin.Get("", userHandler.List)
	admin.Post("/invite", userHandler.Invite)
	admin.Patch("/:id/role", userHandler.SetRole)
	admin.Patch("/:id/status", userHandler.SetStatus)
	admin.Delete("/:id", userHandler.Delete)
	admin.Get("/export", userHandler.Export)
	admin.Post("/import", userHandler.Import)

	sessions := protected.Group("/sessions")
	sessions.Get("", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.Get)

	sessionBooking := protected.Group("/sessions")
	sessionBooking.Use(authmw.RequirePermission(permissions.SessionsCreate))
	sessionBooking.Post("", sessionHandler.Create)

	sessionUpdates := protected.Group("/sessions")
	sessionUpdates.Use(authmw.RequirePermission(permissions.SessionsUpdate))
	sessionUpdates.Patch("/:id/status", sessionHandler.Transition)
	sessionUpdates.Patch("/:id/notes", sessionHandler.UpdateNotes)

	sessionRecordings := protected.Group("/sessions")
	sessionRecordings.Use(authmw.RequirePermission(permissions.SessionsRecord))
	sessionRecordings.Post("/:id/recording", sessionHandler.AttachRecording)

	sessionCancel := protected.Group("/sessions")
	sessionCancel.Use(authmw.RequirePermission(permissions.SessionsCancel, permissions.SessionsUpdate))
	sessionCancel.Post("/:id/cancel", sessionHandler.Cancel)

	workspaces := protected.Group("/workspaces")
	workspaces.Get("", workspaceHandler.List)
	workspaces.Get("/:workspaceId", workspaceHandler.Get)
	workspaces.Get("/:workspaceId/events", sseHandler.Connect)

	workspaceAdmin := protected.Group("/workspaces")
	workspaceAdmin.Use(authmw.RequireRole(permissions.RoleOwner))
	workspaceAdmin.Post("", workspaceHandler.Create)
	workspaceAdmin.Patch("/:workspaceId", workspaceHandler.Update)
	workspaceAdmin.Delete("/:workspaceId", workspaceHandler.Delete)

	waitlistAdmin := protected.Group("/workspaces")
	waitlistAdmin.Use(authmw.RequirePermission(permissions.WaitlistManage))
	waitlistAdmin.Get("/:workspaceId/waitlist", waitlistHandler.ListForWorkspace)

	requests := protected.Group("/permission-requests")
	requests.Get("/mine", requestHandler.ListMine)

	requestCreate := protected.Group("/permission-requests")
	requestCreate.Use(authmw.RequirePermission(permissions.RequestsCreate))
	requestCreate.Post("", requestHandler.Create)

	requestReview := protected.Group("/permission-requests")
	requestReview.Use(authmw.RequirePermission(permissions.RequestsReview))
	requestReview.Get("/pending", requestHandler.ListPending)
	requestReview.Post("/:id/approve", requestHandler.Approve)
	requestReview.Post("/:id/deny", requestHandler.Deny)

	waitlist := protected.Group("/waitlist")
	waitlist.Get("/mine", waitlistHandler.ListMine)
	waitlist.Post("/:id/claim", waitlistHandler.Claim)
	waitlist.Post("/:id/cancel", waitlistHandler.Cancel)

	waitlistJoin := protected.Group("/waitlist")
	waitlistJoin.Use(authmw.RequirePermission(permissions.WaitlistJoin))
	waitlistJoin.Post("", waitlistHandler.Join)

	protected.Post("/sse/:clientId/subscribe/:workspaceId", sseHandler.Subscribe)
	protected.Post("/sse/:clientId/unsubscribe/:workspaceId", sseHandler.Unsubscribe)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		for range ticker.C {
			expired, err := waitlistService.ExpireStale(context.Background())
			if err != nil {
				log.Warn().Err(err).Msg("waitlist sweep failed")
			} else if expired > 0 {
				log.Info().Int64("expired", expired).Msg("expired stale waitlist entries")
			}
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Msg("server starting")
		if err := app.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
}

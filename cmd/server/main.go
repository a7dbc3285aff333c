package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"Coveloper/internal/api/middleware"
	"Coveloper/internal/api/routes"
	"Coveloper/internal/auth"
	"Coveloper/internal/config"
	"Coveloper/internal/core/board"
	"Coveloper/internal/core/members"
	"Coveloper/internal/db/migrations"
	postgresRepo "Coveloper/internal/db/postgres"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file loaded over the environment")
	flag.Parse()

	conf, err := config.New(*envFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: conf.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(conf, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, logger *slog.Logger) error {
	db, err := sql.Open("postgres", conf.URL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(conf.MaxOpenConns)
	db.SetMaxIdleConns(conf.MaxOpenConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return err
	}
	logger.Info("connected to database")

	if err := migrations.Up(db); err != nil {
		return err
	}
	logger.Info("migrations completed successfully")

	memberRepo := postgresRepo.NewMemberRepository(db)
	memberService := members.NewMemberService(memberRepo, conf.MemberCacheSize, conf.MemberCacheTTL, logger)
	boardService := board.NewBoardService(postgresRepo.NewStore(db, logger), logger)

	authMiddleware := middleware.NewMemberAuthMiddleware(
		auth.NewVerifier([]byte(conf.JWTSecret), conf.JWTIssuer), memberService, logger)

	rateLimiter := middleware.NewRateLimiter(conf.RateLimitRPS, conf.RateLimitBurst, 5*time.Minute)
	defer rateLimiter.Stop()

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   conf.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(rateLimiter.Middleware)

	routes.RegisterHealthRoutes(r, db)
	routes.RegisterPostRoutes(r, boardService, authMiddleware)
	routes.RegisterCommentRoutes(r, boardService, authMiddleware)
	routes.RegisterVoteRoutes(r, boardService, authMiddleware)
	routes.RegisterMemberRoutes(r, boardService, authMiddleware)

	srv := &http.Server{
		Addr:         ":" + conf.Port,
		Handler:      r,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("board server starting", "port", conf.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", conf.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

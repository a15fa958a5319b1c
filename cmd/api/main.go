package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "travel_assistant/internal/adapters/http_server"
	"travel_assistant/internal/adapters/observability"
	redisad "travel_assistant/internal/adapters/redis"
	"travel_assistant/internal/app"
	"travel_assistant/internal/flow"
	"travel_assistant/internal/shared"
	mysqlrepo "travel_assistant/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	if cfg.MetricsAddr != cfg.HTTPAddr {
		observability.Serve(cfg.MetricsAddr, reg)
	}

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := redisad.NewSessionStore(cache.Client())
	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)

	engineCfg := flow.Config{
		Style:            flow.ParseStyle(cfg.EngineStyle),
		MessagingBaseURL: cfg.MessagingBaseURL,
		FallbackPhone:    cfg.ContactPhone,
	}
	conv := app.NewConversationService(catalog, sessions, engineCfg, cfg.SessionTTL)

	// http
	srv := server.New(server.Options{Timeout: cfg.HTTPTimeout, AllowedOrigins: cfg.WidgetOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Conv: conv, Catalog: catalog, ReplyDelay: cfg.ReplyDelay})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("style", cfg.EngineStyle).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	_ = cache.Client().Close()
	_ = db.Close()
	log.Info().Msg("API stopped")
}

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-jobtrack/internal/config"
	"github.com/diewo77/go-jobtrack/internal/db"
	"github.com/diewo77/go-jobtrack/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(); err != nil {
			log.Fatal().Err(err).Msg("migrate-only failed")
		}
		log.Info().Msg("migrations completed; exiting as requested")
		return
	}

	dbConn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(dbConn)}

	go func() {
		log.Info().Str("env", cfg.Env).Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

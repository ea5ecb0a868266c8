package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-board/config"
	"github.com/goliatone/go-board/server"
	"github.com/goliatone/go-board/storage"
)

type stdLogger struct{}

func (stdLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] "+format+"\n", args...) }
func (stdLogger) Info(format string, args ...any)  { fmt.Printf("[INF] "+format+"\n", args...) }
func (stdLogger) Error(format string, args ...any) { fmt.Printf("[ERR] "+format+"\n", args...) }

func main() {
	logger := stdLogger{}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config: %v", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("storage: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.Init(context.Background(), db); err != nil {
		logger.Error("storage init: %v", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, db, logger)
	if err != nil {
		logger.Error("server setup: %v", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}()

	logger.Info("listening on %s", cfg.HTTPAddr)
	if err := srv.Listen(); err != nil {
		logger.Error("server: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"numbers-bot/internal/config"
	environment "numbers-bot/internal/env"
	"numbers-bot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := environment.Setup(ctx)
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", cfgErr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "failed to setup environment: %v\n", err)
		os.Exit(1)
	}

	logger := env.Logger
	logger.Info("Starting numbers-bot application")

	// Start observability server in background
	go func() {
		logger.Info("Starting observability server", slog.String("addr", env.Servers.HTTP.Observability.Addr))
		if err := env.Servers.HTTP.Observability.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Observability server error", slog.Any("error", err))
		}
	}()

	if err := env.Services.Workers.Start(); err != nil {
		logger.Error("Failed to start workers", slog.Any("error", err))
		shutdown(env)
		os.Exit(1)
	}

	if err := env.Services.TelegramRouter.SetupBotCommands(); err != nil {
		// Не критично, меню просто не обновится
		logger.Error("Failed to setup bot commands", slog.Any("error", err))
	}

	dispatcher := telegram.NewDispatcher(env.Services.TelegramRouter.Route, logger)
	updates := env.Clients.TelegramBot.Start()

	logger.Info("Bot started successfully. Press Ctrl+C to stop.")
	dispatcher.Run(ctx, updates)

	logger.Info("Shutting down application...")
	env.Clients.TelegramBot.Stop()
	dispatcher.Wait()
	shutdown(env)
	logger.Info("Application stopped")
}

func shutdown(env *environment.Env) {
	logger := env.Logger

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer cancel()

	env.Services.Workers.Stop()

	if err := env.Servers.HTTP.Observability.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Observability server shutdown error", slog.Any("error", err))
	}

	for _, closer := range env.Closers {
		closer()
	}
}

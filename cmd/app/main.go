package main

import (
	"butler/cmd"
	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/domain/model/robot"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfigFromProcess()
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: configs.LogLevel}))

	app, err := cmd.NewCompositionRoot(configs, os.Stdin, os.Stdout, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	controllerDone := make(chan struct{})
	go func() {
		defer close(controllerDone)
		_ = app.Controller().Run(ctx)
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- startWebServer(e, configs.HTTPPort)
	}()

	intakeDone := make(chan error, 1)
	go func() {
		intakeDone <- app.CreateIntakeLoop().Run(ctx)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	cancelHandler := app.CreateCancelDeliveryCommandHandler()

	for running := true; running; {
		select {
		case sig := <-signals:
			if sig != os.Interrupt {
				logger.Info("Shutting down", "signal", sig.String())
				running = false
				continue
			}
			requestCancel(ctx, cancelHandler, logger)

		case err := <-intakeDone:
			intakeDone = nil
			switch {
			case err == nil:
				logger.Info("Operator requested exit")
				running = false
			case errors.Is(err, io.EOF):
				logger.Warn("Console closed, serving the HTTP API only")
			default:
				logger.Error("Order intake failed", "error", err)
				running = false
			}

		case err := <-serverErr:
			logger.Error("HTTP server stopped", "error", err)
			running = false
		}
	}

	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	<-controllerDone
}

func requestCancel(ctx context.Context, handler commands.CancelDeliveryCommandHandler, logger *slog.Logger) {
	command, err := commands.NewCancelDeliveryCommand(robot.CancelInterrupt)
	if err == nil {
		err = handler.Handle(ctx, command)
	}
	if err != nil {
		logger.Error("Cancellation request failed", "error", err)
	}
}

func startWebServer(e *echo.Echo, port string) error {
	err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

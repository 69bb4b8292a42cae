package main

import (
	"context"
	"io"
	"os"

	"github.com/hweiming/dispatch-tracker/internal/capture"
	"github.com/hweiming/dispatch-tracker/internal/console"
	"github.com/hweiming/dispatch-tracker/internal/dispatch"
	"github.com/hweiming/dispatch-tracker/internal/dispatchlog"
	"github.com/hweiming/dispatch-tracker/internal/labels"
	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/internal/registry"
	"github.com/hweiming/dispatch-tracker/internal/scan"
	"github.com/hweiming/dispatch-tracker/pkg/config"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "dispatch"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "dispatch",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	seed, err := registry.LoadSeedOrders(cfg.Seed.Path)
	if err != nil {
		logg.Error(context.Background(), "failed to load seed orders", err)
		os.Exit(1)
	}

	fleet := registry.Default()
	orderStore := orders.NewStore(seed)
	logStore := dispatchlog.NewStore()

	recorder, err := dispatch.NewRecorder(dispatch.RecorderParams{
		Orders: orderStore,
		Log:    logStore,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recorder", err)
		os.Exit(1)
	}

	camera, err := capture.NewCamera(
		&capture.StubSource{},
		capture.StubResizer{MaxWidthPx: cfg.Media.MaxWidthPx, JPEGQuality: cfg.Media.JPEGQuality},
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create camera", err)
		os.Exit(1)
	}

	session, err := scan.NewSession(scan.SessionParams{
		Orders:        orderStore,
		Trucks:        fleet,
		Camera:        camera,
		Pad:           capture.StubSignaturePad{},
		Locator:       capture.StubLocator{Location: cfg.Geo.PlaceholderLocation},
		Recorder:      recorder,
		Logger:        logg,
		Actor:         cfg.Scanner.Actor(),
		TerminalDwell: cfg.Scanner.TerminalDwell,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scan session", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Store:  orderStore,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	app, err := console.New(console.Params{
		In:       os.Stdin,
		Out:      os.Stdout,
		Orders:   orderStore,
		Service:  orderService,
		Log:      logStore,
		Registry: fleet,
		Session:  session,
		Printer:  labels.WriterPrinter{Out: os.Stdout},
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create console", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"actor":  cfg.Scanner.Actor(),
		"orders": orderStore.Len(),
	})
	logg.Info(ctx, "starting dispatch console")

	if err := app.Run(ctx); err != nil && err != io.EOF {
		logg.Error(ctx, "console stopped unexpectedly", err)
		os.Exit(1)
	}
}

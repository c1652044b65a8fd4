package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/harrowdigital/printdesk-backend/api/controllers"
	"github.com/harrowdigital/printdesk-backend/api/routes"
	"github.com/harrowdigital/printdesk-backend/internal/intake"
	"github.com/harrowdigital/printdesk-backend/internal/mailer"
	"github.com/harrowdigital/printdesk-backend/internal/requests"
	"github.com/harrowdigital/printdesk-backend/internal/status"
	"github.com/harrowdigital/printdesk-backend/pkg/config"
	"github.com/harrowdigital/printdesk-backend/pkg/db"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
	"github.com/harrowdigital/printdesk-backend/pkg/migrate"
	"github.com/harrowdigital/printdesk-backend/pkg/sendgrid"
	"github.com/harrowdigital/printdesk-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	gcsClient, err := gcs.NewClient(context.Background(), cfg.Uploads, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cloud storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing cloud storage client", err)
		}
	}()

	sendgridClient, err := sendgrid.NewClient(cfg.Mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sendgrid client", err)
		os.Exit(1)
	}

	mailService, err := mailer.NewService(sendgridClient, cfg.Mail)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail service", err)
		os.Exit(1)
	}

	repo := requests.NewRepository(dbClient.DB())

	intakeService, err := intake.NewService(intake.ServiceParams{
		Logger:  logg,
		Repo:    repo,
		Folders: gcsClient,
		Mailer:  mailService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create intake service", err)
		os.Exit(1)
	}

	statusService, err := status.NewService(status.ServiceParams{
		Logger: logg,
		Repo:   repo,
		Mailer: mailService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create status service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:        cfg,
			Logger:        logg,
			IntakeService: intakeService,
			StatusService: statusService,
			Pingers: map[string]controllers.Pinger{
				"database": dbClient,
				"storage":  gcsClient,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

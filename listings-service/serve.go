package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/inmohub/listings/listings-service/handlers"
	"github.com/inmohub/listings/listings-service/routes"
	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/db"
	"github.com/inmohub/listings/shared/middleware"
)

func newServeCommand(envFile cobraflags.Flag) *cobra.Command {
	port := &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on, overrides PORT",
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, envFile, port)
		},
	}
	port.Register(cmd)
	return cmd
}

func serve(cmd *cobra.Command, envFile, portOverride cobraflags.Flag) error {
	cfg, err := loadConfig(envFile, "8080")
	if err != nil {
		return err
	}
	if port := portOverride.GetString(); port != "" {
		cfg.Port = port
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be set")
	}
	gin.SetMode(cfg.GinMode)

	database, err := db.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	sm := services.NewServiceManager(database, services.Options{
		Provisioning: cfg.Auth.Provisioning,
		Notifier:     services.NewNotifier(database, cfg.SMTP),
	})
	r := routes.SetupRoutes(handlers.NewHandlerManager(sm), routes.Options{
		Verifier: middleware.TokenVerifier{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.JWTIssuer,
		},
		Resolver:    sm.IdentityService,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      slog.Default(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listings service starting", "port", cfg.Port, "provisioning", cfg.Auth.Provisioning)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

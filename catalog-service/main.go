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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/inmohub/listings/catalog-service/handlers"
	"github.com/inmohub/listings/catalog-service/routes"
	"github.com/inmohub/listings/catalog-service/services"
	"github.com/inmohub/listings/shared/config"
	"github.com/inmohub/listings/shared/db"
)

const (
	envFileFlag = "env-file"
	portFlag    = "port"
)

var serveFlags = map[string]cobraflags.Flag{
	envFileFlag: &cobraflags.StringFlag{
		Name:  envFileFlag,
		Value: ".env",
		Usage: "Path of the .env file loaded before the environment",
	},
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on, overrides PORT",
	},
}

func newRootCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the public catalog API",
		RunE:  serve,
	}
	cobraflags.RegisterMap(serveCmd, serveFlags)

	root := &cobra.Command{
		Use:           "catalog-service",
		Short:         "Public, read-only catalog of approved listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd)
	return root
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveFlags[envFileFlag].GetString(), "8081")
	if err != nil {
		return err
	}
	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.Port = port
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	gin.SetMode(cfg.GinMode)

	database, err := db.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(database)

	sm := services.NewServiceManager(database)
	r := routes.SetupRoutes(handlers.NewHandlerManager(sm), cfg.CORSOrigins, slog.Default())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("catalog service starting", "port", cfg.Port)
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

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("catalog-service failed", "error", err)
		os.Exit(1)
	}
}

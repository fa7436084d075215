package main

import (
	"log/slog"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/inmohub/listings/shared/config"
)

const (
	envFileFlag = "env-file"
	portFlag    = "port"
)

func newRootCommand() *cobra.Command {
	root, _ := buildRootCommand()
	return root
}

// buildRootCommand wires the subcommands under one root carrying the
// persistent --env-file flag. Flags are built per call since cobraflags
// binds each flag to viper only once.
func buildRootCommand() (*cobra.Command, cobraflags.Flag) {
	root := &cobra.Command{
		Use:           "listings-service",
		Short:         "Back-office API for agencies, users and listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	envFile := &cobraflags.StringFlag{
		Name:       envFileFlag,
		Value:      ".env",
		Usage:      "Path of the .env file loaded before the environment",
		Persistent: true,
	}
	envFile.Register(root)

	root.AddCommand(
		newServeCommand(envFile),
		newMigrateCommand(envFile),
		newTokenCommand(envFile),
	)
	return root, envFile
}

// loadConfig reads configuration and installs the JSON logger at the
// configured level.
func loadConfig(envFile cobraflags.Flag, defaultPort string) (*config.Config, error) {
	cfg, err := config.Load(envFile.GetString(), defaultPort)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("listings-service failed", "error", err)
		os.Exit(1)
	}
}

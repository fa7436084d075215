package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/inmohub/listings/shared/utils"
)

const (
	subjectFlag = "subject"
	emailFlag   = "email"
	ttlFlag     = "ttl"
)

func newTokenFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		subjectFlag: &cobraflags.StringFlag{
			Name:  subjectFlag,
			Value: "",
			Usage: "External auth id placed in the sub claim (required)",
		},
		emailFlag: &cobraflags.StringFlag{
			Name:  emailFlag,
			Value: "",
			Usage: "Email claim",
		},
		ttlFlag: &cobraflags.StringFlag{
			Name:  ttlFlag,
			Value: "1h",
			Usage: "Token lifetime",
		},
	}
}

// newTokenCommand mints identity tokens signed with the configured secret.
// It stands in for the identity provider in local development.
func newTokenCommand(envFile cobraflags.Flag) *cobra.Command {
	tokenFlags := newTokenFlags()
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development identity token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(envFile, "8080")
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("AUTH_JWT_SECRET must be set")
			}
			subject := tokenFlags[subjectFlag].GetString()
			if subject == "" {
				return errors.New("--subject is required")
			}
			ttl, err := time.ParseDuration(tokenFlags[ttlFlag].GetString())
			if err != nil {
				return fmt.Errorf("invalid --ttl: %w", err)
			}

			token, err := utils.GenerateJWT([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTIssuer, utils.Identity{
				ExternalID: subject,
				Email:      tokenFlags[emailFlag].GetString(),
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, tokenFlags)
	return cmd
}

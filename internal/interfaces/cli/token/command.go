// Package token issues access tokens for local runs and smoke tests.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"redsys/internal/infrastructure/auth"
	"redsys/internal/infrastructure/config"
)

var (
	env    string
	userID uint
	ttl    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		Long:  `Sign an access token with the configured JWT secret. The user must exist and be active for the API to accept it.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User ID the token identifies (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if userID == 0 {
		return fmt.Errorf("--user must be a positive user ID")
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	token, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer).Issue(userID, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-server/internal/auth"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token with the configured secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envConfig, _, err := loadConfig()
			if err != nil {
				return err
			}

			verifier, err := auth.NewJWTVerifier(envConfig.AuthJWTSecret, envConfig.AuthJWTIssuer, envConfig.AuthJWTAudience)
			if err != nil {
				return err
			}

			token, err := verifier.Issue(userID, email, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to embed in the token")
	cmd.Flags().StringVar(&email, "email", "", "email to embed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

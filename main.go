package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/logging"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:           "finance-server",
		Short:         "Personal finance accounts and transactions API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file; environment variables override it")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and returns a logger at the configured level.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	logger := logging.SetupLogging()

	envConfig, err := config.ProcessEnvironmentVariables(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Warn("logging.SetLevel")
	}

	return envConfig, logger, nil
}

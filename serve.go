package main

import (
	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/events"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envConfig, logger, err := loadConfig()
			if err != nil {
				return err
			}
			logger.WithField("storageDriver", envConfig.StorageDriver).Info("finance-server starting")

			store, err := storage.New(envConfig)
			if err != nil {
				return err
			}
			defer store.Close()

			var publisher events.Publisher = events.NopPublisher{}
			if envConfig.RedisAddress != "" {
				client, err := events.NewRedisClient(envConfig.RedisAddress, envConfig.RedisPassword, envConfig.RedisDB)
				if err != nil {
					return err
				}
				defer client.Close()
				publisher = events.NewRedisPublisher(client, events.DefaultStream)
			} else {
				logger.Info("REDIS_ADDR not set, events disabled")
			}

			verifier, err := auth.NewJWTVerifier(envConfig.AuthJWTSecret, envConfig.AuthJWTIssuer, envConfig.AuthJWTAudience)
			if err != nil {
				return err
			}

			binding, err := auth.ParseUserBinding(envConfig.AuthUserBinding)
			if err != nil {
				return err
			}

			httpRest := api.Rest{
				Logger:   logger,
				Port:     envConfig.Port,
				Service:  service.NewService(store, publisher, logger),
				Storage:  store,
				Verifier: verifier,
				Binding:  binding,
			}
			return httpRest.Serve(cmd.Context())
		},
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL string

	root := &cobra.Command{
		Use:           "agency",
		Short:         "Agency website API client and demo-mode gateway",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides "+config.APIURLEnv+" and the build mode)")

	newClient := func() *client.Client {
		if baseURL != "" {
			return client.New(baseURL, client.WithTimeout(config.GetAPITimeout()))
		}
		return client.NewFromConfig()
	}

	root.AddCommand(newServeCmd(), newCallCmd(newClient), newHealthCmd(newClient))
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway that serves content with demo-mode fallbacks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := config.GetLogger()
			defer func() { _ = logger.Sync() }()

			if err := server.NewFromConfig(ctx).Start(ctx); err != nil {
				logger.Errorw("Gateway error", "error", err)
				return err
			}
			logger.Infow("Gateway shutdown complete")
			return nil
		},
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"polaris/components/internal/container"
	"polaris/components/internal/domain"
	"polaris/components/internal/routing"
)

func serveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve pages, actions and route resolution over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := container.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			defer app.Close()

			if opts.configPath != "" {
				if err := app.WatchConfig(opts.configPath); err != nil {
					log.Warnf("⚠️ Route reload disabled: %v", err)
				}
			}

			log.Info("🚀 Starting Polaris components server...")
			return app.Run(ctx)
		},
	}
}

func renderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render <page>",
		Short: "Render a page to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			defer app.Close()

			return app.Service.RenderPage(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func resolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <route> [params...]",
		Short: "Print the path of a named route",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			table, err := container.RouteTable(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			params := make([]any, 0, len(args)-1)
			for _, p := range args[1:] {
				params = append(params, p)
			}

			path, err := routing.NewResolver(table).Resolve(args[0], params...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func consumeCmd(opts *options) *cobra.Command {
	var consumer string

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Print action events from the redis stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := container.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			defer app.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			return app.Consume(ctx, consumer, func(_ context.Context, event *domain.ActionEvent) error {
				return enc.Encode(event)
			})
		},
	}

	host, _ := os.Hostname()
	cmd.Flags().StringVar(&consumer, "consumer", "consumer-"+host, "Consumer name within the group")

	return cmd
}

func syncRoutesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-routes",
		Short: "Write the configured route definitions to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return container.SyncRoutes(cmd.Context(), cfg)
		},
	}
}

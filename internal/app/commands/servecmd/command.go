package servecmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/acronis/go-scoop/internal/app/command"
	"github.com/acronis/go-scoop/internal/server"
	"github.com/acronis/go-scoop/pkg/metrics"
)

const listenFlag = "listen"

func New(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve license and version badges over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return command.Wrap("load config", err)
			}
			if cmd.Flags().Changed(listenFlag) {
				if cfg.Listen, err = cmd.Flags().GetString(listenFlag); err != nil {
					return fmt.Errorf("get listen flag: %w", err)
				}
			}

			m := metrics.New(
				metrics.WithNamespace(cfg.Metrics.Namespace),
				metrics.WithBuckets(cfg.Metrics.Buckets),
			)
			svc := command.NewService(cfg, m)

			slog.Info("Starting badge server",
				slog.String("addr", cfg.Listen),
				slog.String("github", cfg.GitHub.BaseURL),
				slog.String("index", cfg.Index.Location().String()),
			)
			return command.WrapError(server.New(svc, server.WithMetrics(m)).ListenAndServe(ctx, cfg.Listen))
		},
	}
	cmd.Flags().StringP(listenFlag, "l", ":8080", "address to listen on")
	return cmd
}

package versioncmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	scoop "github.com/acronis/go-scoop"
	"github.com/acronis/go-scoop/internal/app/command"
	"github.com/acronis/go-scoop/pkg/badge"
)

func New(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version <app>",
		Short: "print the version badge of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := command.GetBucket(cmd)
			if err != nil {
				return err
			}
			svc, err := command.InitializeService(cmd)
			if err != nil {
				return command.Wrap("initialize service", err)
			}
			return command.WrapError(printVersion(ctx, cmd, svc, args[0], bucket))
		},
	}
	command.AddBucketFlag(cmd)
	return cmd
}

func printVersion(ctx context.Context, cmd *cobra.Command, svc *scoop.Service, app, bucket string) error {
	slog.Debug("Looking up version", slog.String("app", app), slog.String("bucket", bucket))

	version, err := svc.Version(ctx, app, bucket)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), badge.Version(version))
	return nil
}

package bucketscmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	scoop "github.com/acronis/go-scoop"
	"github.com/acronis/go-scoop/internal/app/command"
)

func New(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "list the known buckets and their repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := command.InitializeService(cmd)
			if err != nil {
				return command.Wrap("initialize service", err)
			}
			return command.WrapError(listBuckets(ctx, cmd, svc))
		},
	}
}

func listBuckets(ctx context.Context, cmd *cobra.Command, svc *scoop.Service) error {
	idx, err := svc.Buckets(ctx)
	if err != nil {
		return fmt.Errorf("get bucket index: %w", err)
	}
	for _, name := range idx.Names() {
		u, _ := idx.Lookup(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, u)
	}
	return nil
}

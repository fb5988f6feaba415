package command

import (
	"github.com/spf13/cobra"

	scoop "github.com/acronis/go-scoop"
	"github.com/acronis/go-scoop/internal/config"
	"github.com/acronis/go-scoop/pkg/bucket"
	"github.com/acronis/go-scoop/pkg/metrics"
	"github.com/acronis/go-scoop/pkg/storage"
	"github.com/acronis/go-scoop/pkg/storage/githubstorage"
)

// InitializeStorage builds the GitHub storage described by cfg, instrumented when m is set.
func InitializeStorage(cfg config.Config, m *metrics.Metrics) storage.Storage {
	st := githubstorage.New(
		githubstorage.WithBaseURL(cfg.GitHub.BaseURL),
		githubstorage.WithTimeout(cfg.GitHub.Timeout),
		githubstorage.WithToken(cfg.GitHub.Token),
	)
	if m != nil {
		st = metrics.InstrumentStorage(st, m)
	}
	return st
}

// NewService builds the lookup service described by cfg.
func NewService(cfg config.Config, m *metrics.Metrics) *scoop.Service {
	st := InitializeStorage(cfg, m)
	return scoop.New(
		scoop.WithStorage(st),
		scoop.WithIndexCache(bucket.NewIndexCache(st, bucket.WithSource(cfg.Index.Location()))),
		scoop.WithBranch(cfg.Manifest.Branch),
	)
}

// InitializeService loads the command configuration and builds the lookup service from it.
func InitializeService(cmd *cobra.Command) (*scoop.Service, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return NewService(cfg, nil), nil
}

/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package scoop

import (
	"context"
	"errors"
	"log/slog"

	"github.com/acronis/go-scoop/pkg/bucket"
	"github.com/acronis/go-scoop/pkg/manifest"
	"github.com/acronis/go-scoop/pkg/storage"
	"github.com/acronis/go-scoop/pkg/storage/githubstorage"
)

// Service resolves Scoop buckets and reads package manifests from them.
// It is safe for concurrent use; the bucket index is loaded once per Service.
type Service struct {
	index     *bucket.IndexCache
	manifests *manifest.Reader
}

// New creates a Service. Without options it reads from GitHub.
func New(opts ...Option) *Service {
	o := makeOptions(opts...)
	if o.storage == nil {
		o.storage = githubstorage.New()
	}
	if o.indexCache == nil {
		o.indexCache = bucket.NewIndexCache(o.storage)
	}
	return &Service{
		index:     o.indexCache,
		manifests: manifest.NewReader(o.storage, o.branch),
	}
}

// Buckets returns the bucket index.
func (s *Service) Buckets(ctx context.Context) (*bucket.Index, error) {
	return s.index.Get(ctx)
}

// Resolve turns a bucket token into a repository.
// An empty token selects the main bucket.
func (s *Service) Resolve(ctx context.Context, token string) (bucket.Repo, error) {
	idx, err := s.index.Get(ctx)
	if err != nil {
		return bucket.Repo{}, err
	}

	res := bucket.Resolve(token, idx)
	if !res.OK() {
		slog.Debug("Bucket not resolved", slog.String("bucket", res.Token), slog.String("reason", res.Reason))
		return bucket.Repo{}, &BucketNotFoundError{Bucket: res.Token, Reason: res.Reason}
	}
	slog.Debug("Bucket resolved", slog.String("bucket", res.Token),
		slog.String("source", res.Source.String()), slog.String("repo", res.Repo.String()))
	return res.Repo, nil
}

// Version returns the version of app published in the bucket named by token.
func (s *Service) Version(ctx context.Context, app, token string) (string, error) {
	repo, err := s.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	version, err := s.manifests.Version(ctx, repo, app)
	if err != nil {
		return "", packageError(app, token, err)
	}
	return version, nil
}

// Licenses returns the license identifiers of app published in the bucket named by token.
func (s *Service) Licenses(ctx context.Context, app, token string) (manifest.LicenseList, error) {
	repo, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	licenses, err := s.manifests.Licenses(ctx, repo, app)
	if err != nil {
		return nil, packageError(app, token, err)
	}
	return licenses, nil
}

// packageError reports a missing manifest against the caller's bucket token.
// Any other error is returned unchanged.
func packageError(app, token string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &PackageNotFoundError{App: app, Bucket: bucket.Token(token), Err: err}
	}
	return err
}

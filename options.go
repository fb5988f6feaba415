/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package scoop

import (
	"github.com/acronis/go-scoop/pkg/bucket"
	"github.com/acronis/go-scoop/pkg/storage"
)

// Option is an interface for functional options that can be passed to the New constructor.
type Option interface {
	apply(*options)
}

type options struct {
	storage    storage.Storage
	indexCache *bucket.IndexCache
	branch     string
}

type storageOption struct{ st storage.Storage }

func (o storageOption) apply(opts *options) {
	opts.storage = o.st
}

// WithStorage sets the storage manifests and the bucket index are fetched from.
func WithStorage(st storage.Storage) Option {
	return storageOption{st: st}
}

type indexCacheOption struct{ cache *bucket.IndexCache }

func (o indexCacheOption) apply(opts *options) {
	opts.indexCache = o.cache
}

// WithIndexCache shares an existing bucket index cache instead of creating one.
func WithIndexCache(cache *bucket.IndexCache) Option {
	return indexCacheOption{cache: cache}
}

type branchOption string

func (o branchOption) apply(opts *options) {
	opts.branch = string(o)
}

// WithBranch sets the branch manifests are read from.
func WithBranch(branch string) Option {
	return branchOption(branch)
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package scoop

import (
	"fmt"

	"github.com/acronis/go-scoop/pkg/bucket"
	"github.com/acronis/go-scoop/pkg/storage"
)

var (
	// ErrUpstreamUnavailable is returned when the bucket index cannot be loaded.
	ErrUpstreamUnavailable = bucket.ErrUpstreamUnavailable
	// ErrManifestUnavailable is returned when a manifest cannot be fetched for reasons
	// other than its absence.
	ErrManifestUnavailable = storage.ErrUnavailable
)

// BucketNotFoundError reports a bucket token that is neither a known short name
// nor a GitHub repository URL.
type BucketNotFoundError struct {
	Bucket string
	Reason string
}

func (e *BucketNotFoundError) Error() string {
	return fmt.Sprintf("bucket %q not found", e.Bucket)
}

// PackageNotFoundError reports a manifest missing from a resolved bucket.
// Bucket holds the token given by the caller, not the resolved repository.
type PackageNotFoundError struct {
	App    string
	Bucket string
	Err    error
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in bucket %q", e.App, e.Bucket)
}

func (e *PackageNotFoundError) Unwrap() error {
	return e.Err
}

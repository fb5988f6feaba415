package manifest

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/acronis/go-scoop/pkg/bucket"
	"github.com/acronis/go-scoop/pkg/jsonschema"
	"github.com/acronis/go-scoop/pkg/storage"
)

const (
	// DefaultBranch is the branch manifests are read from.
	DefaultBranch = "master"
	// Dir is the directory holding manifests inside a bucket repository.
	Dir = "bucket"
)

var versionSchema = jsonschema.MustCompileSchema(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["version"],
	"properties": {
		"version": {"type": "string", "minLength": 1}
	}
}`)

var licenseSchema = jsonschema.MustCompileSchema(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"definitions": {
		"entry": {
			"oneOf": [
				{"type": "string", "minLength": 1},
				{
					"type": "object",
					"required": ["identifier"],
					"properties": {
						"identifier": {"type": "string", "minLength": 1}
					}
				}
			]
		}
	},
	"type": "object",
	"required": ["license"],
	"properties": {
		"license": {
			"oneOf": [
				{"$ref": "#/definitions/entry"},
				{"type": "array", "items": {"$ref": "#/definitions/entry"}}
			]
		}
	}
}`)

// Path returns the manifest path of app. The name is used verbatim.
func Path(app string) string {
	return fmt.Sprintf("%s/%s.json", Dir, app)
}

// Reader reads package manifests from bucket repositories.
type Reader struct {
	storage storage.Storage
	branch  string
}

func NewReader(st storage.Storage, branch string) *Reader {
	if branch == "" {
		branch = DefaultBranch
	}
	return &Reader{storage: st, branch: branch}
}

func (r *Reader) location(repo bucket.Repo, app string) storage.Location {
	return storage.Location{
		User:   repo.User,
		Repo:   repo.Repo,
		Branch: r.branch,
		Path:   Path(app),
	}
}

// Version returns the version string of app, verbatim.
// A missing manifest is reported as storage.ErrNotFound.
func (r *Reader) Version(ctx context.Context, repo bucket.Repo, app string) (string, error) {
	data, err := storage.FetchJSON(ctx, r.storage, r.location(repo, app), versionSchema)
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(data, "version").String(), nil
}

// LicenseEntries returns the license entries of app as declared in the manifest.
func (r *Reader) LicenseEntries(ctx context.Context, repo bucket.Repo, app string) ([]License, error) {
	data, err := storage.FetchJSON(ctx, r.storage, r.location(repo, app), licenseSchema)
	if err != nil {
		return nil, err
	}
	return parseLicenses(gjson.GetBytes(data, "license")), nil
}

// Licenses returns the license identifiers of app in manifest order.
// A missing manifest is reported as storage.ErrNotFound.
func (r *Reader) Licenses(ctx context.Context, repo bucket.Repo, app string) (LicenseList, error) {
	licenses, err := r.LicenseEntries(ctx, repo, app)
	if err != nil {
		return nil, err
	}
	return Normalize(licenses), nil
}

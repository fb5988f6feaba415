package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/acronis/go-scoop/pkg/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrNotFound is returned by a Storage when the requested file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrUnavailable is returned by a Storage when the repository host cannot be reached
	// or answers with an unexpected status.
	ErrUnavailable = errors.New("upstream unavailable")
)

// Location addresses a single file inside a repository branch.
type Location struct {
	User   string
	Repo   string
	Branch string
	Path   string
}

func (l Location) String() string {
	return fmt.Sprintf("%s/%s@%s:%s", l.User, l.Repo, l.Branch, l.Path)
}

// Storage retrieves raw file contents from a repository host.
type Storage interface {
	Fetch(ctx context.Context, loc Location) ([]byte, error)
}

// FetchJSON fetches the file at loc and validates it against schema.
// A missing file is reported as ErrNotFound; schema violations are returned unchanged.
func FetchJSON(ctx context.Context, st Storage, loc Location, schema *gojsonschema.Schema) ([]byte, error) {
	data, err := st.Fetch(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loc, err)
	}
	if err := jsonschema.ValidateBytes(schema, data); err != nil {
		return nil, fmt.Errorf("validate %s: %w", loc, err)
	}
	return data, nil
}

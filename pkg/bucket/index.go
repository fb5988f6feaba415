package bucket

import (
	"encoding/json"
	"fmt"
	"regexp"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/acronis/go-scoop/pkg/jsonschema"
)

const (
	// DefaultBucket is used when the caller names no bucket.
	DefaultBucket = "main"

	IndexUser   = "ScoopInstaller"
	IndexRepo   = "Scoop"
	IndexBranch = "master"
	IndexFile   = "buckets.json"
)

// repoURLPattern extracts user and repo from a GitHub repository URL.
// It is deliberately unanchored at the start and stops at the first slash after the repo.
var repoURLPattern = regexp.MustCompile(`https://github\.com/(?P<user>.*?)/(?P<repo>.*?)(/|$)`)

var indexSchema = jsonschema.MustCompileSchema(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"propertyNames": {"minLength": 1},
	"additionalProperties": {
		"type": "string",
		"pattern": "https://github\\.com/.*?/.*?(/|$)"
	}
}`)

// Repo is a GitHub repository hosting a bucket.
type Repo struct {
	User string
	Repo string
}

func (r Repo) String() string {
	return r.User + "/" + r.Repo
}

// URL returns the canonical repository URL.
func (r Repo) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s", r.User, r.Repo)
}

// ParseRepoURL extracts the repository from a GitHub repository URL.
func ParseRepoURL(u string) (Repo, bool) {
	m := repoURLPattern.FindStringSubmatch(u)
	if m == nil {
		return Repo{}, false
	}
	return Repo{
		User: m[repoURLPattern.SubexpIndex("user")],
		Repo: m[repoURLPattern.SubexpIndex("repo")],
	}, true
}

// Index maps bucket short names to repository URLs, in upstream order.
// It is immutable once parsed.
type Index struct {
	buckets *orderedmap.OrderedMap[string, string]
}

// ParseIndex validates and decodes a buckets listing.
func ParseIndex(data []byte) (*Index, error) {
	if err := jsonschema.ValidateBytes(indexSchema, data); err != nil {
		return nil, fmt.Errorf("validate bucket index: %w", err)
	}
	buckets := orderedmap.New[string, string]()
	if err := json.Unmarshal(data, buckets); err != nil {
		return nil, fmt.Errorf("decode bucket index: %w", err)
	}
	return &Index{buckets: buckets}, nil
}

// NewIndex builds an index from name/URL pairs. Every URL must be a GitHub repository URL.
func NewIndex(pairs ...orderedmap.Pair[string, string]) (*Index, error) {
	buckets := orderedmap.New[string, string](orderedmap.WithInitialData(pairs...))
	for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := ParseRepoURL(pair.Value); !ok {
			return nil, fmt.Errorf("bucket %q: %q is not a GitHub repository URL", pair.Key, pair.Value)
		}
	}
	return &Index{buckets: buckets}, nil
}

// Lookup returns the repository URL registered for name.
func (i *Index) Lookup(name string) (string, bool) {
	return i.buckets.Get(name)
}

// Names returns the bucket names in upstream order.
func (i *Index) Names() []string {
	names := make([]string, 0, i.buckets.Len())
	for pair := i.buckets.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func (i *Index) Len() int {
	return i.buckets.Len()
}

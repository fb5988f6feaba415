package bucket

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const githubHost = "github.com"

// Source tells how a bucket token was resolved.
type Source int

const (
	// SourceInvalid marks a token that is neither a known short name nor a repository URL.
	SourceInvalid Source = iota
	// SourceIndex marks a token found in the bucket index.
	SourceIndex
	// SourceURL marks a token parsed as a GitHub repository URL.
	SourceURL
)

func (s Source) String() string {
	switch s {
	case SourceIndex:
		return "index"
	case SourceURL:
		return "url"
	default:
		return "invalid"
	}
}

// Resolution is the outcome of resolving a bucket token.
// Repo is meaningful only when OK reports true; otherwise Reason says what was wrong.
type Resolution struct {
	Token  string
	Source Source
	Repo   Repo
	Reason string
}

func (r Resolution) OK() bool {
	return r.Source != SourceInvalid
}

func invalid(token, reason string) Resolution {
	return Resolution{Token: token, Source: SourceInvalid, Reason: reason}
}

// Token returns the bucket token with the default applied.
func Token(token string) string {
	if token == "" {
		return DefaultBucket
	}
	return token
}

// Resolve turns a bucket token into a repository.
// A short name known to the index always wins over a URL interpretation of the same token.
func Resolve(token string, index *Index) Resolution {
	token = Token(token)

	if index != nil {
		if bucketURL, ok := index.Lookup(token); ok {
			repo, ok := ParseRepoURL(bucketURL)
			if !ok {
				return invalid(token, "indexed URL is not a GitHub repository")
			}
			return Resolution{Token: token, Source: SourceIndex, Repo: repo}
		}
	}

	return resolveURL(token)
}

func resolveURL(token string) Resolution {
	decoded, err := url.PathUnescape(token)
	if err != nil || !utf8.ValidString(decoded) {
		return invalid(token, "malformed escape sequence")
	}
	u, err := url.Parse(decoded)
	if err != nil || u.Scheme == "" {
		return invalid(token, "not an absolute URL")
	}
	if !strings.EqualFold(u.Hostname(), githubHost) {
		return invalid(token, "not a GitHub URL")
	}

	// Segments keep any escapes left after the token itself was decoded.
	segments := strings.FieldsFunc(u.EscapedPath(), func(r rune) bool { return r == '/' })
	if len(segments) != 2 {
		return invalid(token, "not a GitHub repository")
	}

	// The canonical URL always matches the repository pattern.
	repo, ok := ParseRepoURL(Repo{User: segments[0], Repo: segments[1]}.URL())
	if !ok {
		return invalid(token, "not a GitHub repository")
	}
	return Resolution{Token: token, Source: SourceURL, Repo: repo}
}

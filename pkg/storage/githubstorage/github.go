package githubstorage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/acronis/go-scoop/pkg/storage"
)

const (
	// DefaultBaseURL serves raw repository contents as /{user}/{repo}/{branch}/{path}.
	DefaultBaseURL = "https://raw.githubusercontent.com"

	DefaultMaxIdleConns        = 50
	DefaultMaxIdleConnsPerHost = 20
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultRequestTimeout      = 15 * time.Second

	// maxFileSize bounds the size of a fetched manifest.
	maxFileSize = 4 << 20

	tracerName = "github.com/acronis/go-scoop/pkg/storage/githubstorage"
)

type Option func(*storageImpl)

type storageImpl struct {
	baseURL string
	token   string
	timeout time.Duration
	client  *http.Client
	tracer  trace.Tracer
}

func New(opts ...Option) storage.Storage {
	s := &storageImpl{
		baseURL: DefaultBaseURL,
		timeout: DefaultRequestTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	s.client = &http.Client{
		Timeout: s.timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        DefaultMaxIdleConns,
			MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
			IdleConnTimeout:     DefaultIdleConnTimeout,
		},
	}
	s.tracer = otel.Tracer(tracerName)
	return s
}

// WithBaseURL points the storage at a raw-content mirror instead of GitHub.
func WithBaseURL(baseURL string) Option {
	return func(s *storageImpl) {
		if baseURL != "" {
			s.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithTimeout sets the request timeout. Zero or negative values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(s *storageImpl) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(s *storageImpl) {
		s.token = token
	}
}

func (s *storageImpl) Fetch(ctx context.Context, loc storage.Location) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "github.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("github.user", loc.User),
			attribute.String("github.repo", loc.Repo),
			attribute.String("github.branch", loc.Branch),
			attribute.String("github.path", loc.Path),
		),
	)
	defer span.End()

	data, err := s.fetch(ctx, s.rawURL(loc))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return data, nil
}

func (s *storageImpl) rawURL(loc storage.Location) string {
	segments := []string{loc.User, loc.Repo, loc.Branch}
	segments = append(segments, strings.Split(loc.Path, "/")...)
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}

func (s *storageImpl) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	slog.Debug("Fetching", slog.String("url", rawURL))
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", storage.ErrUnavailable, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d: %s", storage.ErrUnavailable, resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %w", storage.ErrUnavailable, rawURL, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("file too large: %s exceeds %d bytes", rawURL, maxFileSize)
	}
	return data, nil
}

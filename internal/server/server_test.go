package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	scoop "github.com/acronis/go-scoop"
	"github.com/acronis/go-scoop/pkg/metrics"
	"github.com/acronis/go-scoop/pkg/storage"
)

type mockStorage struct {
	files    map[string]string
	failing  map[string]error
	indexErr error
}

func (m *mockStorage) Fetch(_ context.Context, loc storage.Location) ([]byte, error) {
	if loc.Path == "buckets.json" && m.indexErr != nil {
		return nil, m.indexErr
	}
	if err, ok := m.failing[loc.String()]; ok {
		return nil, err
	}
	data, ok := m.files[loc.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, loc)
	}
	return []byte(data), nil
}

func newTestServer(t *testing.T, st *mockStorage) *httptest.Server {
	t.Helper()

	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
	svc := scoop.New(scoop.WithStorage(metrics.InstrumentStorage(st, m)))
	srv := httptest.NewServer(New(svc, WithMetrics(m)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func defaultStorage() *mockStorage {
	return &mockStorage{files: map[string]string{
		"ScoopInstaller/Scoop@master:buckets.json": `{
			"main": "https://github.com/ScoopInstaller/Main",
			"extras": "https://github.com/ScoopInstaller/Extras"
		}`,
		"ScoopInstaller/Extras@master:bucket/ngrok.json":  `{"version": "3.1.0", "license": {"identifier": "Freeware"}}`,
		"ScoopInstaller/Main@master:bucket/git.json":      `{"version": "2.44.0.windows.1", "license": "GPL-2.0-only"}`,
		"ScoopInstaller/Extras@master:bucket/broken.json": `{"license": 42}`,
	}, failing: map[string]error{
		"ScoopInstaller/Extras@master:bucket/flaky.json": fmt.Errorf("%w: HTTP 503", storage.ErrUnavailable),
	}}
}

func get(t *testing.T, rawURL string, header http.Header) (int, http.Header, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, string(body)
}

func Test_Badges(t *testing.T) {
	type testcase struct {
		path string
		code int
		body string
	}

	testcases := map[string]testcase{
		"version in known bucket": {
			path: "/scoop/v/ngrok?bucket=extras",
			code: http.StatusOK,
			body: `{"schemaVersion":1,"label":"scoop","message":"v3.1.0","color":"blue"}`,
		},
		"license in default bucket": {
			path: "/scoop/l/git",
			code: http.StatusOK,
			body: `{"schemaVersion":1,"label":"license","message":"GPL-2.0-only","color":"orange"}`,
		},
		"unknown bucket": {
			path: "/scoop/v/ngrok?bucket=nope",
			code: http.StatusNotFound,
			body: `{"schemaVersion":1,"label":"scoop","message":"bucket \"nope\" not found","color":"lightgrey","isError":true}`,
		},
		"missing package in url bucket": {
			path: "/scoop/l/foo?bucket=" + url.QueryEscape("https://github.com/jewlexx/personal-scoop/"),
			code: http.StatusNotFound,
			body: `{"schemaVersion":1,"label":"license","message":"foo not found in bucket \"https://github.com/jewlexx/personal-scoop/\"","color":"lightgrey","isError":true}`,
		},
		"manifest host unavailable": {
			path: "/scoop/v/flaky?bucket=extras",
			code: http.StatusBadGateway,
			body: `{"schemaVersion":1,"label":"scoop","message":"inaccessible","color":"lightgrey","isError":true}`,
		},
		"malformed manifest": {
			path: "/scoop/l/broken?bucket=extras",
			code: http.StatusInternalServerError,
			body: `{"schemaVersion":1,"label":"license","message":"invalid response data","color":"lightgrey","isError":true}`,
		},
	}

	srv := newTestServer(t, defaultStorage())
	for tcName, tc := range testcases {
		t.Run(tcName, func(t *testing.T) {
			code, header, body := get(t, srv.URL+tc.path, nil)
			require.Equal(t, tc.code, code)
			require.Equal(t, "application/json", header.Get("Content-Type"))
			require.NotEmpty(t, header.Get("ETag"))
			require.JSONEq(t, tc.body, body)
		})
	}
}

func Test_TextFormat(t *testing.T) {
	srv := newTestServer(t, defaultStorage())

	code, header, body := get(t, srv.URL+"/scoop/l/ngrok?bucket=extras&format=text", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "text/plain; charset=utf-8", header.Get("Content-Type"))
	require.Equal(t, "license: Freeware", body)

	_, _, body = get(t, srv.URL+"/scoop/v/ngrok?bucket=extras", http.Header{"Accept": {"text/plain"}})
	require.Equal(t, "scoop: v3.1.0", body)
}

func Test_NotModified(t *testing.T) {
	srv := newTestServer(t, defaultStorage())

	_, header, _ := get(t, srv.URL+"/scoop/v/ngrok?bucket=extras", nil)
	etag := header.Get("ETag")

	code, _, body := get(t, srv.URL+"/scoop/v/ngrok?bucket=extras", http.Header{"If-None-Match": {etag}})
	require.Equal(t, http.StatusNotModified, code)
	require.Empty(t, body)
}

func Test_UpstreamUnavailable(t *testing.T) {
	st := defaultStorage()
	st.indexErr = errors.New("rate limited")
	srv := newTestServer(t, st)

	code, _, body := get(t, srv.URL+"/scoop/v/ngrok?bucket=extras", nil)
	require.Equal(t, http.StatusBadGateway, code)
	require.JSONEq(t, `{"schemaVersion":1,"label":"scoop","message":"inaccessible","color":"lightgrey","isError":true}`, body)
}

func Test_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, defaultStorage())

	code, _, body := get(t, srv.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body)

	_, _, _ = get(t, srv.URL+"/scoop/v/ngrok?bucket=extras", nil)
	code, _, body = get(t, srv.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `scoop_requests_total{code="200",route="version"} 1`)
	require.Contains(t, body, `scoop_github_fetches_total{outcome="ok"} 2`)
}

func Test_ListenAndServe(t *testing.T) {
	s := New(scoop.New(scoop.WithStorage(defaultStorage())))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	require.NoError(t, <-done)
}

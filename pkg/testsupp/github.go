package testsupp

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// RawServer serves files the way raw.githubusercontent.com does.
type RawServer struct {
	*httptest.Server

	requests atomic.Int32
}

// Requests returns the number of requests served so far.
func (s *RawServer) Requests() int {
	return int(s.requests.Load())
}

// NewRawServer serves files keyed by "{user}/{repo}/{branch}/{path}" and answers 404 for anything else.
// The server is closed when the test ends.
func NewRawServer(t *testing.T, files map[string]string) *RawServer {
	t.Helper()

	s := &RawServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		data, ok := files[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(data))
	}))
	t.Cleanup(s.Close)
	return s
}

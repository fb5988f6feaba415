package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	scoop "github.com/acronis/go-scoop"
	"github.com/acronis/go-scoop/internal/pkg/slogex"
	"github.com/acronis/go-scoop/pkg/badge"
)

const (
	messageInaccessible = "inaccessible"
	messageInvalid      = "invalid response data"
)

func (s *Server) handleLicense(w http.ResponseWriter, r *http.Request) {
	app, token := chi.URLParam(r, "app"), r.URL.Query().Get("bucket")

	licenses, err := s.service.Licenses(r.Context(), app, token)
	if err != nil {
		writeError(w, r, badge.LicenseLabel, app, token, err)
		return
	}
	writeBadge(w, r, http.StatusOK, badge.License(licenses))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	app, token := chi.URLParam(r, "app"), r.URL.Query().Get("bucket")

	version, err := s.service.Version(r.Context(), app, token)
	if err != nil {
		writeError(w, r, badge.VersionLabel, app, token, err)
		return
	}
	writeBadge(w, r, http.StatusOK, badge.Version(version))
}

// errorBadge maps a lookup failure to a status code and a badge.
// Not-found failures carry their message to the caller; anything else stays generic.
func errorBadge(label string, err error) (int, badge.Badge) {
	var (
		bucketErr  *scoop.BucketNotFoundError
		packageErr *scoop.PackageNotFoundError
	)
	switch {
	case errors.As(err, &bucketErr):
		return http.StatusNotFound, badge.Error(label, bucketErr.Error())
	case errors.As(err, &packageErr):
		return http.StatusNotFound, badge.Error(label, packageErr.Error())
	case errors.Is(err, scoop.ErrUpstreamUnavailable) || errors.Is(err, scoop.ErrManifestUnavailable):
		return http.StatusBadGateway, badge.Error(label, messageInaccessible)
	default:
		return http.StatusInternalServerError, badge.Error(label, messageInvalid)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, label, app, token string, err error) {
	code, b := errorBadge(label, err)
	if code == http.StatusNotFound {
		slog.Debug("Badge lookup failed", slogex.Package(app, token), slogex.Error(err))
	} else {
		slog.Error("Badge lookup failed", slogex.Package(app, token), slogex.Error(err))
	}
	writeBadge(w, r, code, b)
}

func writeBadge(w http.ResponseWriter, r *http.Request, code int, b badge.Badge) {
	etag := b.ETag()
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "max-age=300")
	if code == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(b.String()))
		return
	}

	data, err := b.JSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func wantsText(r *http.Request) bool {
	if r.URL.Query().Get("format") == "text" {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Accept"), "text/plain")
}

package slogex

import (
	"log/slog"
	"net/http"
)

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Attr{Key: "error", Value: slog.StringValue(err.Error())}
}

// Package groups the attributes identifying a package lookup.
func Package(app, bucket string) slog.Attr {
	return slog.Group("package", slog.String("app", app), slog.String("bucket", bucket))
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Group("status", slog.Int("code", code), slog.String("text", http.StatusText(code)))
}

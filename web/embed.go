package web

import (
	"embed"
	"io/fs"
)

// TemplatesFS embeds the dashboard and error page templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet served under /static/.
//
//go:embed static/*
var StaticFS embed.FS

// Static returns StaticFS rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(StaticFS, "static")
}

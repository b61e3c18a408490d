package http

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed static/dashboard.html
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(staticFS, "static/dashboard.html"))

type pageData struct {
	Source   string
	LoadedAt string
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	data := pageData{
		Source:   s.renderer.Meta().Source,
		LoadedAt: s.renderer.LoadedAt().UTC().Format("2006-01-02 15:04 UTC"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

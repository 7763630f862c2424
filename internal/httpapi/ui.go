package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed ui/*
var uiEmbedFS embed.FS

var uiFS fs.FS

func init() {
	sub, err := fs.Sub(uiEmbedFS, "ui")
	if err != nil {
		uiFS = nil
		return
	}
	uiFS = sub
}

// registerUI serves the stylesheet and script shared by every page.
func (s *Server) registerUI() {
	if uiFS == nil {
		return
	}
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(uiFS))))
}

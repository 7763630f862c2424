package httpapi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"deskbook/internal/model"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"entrar",
	"painel_admin",
	"gerenciar_usuarios",
	"painel_usuario",
	"clientes_anydesk",
	"adicionar_cliente_anydesk",
}

type ViewData struct {
	User      *model.User
	HideNav   bool
	Flash     string
	FlashKind string // ok|err|""
	Banner    template.HTML

	Users   []model.User
	Entries []model.ConnectionEntry

	// connection entry form
	FormAction string
	Entry      model.ConnectionEntry
	Editing    bool

	Username string
}

func parsePages() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, page := range pageNames {
		// Pages override the title and content blocks of the layout.
		t, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", page, err)
		}
		pages[page] = t
	}
	return pages, nil
}

// renderMarkdown converts markdown text to HTML (safe to inject as template.HTML).
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	_ = goldmark.Convert([]byte(md), &buf)
	return template.HTML(buf.String())
}

// render executes page into a buffer first so a template error never leaves a
// half-written response. A pending flash notice is consumed unless data
// already carries one.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data *ViewData) {
	if data == nil {
		data = &ViewData{}
	}
	if data.User == nil {
		data.User = currentUser(r)
	}
	if data.Flash == "" {
		data.FlashKind, data.Flash = popFlash(w, r)
	} else {
		// Shown inline; drop anything queued for this page.
		_, _ = popFlash(w, r)
	}
	data.Banner = s.banner

	t, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.log.Error(r.Context(), "render failed", "page", page, "err", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

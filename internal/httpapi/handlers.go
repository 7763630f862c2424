package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"deskbook/internal/auth"
	"deskbook/internal/model"
	"deskbook/internal/store"
)

const (
	msgEntryAdded    = "Cliente AnyDesk adicionado com sucesso"
	msgEntryUpdated  = "Cliente AnyDesk atualizado com sucesso"
	msgEntryDeleted  = "Cliente AnyDesk excluído com sucesso"
	msgEntryNotFound = "Cliente AnyDesk não encontrado"
	msgEntryFields   = "Preencha todos os campos"
	msgEntryFailed   = "Erro ao salvar cliente AnyDesk"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, auth.PathLogin, http.StatusFound)
}

// pathID parses the {id} segment. Malformed ids are reported as not found.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// entryForm reads the three entry fields. ok is false if any is blank.
func entryForm(r *http.Request) (e model.ConnectionEntry, ok bool) {
	if err := r.ParseForm(); err != nil {
		return e, false
	}
	e.Name = strings.TrimSpace(r.PostForm.Get("client_name"))
	e.RemoteID = strings.TrimSpace(r.PostForm.Get("anydesk_id"))
	e.RemotePassword = r.PostForm.Get("anydesk_password")
	ok = e.Name != "" && e.RemoteID != "" && strings.TrimSpace(e.RemotePassword) != ""
	return e, ok
}

func (s *Server) handleEntriesList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.ListEntries(r.Context())
	if err != nil {
		s.log.Error(r.Context(), "list entries", "err", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "clientes_anydesk", &ViewData{Entries: entries})
}

func (s *Server) handleEntryNewForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "adicionar_cliente_anydesk", &ViewData{FormAction: "/anydesk/adicionar"})
}

func (s *Server) handleEntryAdd(w http.ResponseWriter, r *http.Request) {
	e, ok := entryForm(r)
	if !ok {
		s.render(w, r, http.StatusBadRequest, "adicionar_cliente_anydesk", &ViewData{
			FormAction: "/anydesk/adicionar", Entry: e, Flash: msgEntryFields, FlashKind: flashErr,
		})
		return
	}
	created, err := s.entries.AddEntry(r.Context(), e.Name, e.RemoteID, e.RemotePassword)
	if err != nil {
		s.log.Error(r.Context(), "add entry", "err", err.Error())
		s.render(w, r, http.StatusInternalServerError, "adicionar_cliente_anydesk", &ViewData{
			FormAction: "/anydesk/adicionar", Entry: e, Flash: msgEntryFailed, FlashKind: flashErr,
		})
		return
	}
	s.log.Info(r.Context(), "entry added", "entry_id", created.ID, "by", currentUser(r).Username)
	setFlash(w, flashOK, msgEntryAdded)
	http.Redirect(w, r, "/anydesk", http.StatusSeeOther)
}

func (s *Server) handleEntryEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	e, err := s.entries.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error(r.Context(), "get entry", "entry_id", id, "err", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "adicionar_cliente_anydesk", &ViewData{
		FormAction: editAction(id), Entry: *e, Editing: true,
	})
}

func (s *Server) handleEntryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	e, ok := entryForm(r)
	if !ok {
		e.ID = id
		s.render(w, r, http.StatusBadRequest, "adicionar_cliente_anydesk", &ViewData{
			FormAction: editAction(id), Entry: e, Editing: true, Flash: msgEntryFields, FlashKind: flashErr,
		})
		return
	}
	if _, err := s.entries.UpdateEntry(r.Context(), id, e.Name, e.RemoteID, e.RemotePassword); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error(r.Context(), "update entry", "entry_id", id, "err", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.log.Info(r.Context(), "entry updated", "entry_id", id, "by", currentUser(r).Username)
	setFlash(w, flashOK, msgEntryUpdated)
	http.Redirect(w, r, "/anydesk", http.StatusSeeOther)
}

func (s *Server) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", msgEntryNotFound)
		return
	}
	if err := s.entries.RemoveEntry(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", msgEntryNotFound)
			return
		}
		s.log.Error(r.Context(), "delete entry", "entry_id", id, "err", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", msgInternalFailed)
		return
	}
	s.log.Info(r.Context(), "entry deleted", "entry_id", id, "by", currentUser(r).Username)
	writeMessage(w, msgEntryDeleted)
}

func editAction(id int64) string {
	return "/anydesk/" + strconv.FormatInt(id, 10) + "/editar"
}

package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"deskbook/internal/auth"
	"deskbook/internal/services"
	"deskbook/internal/store"
)

const (
	msgUserAdded      = "Usuário adicionado com sucesso"
	msgUserExists     = "Usuário já existe"
	msgUserInvalid    = "Usuário e senha são obrigatórios"
	msgUserAddFailed  = "Erro ao adicionar usuário"
	msgUserDeleted    = "Usuário excluído com sucesso"
	msgUnauthorized   = "Não autorizado"
	msgSelfDelete     = "Não é possível excluir seu próprio usuário"
	msgUserNotFound   = "Usuário não encontrado"
	msgInternalFailed = "Erro interno"
)

func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "painel_admin", nil)
}

func (s *Server) handleUserHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "painel_usuario", nil)
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context(), currentUser(r))
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			http.Redirect(w, r, auth.PathUserLanding, http.StatusSeeOther)
			return
		}
		s.log.Error(r.Context(), "list users", "err", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "gerenciar_usuarios", &ViewData{Users: users})
}

func (s *Server) handleUserAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, flashErr, msgUserInvalid)
		http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	isAdmin := r.PostForm.Get("is_admin") != ""

	actor := currentUser(r)
	u, err := s.users.AddUser(r.Context(), actor, username, password, isAdmin)
	switch {
	case err == nil:
		s.log.Info(r.Context(), "user added", "username", u.Username, "is_admin", u.IsAdmin, "by", actor.Username)
		setFlash(w, flashOK, msgUserAdded)
	case errors.Is(err, auth.ErrDuplicateUsername):
		setFlash(w, flashErr, msgUserExists)
	case errors.Is(err, auth.ErrInvalidInput):
		setFlash(w, flashErr, msgUserInvalid)
	case errors.Is(err, auth.ErrUnauthorized):
		http.Redirect(w, r, auth.PathUserLanding, http.StatusSeeOther)
		return
	default:
		s.log.Error(r.Context(), "add user", "username", username, "err", err.Error())
		setFlash(w, flashErr, msgUserAddFailed)
	}
	http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", msgUserNotFound)
		return
	}

	actor := currentUser(r)
	err := s.users.RemoveUser(r.Context(), actor, id)
	switch {
	case err == nil:
		s.log.Info(r.Context(), "user deleted", "user_id", id, "by", actor.Username)
		writeMessage(w, msgUserDeleted)
	case errors.Is(err, services.ErrSelfDeleteForbidden):
		writeError(w, http.StatusBadRequest, "self_delete", msgSelfDelete)
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "forbidden", msgUnauthorized)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", msgUserNotFound)
	default:
		s.log.Error(r.Context(), "delete user", "user_id", id, "err", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", msgInternalFailed)
	}
}

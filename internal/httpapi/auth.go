package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"deskbook/internal/auth"
)

const (
	msgInvalidLogin  = "Usuário ou senha inválidos"
	msgTooManyLogins = "Muitas tentativas de login. Aguarde um minuto e tente novamente."
	msgLoginFailed   = "Não foi possível iniciar a sessão. Tente novamente."
	msgMissingLogin  = "Informe usuário e senha"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if u := currentUser(r); u != nil {
		http.Redirect(w, r, auth.Landing(true, u.IsAdmin), http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "entrar", &ViewData{HideNav: true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ip := remoteIP(r)
	if !s.limiter.allow(ip) {
		s.log.Warn(r.Context(), "login throttled", "remote_ip", ip)
		s.render(w, r, http.StatusTooManyRequests, "entrar", &ViewData{
			HideNav: true, Flash: msgTooManyLogins, FlashKind: flashErr,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "entrar", &ViewData{
			HideNav: true, Flash: msgMissingLogin, FlashKind: flashErr,
		})
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	sess, u, err := s.sessions.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.log.Info(r.Context(), "login failed", "username", username, "remote_ip", ip)
			s.render(w, r, http.StatusOK, "entrar", &ViewData{
				HideNav: true, Flash: msgInvalidLogin, FlashKind: flashErr, Username: username,
			})
			return
		}
		s.log.Error(r.Context(), "login", "username", username, "err", err.Error())
		s.render(w, r, http.StatusInternalServerError, "entrar", &ViewData{
			HideNav: true, Flash: msgLoginFailed, FlashKind: flashErr, Username: username,
		})
		return
	}

	s.issueSessionCookie(w, sess.Token)
	s.log.Info(r.Context(), "user logged in", "username", u.Username, "remote_ip", ip)
	http.Redirect(w, r, auth.Landing(true, u.IsAdmin), http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.CookieName); err == nil {
		if err := s.sessions.Logout(r.Context(), c.Value); err != nil {
			s.log.Error(r.Context(), "logout", "err", err.Error())
		}
	}
	s.clearSessionCookie(w)
	s.log.Info(r.Context(), "user logged out", "username", currentUser(r).Username)
	http.Redirect(w, r, auth.PathLogin, http.StatusSeeOther)
}

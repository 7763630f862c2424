package auth

import "deskbook/internal/model"

const (
	PathLogin        = "/entrar"
	PathAdminLanding = "/admin"
	PathUserLanding  = "/usuario"
)

// Landing picks where a visitor belongs.
func Landing(authenticated, admin bool) string {
	switch {
	case !authenticated:
		return PathLogin
	case admin:
		return PathAdminLanding
	default:
		return PathUserLanding
	}
}

// Authorize allows only administrators.
func Authorize(u *model.User) error {
	if u == nil || !u.IsAdmin {
		return ErrUnauthorized
	}
	return nil
}

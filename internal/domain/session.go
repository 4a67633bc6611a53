package domain

import "slices"

// Session é a identidade decodificada do payload do token de autenticação.
// O valor zero representa a sessão anônima.
type Session struct {
	ID          int64
	Username    string
	Roles       []string
	Permissions []string
}

func (s Session) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}

func (s Session) HasPermission(permission string) bool {
	return slices.Contains(s.Permissions, permission)
}

func (s Session) Anonymous() bool {
	return s.ID == 0 && s.Username == ""
}

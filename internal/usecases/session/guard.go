package session

import "github.com/leoalmeida/desafio-fullstack/internal/domain"

// CanActivate é o guard de navegação das telas protegidas: função pura do
// estado da sessão, sem efeitos colaterais. Cancelar ou redirecionar a
// navegação é decisão de quem chama, não do guard.
func (i *Implementation) CanActivate() bool {
	return i.Authenticated()
}

// CanActivateUser permite a ação apenas ao próprio associado com o papel exigido.
func CanActivateUser(s domain.Session, userID int64, role string) bool {
	return s.ID == userID && s.HasRole(role)
}

// CanMatch confere apenas a posse do papel.
func CanMatch(s domain.Session, role string) bool {
	return s.HasRole(role)
}

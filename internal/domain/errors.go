package domain

import "errors"

// ErrNotAuthenticated navegação para uma tela protegida sem sessão ativa
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrMalformedToken o payload do token não pôde ser decodificado
var ErrMalformedToken = errors.New("malformed session token")

// ErrMissingID operação que exige um benefício já criado recebeu um sem id
var ErrMissingID = errors.New("beneficio without id")

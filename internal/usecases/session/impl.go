package session

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/logger"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/observable"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/serviceerrors"
)

// Implementation é a fonte única de verdade sobre "há alguém logado, e quem".
// Toda mutação passa por SaveToken/Clear; nenhum outro componente altera a
// sessão diretamente. Não faz chamadas de rede.
type Implementation struct {
	storage       Storage
	sessions      *observable.Value[domain.Session]
	authenticated *observable.Value[bool]
}

func NewImplementation(storage Storage) *Implementation {
	return &Implementation{
		storage:       storage,
		sessions:      observable.New(domain.Session{}),
		authenticated: observable.New(false),
	}
}

type tokenClaims struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// SaveToken decodifica o payload do token (base64 JSON) e, somente se a
// decodificação inteira der certo, persiste o token cru e publica a nova
// sessão. Em caso de falha nada muda: ou aplica tudo, ou rejeita tudo.
// A assinatura não é conferida aqui; validar o token é papel do backend.
func (i *Implementation) SaveToken(ctx context.Context, raw string) error {
	session, err := decodeSession(raw)
	if err != nil {
		return serviceerrors.NewDecode(err).LogError(ctx)
	}

	if err = i.storage.Set(TokenKey, raw); err != nil {
		return serviceerrors.AppErrorFromError(err).LogError(ctx)
	}

	i.sessions.Set(session)
	i.authenticated.Set(true)

	logger.Infof(ctx, "sessão iniciada para %q (id %d)", session.Username, session.ID)

	return nil
}

// Clear é o sign-out: descarta todo o estado de escopo de sessão (token e
// perfil em cache, juntos), volta à sessão anônima e publica ambos.
func (i *Implementation) Clear(ctx context.Context) error {
	if err := i.storage.Clear(); err != nil {
		return serviceerrors.AppErrorFromError(err).LogError(ctx)
	}

	i.sessions.Set(domain.Session{})
	i.authenticated.Set(false)

	logger.Infof(ctx, "sessão encerrada")

	return nil
}

func (i *Implementation) Current() domain.Session {
	return i.sessions.Get()
}

func (i *Implementation) Authenticated() bool {
	return i.authenticated.Get()
}

// Sessions é o stream reativo da sessão corrente. O cancelamento devolvido
// deve ser chamado na desmontagem da tela consumidora.
func (i *Implementation) Sessions() (<-chan domain.Session, func()) {
	return i.sessions.Subscribe()
}

func (i *Implementation) AuthChanges() (<-chan bool, func()) {
	return i.authenticated.Subscribe()
}

// Token devolve o token cru persistido, para o header Authorization.
func (i *Implementation) Token() (string, bool) {
	return i.storage.Get(TokenKey)
}

// SaveProfile guarda o perfil do associado em cache, sob a segunda chave de
// escopo de sessão. É limpo junto com o token no Clear.
func (i *Implementation) SaveProfile(profileJSON string) error {
	return i.storage.Set(ProfileKey, profileJSON)
}

func (i *Implementation) Profile() (string, bool) {
	return i.storage.Get(ProfileKey)
}

func decodeSession(raw string) (domain.Session, error) {
	if raw == "" {
		return domain.Session{}, domain.ErrMalformedToken
	}

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		ID:          claims.ID,
		Username:    claims.Username,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
	}, nil
}

package terminal

import (
	"context"
	"io"

	"github.com/fatih/color"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
)

type sessionUsecase interface {
	SaveToken(ctx context.Context, raw string) error
	Clear(ctx context.Context) error
	Current() domain.Session
	CanActivate() bool
}

type authClient interface {
	Login(ctx context.Context, cred domain.Credenciais) (string, error)
}

type listUsecase interface {
	Activate(ctx context.Context)
	Deactivate()
	Refresh(ctx context.Context) error
	RefreshActive(ctx context.Context) error
	RefreshForUser(ctx context.Context) error
	SetQuery(query string)
	Query() string
	Filtered() []domain.Beneficio
	CreateBeneficio(ctx context.Context, b domain.Beneficio) error
	UpdateBeneficio(ctx context.Context, b domain.Beneficio) error
	ToggleStatus(ctx context.Context, b domain.Beneficio) error
	RemoveBeneficio(ctx context.Context, beneficioID int64) error
	TransferValue(ctx context.Context, t domain.Transferencia) error
}

// Implementation é a camada de apresentação: telas interativas do console.
// Telas são o análogo das rotas do front original; a navegação entre elas
// passa pelo guard de sessão.
type Implementation struct {
	session sessionUsecase
	auth    authClient
	list    listUsecase
	out     io.Writer
}

func New(session sessionUsecase, auth authClient, list listUsecase, out io.Writer) *Implementation {
	return &Implementation{
		session: session,
		auth:    auth,
		list:    list,
		out:     out,
	}
}

// Run alterna entre a tela de login e a tela de lista. A tela de lista é
// protegida: só é ativada quando o guard libera, senão a navegação cai de
// volta no login — o mesmo papel do redirect de rota do front.
func (i *Implementation) Run(ctx context.Context) error {
	for {
		if !i.session.CanActivate() {
			stay, err := i.loginScreen(ctx)
			if err != nil {
				return err
			}
			if !stay {
				return nil
			}
			continue
		}

		quit, err := i.listScreen(ctx)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (i *Implementation) printError(err error) {
	color.New(color.FgRed).Fprintf(i.out, "✗ %s\n", err.Error())
}

func (i *Implementation) printSuccess(msg string) {
	color.New(color.FgGreen).Fprintf(i.out, "✓ %s\n", msg)
}

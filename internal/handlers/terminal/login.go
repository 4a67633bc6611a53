package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/manifoldco/promptui"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
)

// Mensagem fixa exibida em qualquer falha de login, a mesma do front original.
const loginErrorMessage = "Dados inválidos."

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// loginScreen coleta credenciais e tenta autenticar. Formulário inválido
// bloqueia o submit por completo: nenhuma chamada de rede acontece. No
// sucesso a sessão é salva e a navegação segue imediatamente para a lista;
// na falha a mensagem fixa é exibida e a tela permanece no login, sem estado
// parcial de sessão.
//
// Retorna stay=false quando o usuário abandona o console no login.
func (i *Implementation) loginScreen(ctx context.Context) (stay bool, err error) {
	fmt.Fprintln(i.out)
	color.New(color.Bold).Fprintln(i.out, "Clube de Benefícios — Login")

	usernamePrompt := promptui.Prompt{
		Label: "Usuário",
	}
	username, err := usernamePrompt.Run()
	if err != nil {
		if cancelled(err) {
			return false, nil
		}
		return false, err
	}

	passwordPrompt := promptui.Prompt{
		Label: "Senha",
		Mask:  '•',
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		if cancelled(err) {
			return false, nil
		}
		return false, err
	}

	form := loginForm{
		Username: username,
		Password: password,
	}
	if err = validator.New().Struct(form); err != nil {
		i.printError(errors.New(loginErrorMessage))
		return true, nil
	}

	token, err := i.auth.Login(ctx, domain.Credenciais{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		i.printError(errors.New(loginErrorMessage))
		return true, nil
	}

	if err = i.session.SaveToken(ctx, token); err != nil {
		i.printError(errors.New(loginErrorMessage))
		return true, nil
	}

	return true, nil
}

// cancelled identifica abandono do prompt (Ctrl+C / Ctrl+D).
func cancelled(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, promptui.ErrAbort)
}

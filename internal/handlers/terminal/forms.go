package terminal

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/manifoldco/promptui"
	"github.com/shopspring/decimal"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/serviceerrors"
)

// As mensagens seguem as restrições de validação do backend, para o usuário
// ver o mesmo texto falhando local ou remotamente.
var beneficioMessages = map[string]string{
	"Nome.required": "Nome é obrigatório",
	"Nome.min":      "Nome deve ter entre 3 e 100 caracteres",
	"Nome.max":      "Nome deve ter entre 3 e 100 caracteres",
	"Descricao.max": "Descrição deve ter no máximo 255 caracteres",
}

type beneficioForm struct {
	Nome      string `validate:"required,min=3,max=100"`
	Descricao string `validate:"max=255"`
}

// beneficioDialog é o diálogo modal de criação/edição: devolve nil quando
// cancelado — e nesse caso nenhuma chamada de rede deve acontecer. Um
// formulário inválido bloqueia o submit com um ValidationError local.
func (i *Implementation) beneficioDialog(base *domain.Beneficio) (*domain.Beneficio, error) {
	defaults := domain.Beneficio{}
	if base != nil {
		defaults = *base
	}

	nome, ok, err := i.textPrompt("Nome", defaults.Nome)
	if err != nil || !ok {
		return nil, err
	}

	descricao, ok, err := i.textPrompt("Descrição", defaults.Descricao)
	if err != nil || !ok {
		return nil, err
	}

	valorDefault := ""
	if base != nil {
		valorDefault = defaults.Valor.StringFixed(2)
	}
	valorText, ok, err := i.textPrompt("Valor", valorDefault)
	if err != nil || !ok {
		return nil, err
	}

	form := beneficioForm{
		Nome:      nome,
		Descricao: descricao,
	}
	if err = validator.New().Struct(form); err != nil {
		return nil, validationError(err, beneficioMessages)
	}

	if valorText == "" {
		return nil, serviceerrors.NewValidation("Valor é obrigatório")
	}
	valor, err := decimal.NewFromString(valorText)
	if err != nil || valor.IsNegative() {
		return nil, serviceerrors.NewValidation("Valor deve ser maior que 0.00")
	}

	return &domain.Beneficio{
		ID:        defaults.ID,
		Nome:      form.Nome,
		Descricao: form.Descricao,
		Valor:     valor,
		Ativo:     defaults.Ativo,
	}, nil
}

// transferDialog coleta uma transferência de valor entre dois benefícios.
// O valor resultante é transitório: vive só até o submit.
func (i *Implementation) transferDialog() (*domain.Transferencia, error) {
	fromText, ok, err := i.textPrompt("Benefício de origem (id)", "")
	if err != nil || !ok {
		return nil, err
	}

	toText, ok, err := i.textPrompt("Benefício de destino (id)", "")
	if err != nil || !ok {
		return nil, err
	}

	valorText, ok, err := i.textPrompt("Valor", "")
	if err != nil || !ok {
		return nil, err
	}

	fromID, err := strconv.ParseInt(fromText, 10, 64)
	if err != nil {
		return nil, serviceerrors.NewValidation("ID de origem é obrigatório")
	}

	toID, err := strconv.ParseInt(toText, 10, 64)
	if err != nil {
		return nil, serviceerrors.NewValidation("ID de destino é obrigatório")
	}

	if fromID == toID {
		return nil, serviceerrors.NewValidation("benefícios de origem e destino devem ser diferentes")
	}

	valor, err := decimal.NewFromString(valorText)
	if err != nil {
		return nil, serviceerrors.NewValidation("Valor da transferência é obrigatório")
	}
	if valor.LessThan(decimal.NewFromFloat(0.01)) {
		return nil, serviceerrors.NewValidation("Valor de transferência deve ser maior que 0.00")
	}

	return &domain.Transferencia{
		FromID: fromID,
		ToID:   toID,
		Valor:  valor,
	}, nil
}

// textPrompt devolve ok=false quando o usuário cancelou o diálogo.
func (i *Implementation) textPrompt(label, defaultValue string) (value string, ok bool, err error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	value, err = prompt.Run()
	if err != nil {
		if cancelled(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

// validationError converte o primeiro erro do validator na mensagem de
// usuário correspondente.
func validationError(err error, messages map[string]string) *serviceerrors.AppError {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return serviceerrors.NewValidation(msg)
		}
	}

	return serviceerrors.NewValidation("Dados inválidos.")
}

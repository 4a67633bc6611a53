package serviceerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/leoalmeida/desafio-fullstack/internal/pkg/logger"
)

// Kind classifica a origem da falha.
type Kind int

const (
	// KindValidation formulário violou restrições locais, nada foi enviado
	KindValidation Kind = iota
	// KindTransport falha de rede antes de qualquer resposta do servidor
	KindTransport
	// KindServer resposta não-2xx do servidor
	KindServer
	// KindDecode payload do token de sessão não pôde ser decodificado
	KindDecode
	// KindInternal falha inesperada do próprio console
	KindInternal
)

type AppError struct {
	Msg         string
	Code        int
	Kind        Kind
	Base        error  `json:"-"`
	Description string `json:"description,omitempty"`
}

func NewValidation(msg string) *AppError {
	return &AppError{Msg: msg, Code: http.StatusUnprocessableEntity, Kind: KindValidation}
}

// NewTransport falha originada no cliente (rede indisponível, timeout).
// A mensagem é sempre a genérica, nunca a do erro de transporte cru.
func NewTransport(base error) *AppError {
	return &AppError{Msg: "falha de comunicação com o servidor", Kind: KindTransport, Base: base}
}

// NewServer resposta não-2xx. Usa a mensagem enviada pelo servidor quando
// presente, senão um fallback derivado do status HTTP.
func NewServer(msg string, code int) *AppError {
	if msg == "" {
		msg = fmt.Sprintf("erro no servidor (HTTP %d %s)", code, http.StatusText(code))
	}
	return &AppError{Msg: msg, Code: code, Kind: KindServer}
}

func NewDecode(base error) *AppError {
	return &AppError{Msg: "token de sessão inválido", Code: http.StatusUnauthorized, Kind: KindDecode, Base: base}
}

func NewAppError(err error) *AppError {
	return &AppError{Msg: "erro interno", Code: http.StatusInternalServerError, Kind: KindInternal, Base: err}
}

func AppErrorFromError(inputError error) *AppError {
	var appErr *AppError
	ok := errors.As(inputError, &appErr)
	if !ok {
		return NewAppError(inputError)
	}
	return appErr
}

func (err *AppError) Error() string {
	return err.Msg
}

func (err *AppError) String() string {
	if err.Description != "" {
		return fmt.Sprintf("%s: %s", err.Msg, err.Description)
	}
	return err.Msg
}

func (err *AppError) Wrap(baseErr error, desc string) *AppError {
	err.Base = baseErr
	err.Description = desc
	return err
}

func (err *AppError) Unwrap() error {
	return err.Base
}

func (err *AppError) Is(target error) bool {
	targetAppErr := new(AppError)
	ok := errors.As(target, &targetAppErr)
	if !ok {
		return target == err.Base
	}
	return targetAppErr.Kind == err.Kind && targetAppErr.Msg == err.Msg
}

func (err *AppError) IsServerError() bool {
	return err.Kind == KindServer && err.Code/100 == 5
}

// LogError registra o erro no logger do contexto e devolve o próprio erro,
// permitindo `return appErr.LogError(ctx)`.
func (err *AppError) LogError(ctx context.Context) *AppError {
	if err.Base != nil {
		logger.Errorf(ctx, "%s: %v", err.String(), err.Base)
		return err
	}
	logger.Errorf(ctx, "%s", err.String())
	return err
}

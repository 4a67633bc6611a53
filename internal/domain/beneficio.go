package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// O backend espera "valor" como número JSON, não como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Beneficio representa um registro de benefício vinculado a uma conta de
// associado. ID é nil apenas para registros ainda não criados no servidor.
type Beneficio struct {
	ID        *int64          `json:"id,omitempty"`
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Ativo     bool            `json:"ativo"`
}

// Transferencia movimenta valor entre dois benefícios. Existe apenas durante
// um submit, nunca é retida depois.
type Transferencia struct {
	FromID int64           `json:"fromId"`
	ToID   int64           `json:"toId"`
	Valor  decimal.Decimal `json:"valor"`
}

type Credenciais struct {
	Username string
	Password string
}

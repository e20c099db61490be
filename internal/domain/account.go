package domain

import (
	"time"
)

// AccountType define as modalidades de conta suportadas pelo ledger.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// Valid informa se a modalidade é conhecida pelo sistema.
func (t AccountType) Valid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

// Saldos mínimos padrão por modalidade (em centavos).
// São pontos de configuração: podem ser sobrescritos por conta na criação.
const (
	DefaultSavingsMinimumBalance  int64 = 10_000
	DefaultCheckingMinimumBalance int64 = 0
)

// DefaultMinimumBalance retorna o saldo mínimo padrão da modalidade.
func DefaultMinimumBalance(t AccountType) int64 {
	if t == AccountTypeSavings {
		return DefaultSavingsMinimumBalance
	}
	return DefaultCheckingMinimumBalance
}

// Account representa a conta do cliente.
// Clean Architecture: esta entidade não sabe o que é JSON nem SQL.
//
// O campo Version é a base do controle de concorrência otimista:
// toda escrita comitada incrementa a versão, e a escrita condicional
// no store só é aceita se a versão armazenada for a esperada.
type Account struct {
	ID             string
	HolderName     string
	Type           AccountType
	Balance        int64 // Valor em centavos (ex: 1000 = R$ 10,00)
	Version        int64
	MinimumBalance int64 // Abaixo disso, um LowBalanceAlert é emitido
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowMinimum indica se o saldo atual dispara alerta de saldo baixo.
func (a *Account) BelowMinimum() bool {
	return a.Balance < a.MinimumBalance
}

package domain

import "time"

// TransactionType define as operações suportadas pelo coordenador.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// TransactionStatus define o ciclo de vida do registro no ledger.
// Transições válidas: PENDING → COMMITTED ou PENDING → FAILED.
// Ambos os estados finais são terminais: o registro nunca mais é alterado.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCommitted TransactionStatus = "COMMITTED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Terminal informa se o status encerra o ciclo de vida do registro.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCommitted || s == TransactionStatusFailed
}

// TransactionRecord é o registro durável de uma tentativa de movimentação.
// É gravado como PENDING antes de qualquer mutação de saldo (write-ahead),
// garantindo que mesmo numa queda do coordenador exista um registro
// reconciliável por um processo externo.
//
// SourceAccountID fica vazio em DEPOSIT; TargetAccountID fica vazio em
// WITHDRAWAL. FailureReason só é preenchido quando Status = FAILED.
type TransactionRecord struct {
	ID              string
	Type            TransactionType
	SourceAccountID string
	TargetAccountID string
	Amount          int64 // Valor em centavos, sempre > 0 em registros válidos
	Status          TransactionStatus
	FailureReason   string
	IdempotencyKey  *string
	CreatedAt       time.Time
}

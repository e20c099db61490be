package usecase

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// DepositInput define os dados necessários para um depósito.
// Usamos DTOs para não acoplar a API HTTP ao coordenador.
type DepositInput struct {
	AccountID      string
	Amount         int64 // Valor em centavos (ex: 1000 = R$ 10,00)
	IdempotencyKey *string
}

// Deposit credita o valor na conta destino e devolve o registro finalizado.
func (c *TransactionCoordinator) Deposit(ctx context.Context, input DepositInput) (*domain.TransactionRecord, error) {
	rec := newRecord(domain.TransactionTypeDeposit, "", input.AccountID, input.Amount, input.IdempotencyKey)

	return c.execute(ctx, rec, []balanceChange{
		{accountID: input.AccountID, delta: input.Amount, checkAs: domain.TransactionTypeDeposit},
	})
}

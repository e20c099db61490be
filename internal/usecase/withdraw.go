package usecase

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// WithdrawInput define os dados necessários para um saque.
type WithdrawInput struct {
	AccountID      string
	Amount         int64 // Valor em centavos
	IdempotencyKey *string
}

// Withdraw debita o valor da conta origem, garantindo saldo não negativo.
func (c *TransactionCoordinator) Withdraw(ctx context.Context, input WithdrawInput) (*domain.TransactionRecord, error) {
	rec := newRecord(domain.TransactionTypeWithdrawal, input.AccountID, "", input.Amount, input.IdempotencyKey)

	return c.execute(ctx, rec, []balanceChange{
		{accountID: input.AccountID, delta: -input.Amount, checkAs: domain.TransactionTypeWithdrawal},
	})
}

package usecase

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// TransferInput define os dados necessários para uma transferência.
type TransferInput struct {
	SourceAccountID string
	TargetAccountID string
	Amount          int64 // Valor em centavos
	IdempotencyKey  *string
}

// Transfer move o valor entre duas contas distintas como unidade atômica:
// ou os dois saldos mudam (e as duas versões incrementam), ou nenhum muda.
// O lado debitado é validado como TRANSFER (saldo não negativo) e o lado
// creditado como DEPOSIT.
func (c *TransactionCoordinator) Transfer(ctx context.Context, input TransferInput) (*domain.TransactionRecord, error) {
	rec := newRecord(domain.TransactionTypeTransfer, input.SourceAccountID, input.TargetAccountID, input.Amount, input.IdempotencyKey)

	return c.execute(ctx, rec, []balanceChange{
		{accountID: input.SourceAccountID, delta: -input.Amount, checkAs: domain.TransactionTypeTransfer},
		{accountID: input.TargetAccountID, delta: input.Amount, checkAs: domain.TransactionTypeDeposit},
	})
}

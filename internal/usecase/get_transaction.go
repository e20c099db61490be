package usecase

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// GetTransactionUseCase expõe a leitura de um registro pelo identificador.
// Registros terminais são imutáveis: leituras repetidas devolvem sempre
// o mesmo conteúdo.
type GetTransactionUseCase struct {
	ledger gateway.LedgerEntryLog
}

func NewGetTransaction(ledger gateway.LedgerEntryLog) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		ledger: ledger,
	}
}

func (uc *GetTransactionUseCase) Execute(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	return uc.ledger.GetByID(ctx, transactionID)
}

// ListAccountTransactionsUseCase deriva o histórico de uma conta
// consultando o ledger — contas não guardam referência às transações.
type ListAccountTransactionsUseCase struct {
	ledger gateway.LedgerEntryLog
}

func NewListAccountTransactions(ledger gateway.LedgerEntryLog) *ListAccountTransactionsUseCase {
	return &ListAccountTransactionsUseCase{
		ledger: ledger,
	}
}

func (uc *ListAccountTransactionsUseCase) Execute(ctx context.Context, accountID string, filter gateway.TransactionFilter) ([]domain.TransactionRecord, error) {
	return uc.ledger.QueryByAccount(ctx, accountID, filter)
}

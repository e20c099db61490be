package gateway

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// TransactionFilter restringe consultas de histórico. Campos vazios
// significam "sem filtro"; Limit <= 0 significa "sem limite".
type TransactionFilter struct {
	Type   domain.TransactionType
	Status domain.TransactionStatus
	Limit  int
}

// LedgerEntryLog é o log durável e append-only de registros de transação.
//
// Ciclo de vida permitido: um Append (PENDING) seguido de exatamente um
// Finalize (COMMITTED ou FAILED). Nenhuma outra mutação é válida — a
// implementação deve rejeitar Finalize sobre registro já terminal com
// domain.ErrRecordFinalized.
type LedgerEntryLog interface {
	Append(ctx context.Context, record *domain.TransactionRecord) error

	// Finalize grava o status terminal. failureReason só é persistido
	// quando status = FAILED.
	Finalize(ctx context.Context, id string, status domain.TransactionStatus, failureReason string) error

	GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error)

	// QueryByAccount retorna os registros que referenciam a conta
	// (como origem ou destino), em ordem de criação.
	QueryByAccount(ctx context.Context, accountID string, filter TransactionFilter) ([]domain.TransactionRecord, error)

	// WithTx segue o mesmo padrão do AccountStore para participar da
	// transação atômica de commit.
	WithTx(tx TransactionObject) LedgerEntryLog
}

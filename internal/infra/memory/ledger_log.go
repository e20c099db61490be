package memory

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// LedgerEntryLog implementa gateway.LedgerEntryLog sobre o Store em memória.
type LedgerEntryLog struct {
	store *Store
	tx    *memTx
}

func NewLedgerEntryLog(store *Store) *LedgerEntryLog {
	return &LedgerEntryLog{store: store}
}

func (r *LedgerEntryLog) Append(_ context.Context, record *domain.TransactionRecord) error {
	if r.tx != nil {
		return r.tx.appendRecord(record)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := newMemTx(r.store)
	if err := tx.appendRecord(record); err != nil {
		return err
	}
	cp := *record
	r.store.records[record.ID] = &cp
	r.store.order = append(r.store.order, record.ID)
	return nil
}

func (r *LedgerEntryLog) Finalize(_ context.Context, id string, status domain.TransactionStatus, failureReason string) error {
	if r.tx != nil {
		return r.tx.finalize(id, status, failureReason)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := newMemTx(r.store)
	if err := tx.finalize(id, status, failureReason); err != nil {
		return err
	}
	record := tx.records[id]
	r.store.records[id] = &record
	return nil
}

func (r *LedgerEntryLog) GetByID(_ context.Context, id string) (*domain.TransactionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.records[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	cp := *record
	return &cp, nil
}

// QueryByAccount devolve os registros que referenciam a conta (origem ou
// destino), em ordem de criação, respeitando o filtro.
func (r *LedgerEntryLog) QueryByAccount(_ context.Context, accountID string, filter gateway.TransactionFilter) ([]domain.TransactionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []domain.TransactionRecord
	for _, id := range r.store.order {
		record := r.store.records[id]
		if record.SourceAccountID != accountID && record.TargetAccountID != accountID {
			continue
		}
		if filter.Type != "" && record.Type != filter.Type {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		out = append(out, *record)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}

	return out, nil
}

func (r *LedgerEntryLog) WithTx(tx gateway.TransactionObject) gateway.LedgerEntryLog {
	mtx, ok := tx.(*memTx)
	if !ok || mtx.store != r.store {
		return r
	}
	return &LedgerEntryLog{store: r.store, tx: mtx}
}

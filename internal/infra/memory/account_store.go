package memory

import (
	"context"
	"fmt"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// AccountStore implementa gateway.AccountStore sobre o Store em memória.
// Com tx != nil, opera dentro de uma unidade de commit (lock já adquirido
// por Run e escritas em staging).
type AccountStore struct {
	store *Store
	tx    *memTx
}

func NewAccountStore(store *Store) *AccountStore {
	return &AccountStore{store: store}
}

func (r *AccountStore) Create(_ context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.ID]; ok {
		return fmt.Errorf("duplicate account %s", account.ID)
	}

	cp := *account
	r.store.accounts[account.ID] = &cp
	return nil
}

func (r *AccountStore) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	// Cópia: o chamador nunca recebe o ponteiro interno.
	cp := *account
	return &cp, nil
}

// ConditionalUpdate aplica todas as escritas ou nenhuma (CAS por versão).
func (r *AccountStore) ConditionalUpdate(_ context.Context, updates []gateway.VersionedUpdate) error {
	if r.tx != nil {
		return r.tx.conditionalUpdate(updates)
	}

	// Fora de uma unidade de commit: o lock da chamada garante a
	// atomicidade do CAS isolado.
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := newMemTx(r.store)
	if err := tx.conditionalUpdate(updates); err != nil {
		return err
	}
	for id, account := range tx.accounts {
		cp := account
		r.store.accounts[id] = &cp
	}
	return nil
}

// WithTx retorna uma cópia do store ligada àquela unidade de commit.
func (r *AccountStore) WithTx(tx gateway.TransactionObject) gateway.AccountStore {
	mtx, ok := tx.(*memTx)
	if !ok || mtx.store != r.store {
		return r
	}
	return &AccountStore{store: r.store, tx: mtx}
}

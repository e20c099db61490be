// Package memory implementa os colaboradores do motor (AccountStore,
// LedgerEntryLog e TransactionManager) sobre mapas protegidos por mutex.
// Serve os testes e o modo de desenvolvimento sem dependências externas.
//
// A semântica é a mesma do backend durável: escrita condicional CAS
// tudo-ou-nada, ciclo de vida PENDING → terminal no ledger, e unidades de
// commit atômicas via Run. O lock cobre só cada chamada (ou cada unidade
// de commit), nunca o intervalo leitura-validação-escrita do coordenador.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// Store guarda o estado compartilhado: contas e registros do ledger.
// Todo acesso passa pelo mutex; ponteiros internos nunca escapam — os
// métodos devolvem cópias.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	records  map[string]*domain.TransactionRecord
	order    []string // IDs de registro em ordem de append
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		records:  make(map[string]*domain.TransactionRecord),
	}
}

// memTx é o "crachá" injetado no contexto por Run. Escritas feitas através
// dele ficam em staging e só são aplicadas se a unidade inteira der certo.
type memTx struct {
	store    *Store
	accounts map[string]domain.Account
	records  map[string]domain.TransactionRecord
	appended []string
}

func newMemTx(s *Store) *memTx {
	return &memTx{
		store:    s,
		accounts: make(map[string]domain.Account),
		records:  make(map[string]domain.TransactionRecord),
	}
}

// Run implementa gateway.TransactionManager. Segura o lock do store pela
// duração da unidade de commit, serializando commits entre si; leituras e
// validações do coordenador acontecem fora, sem lock.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newMemTx(s)
	if err := fn(context.WithValue(ctx, gateway.TransactionKey, tx)); err != nil {
		return err // staging descartado: nada foi aplicado
	}

	// Commit: aplica o staging de uma vez.
	for id, account := range tx.accounts {
		cp := account
		s.accounts[id] = &cp
	}
	for id, record := range tx.records {
		cp := record
		s.records[id] = &cp
	}
	s.order = append(s.order, tx.appended...)

	return nil
}

// lookupAccount resolve a conta visível para a transação (staging primeiro).
// Pré-condição: lock do store já adquirido (direto ou via Run).
func (tx *memTx) lookupAccount(id string) (domain.Account, bool) {
	if a, ok := tx.accounts[id]; ok {
		return a, true
	}
	if a, ok := tx.store.accounts[id]; ok {
		return *a, true
	}
	return domain.Account{}, false
}

func (tx *memTx) lookupRecord(id string) (domain.TransactionRecord, bool) {
	if r, ok := tx.records[id]; ok {
		return r, true
	}
	if r, ok := tx.store.records[id]; ok {
		return *r, true
	}
	return domain.TransactionRecord{}, false
}

// conditionalUpdate valida TODAS as versões antes de aplicar QUALQUER
// escrita: é o que dá a semântica tudo-ou-nada do CAS.
func (tx *memTx) conditionalUpdate(updates []gateway.VersionedUpdate) error {
	for _, u := range updates {
		a, ok := tx.lookupAccount(u.AccountID)
		if !ok {
			return domain.ErrAccountNotFound
		}
		if a.Version != u.ExpectedVersion {
			return domain.ErrVersionConflict
		}
	}

	now := time.Now().UTC()
	for _, u := range updates {
		a, _ := tx.lookupAccount(u.AccountID)
		a.Balance = u.NewBalance
		a.Version = u.NewVersion
		a.UpdatedAt = now
		tx.accounts[u.AccountID] = a
	}

	return nil
}

func (tx *memTx) finalize(id string, status domain.TransactionStatus, failureReason string) error {
	if !status.Terminal() {
		return fmt.Errorf("finalize requires a terminal status, got %q", status)
	}

	record, ok := tx.lookupRecord(id)
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if record.Status.Terminal() {
		return domain.ErrRecordFinalized
	}

	record.Status = status
	record.FailureReason = ""
	if status == domain.TransactionStatusFailed {
		record.FailureReason = failureReason
	}
	tx.records[id] = record

	return nil
}

func (tx *memTx) appendRecord(record *domain.TransactionRecord) error {
	if _, ok := tx.lookupRecord(record.ID); ok {
		return fmt.Errorf("duplicate transaction record %s", record.ID)
	}
	tx.records[record.ID] = *record
	tx.appended = append(tx.appended, record.ID)
	return nil
}

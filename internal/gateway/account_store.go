package gateway

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// VersionedUpdate descreve a escrita condicional de uma conta:
// "grave NewBalance/NewVersion somente se a versão armazenada ainda for
// ExpectedVersion". É a metade do compare-and-swap que o coordenador monta.
type VersionedUpdate struct {
	AccountID       string
	ExpectedVersion int64
	NewBalance      int64
	NewVersion      int64
}

// AccountStore define o contrato para persistência de contas.
// O Usecase só interage com isso, sem saber se é Postgres ou memória.
//
// Não há lock pessimista aqui: a concorrência é otimista e a correção
// depende inteiramente da semântica CAS de ConditionalUpdate.
type AccountStore interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// ConditionalUpdate aplica TODAS as escritas ou NENHUMA.
	// Se qualquer conta mudou de versão desde o snapshot, retorna
	// domain.ErrVersionConflict sem tocar em nada; conta inexistente
	// retorna domain.ErrAccountNotFound.
	ConditionalUpdate(ctx context.Context, updates []VersionedUpdate) error

	// WithTx permite que o store participe de uma transação iniciada no nível superior.
	// Retorna uma nova instância ligada àquela transação.
	// (Padrão para lidar com Atomicidade no Clean Arch: o CAS das contas e a
	// finalização do registro no ledger precisam comitar como unidade única.)
	WithTx(tx TransactionObject) AccountStore
}

package postgres

import (
	"context"
	"fmt"

	"github.com/franklaercio/quarkpay/internal/gateway"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Uow implementa gateway.TransactionManager.
// É a unidade de commit do coordenador: o CAS das contas e a finalização
// do registro no ledger rodam dentro da mesma transação ACID.
type Uow struct {
	pool *pgxpool.Pool
}

func NewUow(pool *pgxpool.Pool) *Uow {
	return &Uow{pool: pool}
}

// Run executa uma função dentro de uma transação ACID.
// Se a função retornar erro, faz Rollback. Se sucesso, Commit.
// ReadCommitted basta: a checagem de versão no UPDATE é quem arbitra
// corridas entre escritores, não o nível de isolamento.
func (u *Uow) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: pgx.ReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Defer Rollback: Se commit não for chamado (pânico ou erro), garante rollback
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Injeta a transação
	ctxWithTx := context.WithValue(ctx, gateway.TransactionKey, tx)

	if err := fn(ctxWithTx); err != nil {
		return err // Rollback automático pelo defer
	}

	return tx.Commit(ctx)
}

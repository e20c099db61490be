package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// dbtx cobre o que usamos tanto de *pgxpool.Pool quanto de pgx.Tx,
// permitindo que o mesmo repositório rode dentro ou fora de uma transação.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountStore implementa gateway.AccountStore usando pgx/v5.
type AccountStore struct {
	pool *pgxpool.Pool
	db   dbtx
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool, db: pool}
}

const accountColumns = `id, holder_name, account_type, balance, version, minimum_balance, created_at, updated_at`

func (r *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.HolderName, string(account.Type), account.Balance,
		account.Version, account.MinimumBalance, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	var account domain.Account
	var accountType string
	err := row.Scan(&account.ID, &account.HolderName, &accountType, &account.Balance,
		&account.Version, &account.MinimumBalance, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		// pgx retorna pgx.ErrNoRows, diferente de sql.ErrNoRows
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	account.Type = domain.AccountType(accountType)

	return &account, nil
}

// ConditionalUpdate grava saldo e versão de cada conta com a guarda
// "versão armazenada = versão esperada" (compare-and-swap). Zero linhas
// afetadas significa que um escritor concorrente venceu a corrida — ou que
// a conta sumiu; distinguimos com uma consulta de existência.
//
// Deve rodar dentro de uma unidade Run quando houver mais de uma conta:
// o rollback da transação é o que garante o tudo-ou-nada.
func (r *AccountStore) ConditionalUpdate(ctx context.Context, updates []gateway.VersionedUpdate) error {
	for _, u := range updates {
		tag, err := r.db.Exec(ctx, `
			UPDATE accounts
			SET balance = $1, version = $2, updated_at = now()
			WHERE id = $3 AND version = $4`,
			u.NewBalance, u.NewVersion, u.AccountID, u.ExpectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update account %s: %w", u.AccountID, err)
		}
		if tag.RowsAffected() > 0 {
			continue
		}

		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, u.AccountID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check account %s: %w", u.AccountID, err)
		}
		if !exists {
			return domain.ErrAccountNotFound
		}
		return domain.ErrVersionConflict
	}

	return nil
}

// WithTx retorna uma cópia do store usando uma transação específica.
func (r *AccountStore) WithTx(tx gateway.TransactionObject) gateway.AccountStore {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &AccountStore{pool: r.pool, db: pgTx}
}

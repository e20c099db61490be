package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// LedgerEntryLog implementa gateway.LedgerEntryLog usando pgx/v5.
// O log é append-mostly: um INSERT (PENDING) seguido de exatamente um
// UPDATE de status terminal; a cláusula status = 'PENDING' no Finalize
// impede qualquer reescrita fora desse ciclo de vida.
type LedgerEntryLog struct {
	pool *pgxpool.Pool
	db   dbtx
}

func NewLedgerEntryLog(pool *pgxpool.Pool) *LedgerEntryLog {
	return &LedgerEntryLog{pool: pool, db: pool}
}

const recordColumns = `id, type, source_account_id, target_account_id, amount, status, failure_reason, idempotency_key, created_at`

func (r *LedgerEntryLog) Append(ctx context.Context, record *domain.TransactionRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO transactions (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, string(record.Type),
		nullIfEmpty(record.SourceAccountID), nullIfEmpty(record.TargetAccountID),
		record.Amount, string(record.Status),
		nullIfEmpty(record.FailureReason), record.IdempotencyKey, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction record: %w", err)
	}
	return nil
}

func (r *LedgerEntryLog) Finalize(ctx context.Context, id string, status domain.TransactionStatus, failureReason string) error {
	if !status.Terminal() {
		return fmt.Errorf("finalize requires a terminal status, got %q", status)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET status = $1, failure_reason = $2
		WHERE id = $3 AND status = 'PENDING'`,
		string(status), nullIfEmpty(failureReason), id,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize transaction record: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nenhuma linha: registro não existe ou já é terminal.
	var current string
	err = r.db.QueryRow(ctx, `SELECT status FROM transactions WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check transaction record: %w", err)
	}
	return domain.ErrRecordFinalized
}

func (r *LedgerEntryLog) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	record, err := scanRecord(r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction record: %w", err)
	}
	return record, nil
}

func (r *LedgerEntryLog) QueryByAccount(ctx context.Context, accountID string, filter gateway.TransactionFilter) ([]domain.TransactionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM transactions
		WHERE (source_account_id = $1 OR target_account_id = $1)`
	args := []any{accountID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.TransactionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction record: %w", err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return out, nil
}

// WithTx segue o mesmo padrão do AccountStore para participar da transação atômica.
func (r *LedgerEntryLog) WithTx(tx gateway.TransactionObject) gateway.LedgerEntryLog {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &LedgerEntryLog{pool: r.pool, db: pgTx}
}

func scanRecord(row pgx.Row) (*domain.TransactionRecord, error) {
	var record domain.TransactionRecord
	var txType, status string
	var source, target, reason *string

	err := row.Scan(&record.ID, &txType, &source, &target, &record.Amount,
		&status, &reason, &record.IdempotencyKey, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.Type = domain.TransactionType(txType)
	record.Status = domain.TransactionStatus(status)
	record.SourceAccountID = deref(source)
	record.TargetAccountID = deref(target)
	record.FailureReason = deref(reason)

	return &record, nil
}

// Helpers para colunas texto opcionais (NULL no banco, vazio no domínio)
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

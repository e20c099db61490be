package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

// Padrões do coordenador. São pontos de configuração nomeados,
// sobrescrevíveis via CoordinatorConfig — nunca constantes enterradas.
const (
	DefaultMaxRetries               = 5
	DefaultHighValueThreshold int64 = 1_000_000 // centavos (R$ 10.000,00)
	DefaultStorageTimeout           = 5 * time.Second
)

// CoordinatorConfig reúne os knobs do motor. Zero value usa os padrões.
type CoordinatorConfig struct {
	// MaxRetries limita quantas vezes o commit é re-tentado após perder
	// um CAS para um escritor concorrente. Estourar o limite falha a
	// operação com ErrConcurrencyExhausted.
	MaxRetries int

	// HighValueThreshold dispara HighValueTransactionAlert quando o valor
	// da transação o excede.
	HighValueThreshold int64

	// StorageTimeout é o prazo total da operação contra o armazenamento.
	// Estourar o prazo falha com ErrStorageUnavailable, deixando o
	// registro PENDING para reconciliação externa.
	StorageTimeout time.Duration
}

func (c CoordinatorConfig) withDefaults() CoordinatorConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.HighValueThreshold <= 0 {
		c.HighValueThreshold = DefaultHighValueThreshold
	}
	if c.StorageTimeout <= 0 {
		c.StorageTimeout = DefaultStorageTimeout
	}
	return c
}

// TransactionCoordinator orquestra depósitos, saques e transferências como
// unidades atômicas sobre o AccountStore e o LedgerEntryLog.
//
// O coordenador não guarda estado mutável compartilhado: contas são
// referenciadas só por ID e toda mutação passa pelo caminho de escrita
// condicional (CAS por versão). Nenhum mutex é mantido entre a leitura do
// snapshot e o commit — quem arbitra corridas é o CAS do store.
type TransactionCoordinator struct {
	accountStore gateway.AccountStore
	ledger       gateway.LedgerEntryLog
	txManager    gateway.TransactionManager // Nosso "Unit of Work"
	dispatcher   gateway.EventDispatcher
	config       CoordinatorConfig
}

// NewTransactionCoordinator cria uma nova instância do coordenador.
// dispatcher pode ser nil (nenhum alerta é emitido).
func NewTransactionCoordinator(
	accountStore gateway.AccountStore,
	ledger gateway.LedgerEntryLog,
	txManager gateway.TransactionManager,
	dispatcher gateway.EventDispatcher,
	config CoordinatorConfig,
) *TransactionCoordinator {
	return &TransactionCoordinator{
		accountStore: accountStore,
		ledger:       ledger,
		txManager:    txManager,
		dispatcher:   dispatcher,
		config:       config.withDefaults(),
	}
}

// balanceChange descreve o efeito da operação sobre uma conta.
// checkAs informa o papel da conta no verificador de invariantes:
// o lado creditado de uma transferência é validado como DEPOSIT.
type balanceChange struct {
	accountID string
	delta     int64 // negativo = débito
	checkAs   domain.TransactionType
}

// newRecord monta o registro PENDING de uma nova tentativa de movimentação.
func newRecord(txType domain.TransactionType, sourceID, targetID string, amount int64, idempotencyKey *string) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:              uuid.NewString(),
		Type:            txType,
		SourceAccountID: sourceID,
		TargetAccountID: targetID,
		Amount:          amount,
		Status:          domain.TransactionStatusPending,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       time.Now().UTC(),
	}
}

// execute roda o algoritmo comum às três operações:
//
//  1. grava o registro PENDING no ledger (write-ahead);
//  2. lê snapshots frescos das contas envolvidas, capturando versões;
//  3. roda o verificador de invariantes sobre os snapshots (puro, sem I/O);
//  4. tenta o commit condicional: CAS de saldo+versão de todas as contas e
//     transição do registro para COMMITTED, como unidade tudo-ou-nada;
//  5. se algum CAS perdeu a corrida, re-lê e repete a partir do passo 2,
//     até MaxRetries; estourou → FAILED + ErrConcurrencyExhausted;
//  6. no sucesso, deriva alertas dos saldos pós-commit e entrega ao
//     despachante (best-effort, falha só é logada).
func (c *TransactionCoordinator) execute(ctx context.Context, rec *domain.TransactionRecord, changes []balanceChange) (*domain.TransactionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.StorageTimeout)
	defer cancel()

	// Passo 1: write-ahead. Sem registro durável não há mutação de saldo.
	// Se nem o registro pôde ser gravado, superficializamos sem registro.
	if err := c.ledger.Append(ctx, rec); err != nil {
		return nil, storageErr("appending transaction record", err)
	}

	// Regra de transferência: origem e destino devem diferir.
	if rec.Type == domain.TransactionTypeTransfer && rec.SourceAccountID == rec.TargetAccountID {
		return c.fail(ctx, rec, domain.ErrSameAccount)
	}

	for attempt := 0; ; attempt++ {
		// Passo 2: snapshots frescos das contas envolvidas.
		snaps := make(map[string]*domain.Account, len(changes))
		for _, ch := range changes {
			snap, err := c.accountStore.GetByID(ctx, ch.accountID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					return c.fail(ctx, rec, domain.ErrAccountNotFound)
				}
				// Registro fica PENDING para reconciliação externa.
				return rec, storageErr("reading account snapshot", err)
			}
			snaps[ch.accountID] = snap
		}

		// Passo 3: invariantes. Violação finaliza FAILED, sem retry.
		for _, ch := range changes {
			if res := domain.CheckMutation(*snaps[ch.accountID], ch.checkAs, rec.Amount); res != domain.CheckOK {
				return c.fail(ctx, rec, res.Err())
			}
		}

		// Passo 4: montar o CAS. A ordem de aplicação é sempre a ordem
		// natural dos IDs, para que transferências cruzadas (A→B vs B→A)
		// disputem as contas numa ordem globalmente consistente.
		updates := make([]gateway.VersionedUpdate, 0, len(changes))
		for _, ch := range changes {
			snap := snaps[ch.accountID]
			updates = append(updates, gateway.VersionedUpdate{
				AccountID:       ch.accountID,
				ExpectedVersion: snap.Version,
				NewBalance:      snap.Balance + ch.delta,
				NewVersion:      snap.Version + 1,
			})
		}
		sort.Slice(updates, func(i, j int) bool { return updates[i].AccountID < updates[j].AccountID })

		err := c.txManager.Run(ctx, func(txCtx context.Context) error {
			txObj := txCtx.Value(gateway.TransactionKey)
			if txObj == nil {
				return fmt.Errorf("erro crítico: transação não encontrada no contexto")
			}

			// Cópias ligadas a ESSA unidade de commit: o CAS das contas e a
			// finalização do registro entram ou caem juntos.
			if err := c.accountStore.WithTx(txObj).ConditionalUpdate(txCtx, updates); err != nil {
				return err
			}
			return c.ledger.WithTx(txObj).Finalize(txCtx, rec.ID, domain.TransactionStatusCommitted, "")
		})

		switch {
		case err == nil:
			rec.Status = domain.TransactionStatusCommitted
			// Passo 6: alertas derivados dos saldos pós-commit.
			c.emitAlerts(ctx, rec, changes, snaps)
			return rec, nil

		case errors.Is(err, domain.ErrVersionConflict):
			// Passo 5: outro escritor venceu o CAS. Re-ler e tentar de novo.
			if attempt >= c.config.MaxRetries {
				return c.fail(ctx, rec, domain.ErrConcurrencyExhausted)
			}

		case errors.Is(err, domain.ErrAccountNotFound):
			return c.fail(ctx, rec, domain.ErrAccountNotFound)

		default:
			return rec, storageErr("committing conditional update", err)
		}
	}
}

// fail finaliza o registro como FAILED com a razão e devolve o erro original.
// Falha ao persistir a finalização é logada, mas não mascara o erro de negócio.
func (c *TransactionCoordinator) fail(ctx context.Context, rec *domain.TransactionRecord, cause error) (*domain.TransactionRecord, error) {
	rec.Status = domain.TransactionStatusFailed
	rec.FailureReason = cause.Error()

	if err := c.ledger.Finalize(ctx, rec.ID, domain.TransactionStatusFailed, rec.FailureReason); err != nil {
		log.Error().Err(err).
			Str("transaction_id", rec.ID).
			Msg("Falha ao finalizar registro como FAILED")
	}

	return rec, cause
}

// emitAlerts entrega os alertas derivados ao despachante, em ordem de commit.
// Falha de publicação não desfaz nem contamina a transação já comitada.
func (c *TransactionCoordinator) emitAlerts(ctx context.Context, rec *domain.TransactionRecord, changes []balanceChange, snaps map[string]*domain.Account) {
	if c.dispatcher == nil {
		return
	}

	post := make([]domain.Account, 0, len(changes))
	for _, ch := range changes {
		a := *snaps[ch.accountID]
		a.Balance += ch.delta
		a.Version++
		post = append(post, a)
	}

	for _, event := range deriveAlerts(rec, post, c.config.HighValueThreshold) {
		if err := c.dispatcher.Publish(ctx, event); err != nil {
			// Apenas logamos: o retry é responsabilidade do despachante.
			log.Error().Err(err).
				Str("transaction_id", rec.ID).
				Str("kind", string(event.Kind)).
				Msg("Falha ao publicar alerta")
		}
	}
}

// storageErr converte qualquer falha de colaborador (ou estouro de prazo)
// no erro de taxonomia ErrStorageUnavailable, preservando a causa.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

package usecase

import (
	"github.com/franklaercio/quarkpay/internal/domain"
)

// deriveAlerts computa os alertas de uma transação comitada.
//
// Ordem fixa: por conta afetada (origem antes do destino), primeiro
// LOW_BALANCE, depois HIGH_VALUE_TRANSACTION. Os dois são independentes:
// uma transação pode emitir zero, um ou ambos por conta. Não há
// deduplicação nesta camada — saldo que continua baixo alerta de novo.
//
// post carrega as contas com os saldos pós-commit.
func deriveAlerts(rec *domain.TransactionRecord, post []domain.Account, highValueThreshold int64) []domain.AlertEvent {
	events := make([]domain.AlertEvent, 0, 2*len(post))

	for _, account := range post {
		if account.BelowMinimum() {
			events = append(events, domain.AlertEvent{
				TransactionID: rec.ID,
				AccountID:     account.ID,
				Kind:          domain.AlertLowBalance,
				Observed:      account.Balance,
				Limit:         account.MinimumBalance,
			})
		}

		if rec.Amount > highValueThreshold {
			events = append(events, domain.AlertEvent{
				TransactionID: rec.ID,
				AccountID:     account.ID,
				Kind:          domain.AlertHighValueTransaction,
				Observed:      rec.Amount,
				Limit:         highValueThreshold,
			})
		}
	}

	return events
}

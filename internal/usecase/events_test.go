package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franklaercio/quarkpay/internal/domain"
)

func TestDeriveAlerts(t *testing.T) {
	t.Parallel()

	rec := &domain.TransactionRecord{
		ID:              "tx-1",
		Type:            domain.TransactionTypeTransfer,
		SourceAccountID: "acc-a",
		TargetAccountID: "acc-b",
		Amount:          300,
		Status:          domain.TransactionStatusCommitted,
	}

	tests := []struct {
		name      string
		post      []domain.Account
		threshold int64
		expected  []domain.AlertEvent
	}{
		{
			name: "nenhum alerta",
			post: []domain.Account{
				{ID: "acc-a", Balance: 500, MinimumBalance: 100},
			},
			threshold: 1_000,
			expected:  []domain.AlertEvent{},
		},
		{
			name: "saldo baixo apenas",
			post: []domain.Account{
				{ID: "acc-a", Balance: 150, MinimumBalance: 200},
			},
			threshold: 1_000,
			expected: []domain.AlertEvent{
				{TransactionID: "tx-1", AccountID: "acc-a", Kind: domain.AlertLowBalance, Observed: 150, Limit: 200},
			},
		},
		{
			name: "alto valor apenas, por conta afetada",
			post: []domain.Account{
				{ID: "acc-a", Balance: 500, MinimumBalance: 0},
				{ID: "acc-b", Balance: 300, MinimumBalance: 0},
			},
			threshold: 250,
			expected: []domain.AlertEvent{
				{TransactionID: "tx-1", AccountID: "acc-a", Kind: domain.AlertHighValueTransaction, Observed: 300, Limit: 250},
				{TransactionID: "tx-1", AccountID: "acc-b", Kind: domain.AlertHighValueTransaction, Observed: 300, Limit: 250},
			},
		},
		{
			name: "ambos na ordem fixa: saldo baixo antes do alto valor",
			post: []domain.Account{
				{ID: "acc-a", Balance: 50, MinimumBalance: 200},
			},
			threshold: 100,
			expected: []domain.AlertEvent{
				{TransactionID: "tx-1", AccountID: "acc-a", Kind: domain.AlertLowBalance, Observed: 50, Limit: 200},
				{TransactionID: "tx-1", AccountID: "acc-a", Kind: domain.AlertHighValueTransaction, Observed: 300, Limit: 100},
			},
		},
		{
			name: "saldo igual ao mínimo não alerta, valor igual ao limiar não alerta",
			post: []domain.Account{
				{ID: "acc-a", Balance: 200, MinimumBalance: 200},
			},
			threshold: 300,
			expected:  []domain.AlertEvent{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			events := deriveAlerts(rec, tt.post, tt.threshold)

			assert.Equal(t, tt.expected, events)
		})
	}
}

func TestDeriveAlertsNoDeduplication(t *testing.T) {
	t.Parallel()

	rec := &domain.TransactionRecord{ID: "tx-2", Type: domain.TransactionTypeWithdrawal, Amount: 10}
	post := []domain.Account{{ID: "acc-a", Balance: 90, MinimumBalance: 200}}

	// Saldo que continua baixo alerta de novo em cada transação comitada.
	first := deriveAlerts(rec, post, 1_000)
	second := deriveAlerts(rec, post, 1_000)

	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMutation(t *testing.T) {
	t.Parallel()

	snapshot := Account{
		ID:      "acc-1",
		Type:    AccountTypeChecking,
		Balance: 1_000,
		Version: 3,
	}

	tests := []struct {
		name     string
		txType   TransactionType
		amount   int64
		expected CheckResult
	}{
		{
			name:     "depósito com valor válido é sempre OK",
			txType:   TransactionTypeDeposit,
			amount:   500,
			expected: CheckOK,
		},
		{
			name:     "valor zero é inválido",
			txType:   TransactionTypeDeposit,
			amount:   0,
			expected: CheckInvalidAmount,
		},
		{
			name:     "valor negativo é inválido",
			txType:   TransactionTypeWithdrawal,
			amount:   -10,
			expected: CheckInvalidAmount,
		},
		{
			name:     "saque dentro do saldo é OK",
			txType:   TransactionTypeWithdrawal,
			amount:   1_000,
			expected: CheckOK,
		},
		{
			name:     "saque acima do saldo é insuficiente",
			txType:   TransactionTypeWithdrawal,
			amount:   1_001,
			expected: CheckInsufficientFunds,
		},
		{
			name:     "transferência acima do saldo é insuficiente",
			txType:   TransactionTypeTransfer,
			amount:   2_000,
			expected: CheckInsufficientFunds,
		},
		{
			name:     "transferência dentro do saldo é OK",
			txType:   TransactionTypeTransfer,
			amount:   999,
			expected: CheckOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := CheckMutation(snapshot, tt.txType, tt.amount)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCheckMutationIsPure(t *testing.T) {
	t.Parallel()

	snapshot := Account{ID: "acc-1", Balance: 100, Version: 1}

	// O verificador nunca toca o snapshot nem depende de estado externo:
	// chamadas repetidas dão sempre o mesmo veredito.
	for i := 0; i < 10; i++ {
		assert.Equal(t, CheckInsufficientFunds, CheckMutation(snapshot, TransactionTypeWithdrawal, 150))
	}
	assert.Equal(t, int64(100), snapshot.Balance)
	assert.Equal(t, int64(1), snapshot.Version)
}

func TestCheckResultErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckOK.Err())
	assert.ErrorIs(t, CheckInvalidAmount.Err(), ErrInvalidAmount)
	assert.ErrorIs(t, CheckInsufficientFunds.Err(), ErrInsufficientFunds)
}

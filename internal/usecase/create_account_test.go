package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/infra/memory"
	"github.com/franklaercio/quarkpay/internal/usecase"
)

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	accounts := memory.NewAccountStore(store)
	uc := usecase.NewCreateAccount(accounts)

	out, err := uc.Execute(context.Background(), usecase.CreateAccountInput{
		HolderName:     "Maria Souza",
		Type:           domain.AccountTypeSavings,
		InitialBalance: 5_000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, int64(5_000), out.Balance)
	// Poupança sem mínimo explícito herda o padrão da modalidade.
	assert.Equal(t, domain.DefaultMinimumBalance(domain.AccountTypeSavings), out.MinimumBalance)

	stored, err := accounts.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
	assert.Equal(t, domain.AccountTypeSavings, stored.Type)
}

func TestCreateAccountExplicitMinimum(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	uc := usecase.NewCreateAccount(memory.NewAccountStore(store))

	minimum := int64(50_000)
	out, err := uc.Execute(context.Background(), usecase.CreateAccountInput{
		HolderName:     "João Lima",
		Type:           domain.AccountTypeChecking,
		InitialBalance: 0,
		MinimumBalance: &minimum,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), out.MinimumBalance)
}

func TestCreateAccountValidation(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	uc := usecase.NewCreateAccount(memory.NewAccountStore(store))

	_, err := uc.Execute(context.Background(), usecase.CreateAccountInput{
		HolderName:     "Tipo Inválido",
		Type:           domain.AccountType("PREMIUM"),
		InitialBalance: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	_, err = uc.Execute(context.Background(), usecase.CreateAccountInput{
		HolderName:     "Saldo Negativo",
		Type:           domain.AccountTypeChecking,
		InitialBalance: -1,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeInitialBalance)
}

func TestGetAccountTimestampIsRFC3339(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	accounts := memory.NewAccountStore(store)
	create := usecase.NewCreateAccount(accounts)
	get := usecase.NewGetAccount(accounts)

	created, err := create.Execute(context.Background(), usecase.CreateAccountInput{
		HolderName:     "Ana Dias",
		Type:           domain.AccountTypeChecking,
		InitialBalance: 100,
	})
	require.NoError(t, err)

	out, err := get.Execute(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = time.Parse(time.RFC3339, out.UpdatedAt)
	assert.NoError(t, err, "timestamps da API são RFC3339")
}

func TestGetAccountNotFound(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	uc := usecase.NewGetAccount(memory.NewAccountStore(store))

	_, err := uc.Execute(context.Background(), "inexistente")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

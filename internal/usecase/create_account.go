package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

type CreateAccountInput struct {
	HolderName     string
	Type           domain.AccountType
	InitialBalance int64
	// MinimumBalance nulo usa o padrão da modalidade (configurável por conta).
	MinimumBalance *int64
}

type CreateAccountOutput struct {
	ID             string
	HolderName     string
	Type           domain.AccountType
	Balance        int64
	MinimumBalance int64
}

type CreateAccountUseCase struct {
	accountStore gateway.AccountStore
}

func NewCreateAccount(accountStore gateway.AccountStore) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountStore: accountStore,
	}
}

func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}
	if input.InitialBalance < 0 {
		return nil, domain.ErrNegativeInitialBalance
	}

	minimum := domain.DefaultMinimumBalance(input.Type)
	if input.MinimumBalance != nil && *input.MinimumBalance >= 0 {
		minimum = *input.MinimumBalance
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             uuid.NewString(),
		HolderName:     input.HolderName,
		Type:           input.Type,
		Balance:        input.InitialBalance,
		Version:        1,
		MinimumBalance: minimum,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// A criação de conta é uma operação atômica simples (um insert),
	// então não precisamos abrir uma unidade de commit aqui.
	if err := uc.accountStore.Create(ctx, account); err != nil {
		return nil, err
	}

	return &CreateAccountOutput{
		ID:             account.ID,
		HolderName:     account.HolderName,
		Type:           account.Type,
		Balance:        account.Balance,
		MinimumBalance: account.MinimumBalance,
	}, nil
}

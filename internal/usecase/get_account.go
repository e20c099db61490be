package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
)

type GetAccountOutput struct {
	ID             string `json:"id"`
	HolderName     string `json:"holder_name"`
	Type           string `json:"account_type"`
	Balance        int64  `json:"balance"`
	MinimumBalance int64  `json:"minimum_balance"`
	Version        int64  `json:"version"`
	UpdatedAt      string `json:"updated_at"`
}

type GetAccountUseCase struct {
	accountStore gateway.AccountStore
}

func NewGetAccount(accountStore gateway.AccountStore) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountStore: accountStore,
	}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, accountID string) (*GetAccountOutput, error) {
	account, err := uc.accountStore.GetByID(ctx, accountID)
	if err != nil {
		// Se for erro de "não encontrado", retornamos o erro de domínio
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		// Outros erros (banco fora do ar, etc)
		return nil, fmt.Errorf("erro ao buscar conta: %w", err)
	}

	return &GetAccountOutput{
		ID:             account.ID,
		HolderName:     account.HolderName,
		Type:           string(account.Type),
		Balance:        account.Balance,
		MinimumBalance: account.MinimumBalance,
		Version:        account.Version,
		UpdatedAt:      account.UpdatedAt.Format(time.RFC3339),
	}, nil
}

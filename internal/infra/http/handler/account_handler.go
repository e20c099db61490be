package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/usecase"
)

type AccountHandler struct {
	createAccountUC *usecase.CreateAccountUseCase
	getAccountUC    *usecase.GetAccountUseCase
}

func NewAccountHandler(createAccountUC *usecase.CreateAccountUseCase, getAccountUC *usecase.GetAccountUseCase) *AccountHandler {
	return &AccountHandler{
		createAccountUC: createAccountUC,
		getAccountUC:    getAccountUC,
	}
}

type CreateAccountRequest struct {
	HolderName     string `json:"holder_name"`
	AccountType    string `json:"account_type"`
	InitialBalance int64  `json:"initial_balance"` // Valor em centavos
	MinimumBalance *int64 `json:"minimum_balance,omitempty"`
}

type CreateAccountResponse struct {
	ID             string `json:"id"`
	HolderName     string `json:"holder_name"`
	AccountType    string `json:"account_type"`
	Balance        int64  `json:"balance"`
	MinimumBalance int64  `json:"minimum_balance"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	output, err := h.createAccountUC.Execute(r.Context(), usecase.CreateAccountInput{
		HolderName:     req.HolderName,
		Type:           domain.AccountType(req.AccountType),
		InitialBalance: req.InitialBalance,
		MinimumBalance: req.MinimumBalance,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAccountType), errors.Is(err, domain.ErrNegativeInitialBalance):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("Falha ao criar conta")
			respondError(w, http.StatusInternalServerError, "Erro interno")
		}
		return
	}

	respondJSON(w, http.StatusCreated, CreateAccountResponse{
		ID:             output.ID,
		HolderName:     output.HolderName,
		AccountType:    string(output.Type),
		Balance:        output.Balance,
		MinimumBalance: output.MinimumBalance,
	})
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	output, err := h.getAccountUC.Execute(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			respondError(w, http.StatusNotFound, "Conta não encontrada")
			return
		}
		log.Error().Err(err).Msg("Falha ao buscar conta")
		respondError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	respondJSON(w, http.StatusOK, output)
}

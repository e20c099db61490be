package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/franklaercio/quarkpay/internal/domain"
	"github.com/franklaercio/quarkpay/internal/gateway"
	"github.com/franklaercio/quarkpay/internal/usecase"
)

// TransactionHandler expõe as operações do coordenador via HTTP.
type TransactionHandler struct {
	coordinator *usecase.TransactionCoordinator
	getTxUC     *usecase.GetTransactionUseCase
	listTxUC    *usecase.ListAccountTransactionsUseCase
}

func NewTransactionHandler(
	coordinator *usecase.TransactionCoordinator,
	getTxUC *usecase.GetTransactionUseCase,
	listTxUC *usecase.ListAccountTransactionsUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		coordinator: coordinator,
		getTxUC:     getTxUC,
		listTxUC:    listTxUC,
	}
}

// DTOs (Data Transfer Objects) para Request/Response
// Usamos tags JSON para mapear snake_case (padrão de APIs)
type AmountRequest struct {
	Amount int64 `json:"amount"` // Valor em centavos
}

type CreateTransferRequest struct {
	SourceAccountID string `json:"source_account_id"`
	TargetAccountID string `json:"target_account_id"`
	Amount          int64  `json:"amount"` // Valor em centavos
}

type TransactionResponse struct {
	TransactionID   string `json:"transaction_id"`
	Type            string `json:"type"`
	SourceAccountID string `json:"source_account_id,omitempty"`
	TargetAccountID string `json:"target_account_id,omitempty"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
	FailureReason   string `json:"failure_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func toResponse(rec *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		TransactionID:   rec.ID,
		Type:            string(rec.Type),
		SourceAccountID: rec.SourceAccountID,
		TargetAccountID: rec.TargetAccountID,
		Amount:          rec.Amount,
		Status:          string(rec.Status),
		FailureReason:   rec.FailureReason,
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
	}
}

// Deposit processa POST /accounts/{accountID}/deposit
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	rec, err := h.coordinator.Deposit(r.Context(), usecase.DepositInput{
		AccountID:      chi.URLParam(r, "accountID"),
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondOperation(w, rec, err)
}

// Withdraw processa POST /accounts/{accountID}/withdraw
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	rec, err := h.coordinator.Withdraw(r.Context(), usecase.WithdrawInput{
		AccountID:      chi.URLParam(r, "accountID"),
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondOperation(w, rec, err)
}

// Transfer processa POST /transfers
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	rec, err := h.coordinator.Transfer(r.Context(), usecase.TransferInput{
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		Amount:          req.Amount,
		IdempotencyKey:  idempotencyKey(r),
	})
	h.respondOperation(w, rec, err)
}

// GetByID processa GET /transactions/{transactionID}
func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	rec, err := h.getTxUC.Execute(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "Transação não encontrada")
			return
		}
		log.Error().Err(err).Msg("Falha ao buscar transação")
		respondError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	respondJSON(w, http.StatusOK, toResponse(rec))
}

// ListByAccount processa GET /accounts/{accountID}/transactions
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	filter := gateway.TransactionFilter{
		Type:   domain.TransactionType(r.URL.Query().Get("type")),
		Status: domain.TransactionStatus(r.URL.Query().Get("status")),
	}

	records, err := h.listTxUC.Execute(r.Context(), chi.URLParam(r, "accountID"), filter)
	if err != nil {
		log.Error().Err(err).Msg("Falha ao listar transações")
		respondError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	out := make([]TransactionResponse, 0, len(records))
	for i := range records {
		out = append(out, toResponse(&records[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// respondOperation centraliza o mapeamento Erro de Domínio -> HTTP Status.
// Falhas de negócio ainda carregam o registro FAILED no corpo, para o
// cliente poder consultá-lo depois.
func (h *TransactionHandler) respondOperation(w http.ResponseWriter, rec *domain.TransactionRecord, err error) {
	if err == nil {
		respondJSON(w, http.StatusCreated, toResponse(rec))
		return
	}

	status := http.StatusInternalServerError
	message := "Erro interno do servidor"

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		status, message = http.StatusNotFound, "Conta não encontrada"
	case errors.Is(err, domain.ErrInvalidAmount):
		status, message = http.StatusBadRequest, "Valor inválido"
	case errors.Is(err, domain.ErrSameAccount):
		status, message = http.StatusBadRequest, "Origem e destino devem ser diferentes"
	case errors.Is(err, domain.ErrInsufficientFunds):
		status, message = http.StatusUnprocessableEntity, "Saldo insuficiente"
	case errors.Is(err, domain.ErrConcurrencyExhausted):
		// Contenção transitória: o cliente pode repetir a operação
		status, message = http.StatusConflict, "Concorrência excessiva, tente novamente"
	case errors.Is(err, domain.ErrStorageUnavailable):
		status, message = http.StatusServiceUnavailable, "Armazenamento indisponível"
	default:
		log.Error().Err(err).Msg("Erro interno ao processar movimentação")
	}

	if rec != nil {
		body := toResponse(rec)
		body.FailureReason = rec.FailureReason
		respondJSON(w, status, map[string]any{"error": message, "transaction": body})
		return
	}
	respondError(w, status, message)
}

// Helpers para resposta JSON
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Falha ao codificar resposta JSON")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func idempotencyKey(r *http.Request) *string {
	key := r.Header.Get("Idempotency-Key")
	if key == "" {
		return nil
	}
	return &key
}

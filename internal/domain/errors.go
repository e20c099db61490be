package domain

import "errors"

// Erros de domínio do motor de ledger. O coordenador nunca engole falha:
// todo caminho de erro finaliza o TransactionRecord como FAILED antes de
// retornar, exceto ErrStorageUnavailable antes do registro existir.
var (
	// Erros do chamador (não adianta repetir a chamada sem corrigir a entrada)
	ErrInvalidAmount          = errors.New("transaction amount must be greater than zero")
	ErrAccountNotFound        = errors.New("account not found")
	ErrSameAccount            = errors.New("source and target accounts must differ")
	ErrInvalidAccountType     = errors.New("unknown account type")
	ErrNegativeInitialBalance = errors.New("initial balance must not be negative")

	// Violação de regra de negócio (não-retryable)
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Contenção transitória: o chamador pode repetir a operação inteira
	ErrConcurrencyExhausted = errors.New("concurrent update retries exhausted")

	// Falha do colaborador de armazenamento: repetir com backoff
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrVersionConflict é interno ao caminho de escrita condicional:
	// o coordenador o trata com re-leitura + retry e nunca o propaga.
	ErrVersionConflict = errors.New("account version conflict")

	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrRecordFinalized protege o ciclo de vida do ledger:
	// um registro terminal (COMMITTED/FAILED) nunca é reescrito.
	ErrRecordFinalized = errors.New("transaction record already finalized")
)

package gateway

import (
	"context"
	"time"
)

// CachedResponse é a resposta já finalizada de uma operação de movimentação,
// recolocada no ar quando o cliente repete a mesma Idempotency-Key.
type CachedResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string][]string // bom para headers customizados
}

// IdempotencyRepository guarda respostas por chave de idempotência,
// com expiração. Repetir um POST de depósito/saque/transferência com a
// mesma chave devolve o resultado original em vez de reexecutar.
type IdempotencyRepository interface {
	// Get retorna a resposta cacheada, ou nil se a chave não existe.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save armazena a resposta com um TTL (Time To Live)
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}

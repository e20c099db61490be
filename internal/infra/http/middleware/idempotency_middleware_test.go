package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franklaercio/quarkpay/internal/gateway"
	"github.com/franklaercio/quarkpay/internal/infra/http/middleware"
)

// mapRepository implementa gateway.IdempotencyRepository em memória.
type mapRepository struct {
	mu        sync.Mutex
	responses map[string]gateway.CachedResponse
}

func newMapRepository() *mapRepository {
	return &mapRepository{responses: make(map[string]gateway.CachedResponse)}
}

func (r *mapRepository) Get(_ context.Context, key string) (*gateway.CachedResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.responses[key]; ok {
		return &cached, nil
	}
	return nil, nil
}

func (r *mapRepository) Save(_ context.Context, key string, response gateway.CachedResponse, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key] = response
	return nil
}

func doRequest(handler http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysCommittedResponse(t *testing.T) {
	t.Parallel()

	calls := 0
	handler := middleware.Idempotency(newMapRepository())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"COMMITTED"}`))
	}))

	first := doRequest(handler, "chave-1")
	second := doRequest(handler, "chave-1")

	assert.Equal(t, 1, calls, "a repetição não pode reexecutar a operação")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
}

func TestIdempotencyDoesNotCacheConflict(t *testing.T) {
	t.Parallel()

	// Primeira tentativa esgota os retries de concorrência (409); a
	// repetição com a MESMA chave deve chegar ao handler de novo e
	// receber o resultado fresco, nunca o 409 antigo.
	calls := 0
	handler := middleware.Idempotency(newMapRepository())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"Concorrência excessiva, tente novamente"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"COMMITTED"}`))
	}))

	first := doRequest(handler, "chave-1")
	require.Equal(t, http.StatusConflict, first.Code)

	second := doRequest(handler, "chave-1")
	assert.Equal(t, 2, calls, "o 409 transitório não pode pinar a chave")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Empty(t, second.Header().Get("X-Idempotency-Hit"))
}

func TestIdempotencyDoesNotCacheServerErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	handler := middleware.Idempotency(newMapRepository())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	doRequest(handler, "chave-1")
	doRequest(handler, "chave-1")

	assert.Equal(t, 2, calls)
}

func TestIdempotencyCachesDeterministicRejections(t *testing.T) {
	t.Parallel()

	// 422 (saldo insuficiente) é determinístico para a mesma entrada:
	// repetir a chave devolve o cache sem reexecutar.
	calls := 0
	handler := middleware.Idempotency(newMapRepository())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	doRequest(handler, "chave-1")
	second := doRequest(handler, "chave-1")

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusUnprocessableEntity, second.Code)
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	t.Parallel()

	calls := 0
	handler := middleware.Idempotency(newMapRepository())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	doRequest(handler, "")
	doRequest(handler, "")

	assert.Equal(t, 2, calls)
}

// Package dispatch implementa o despachante de eventos do motor: entrega
// assíncrona, best-effort, em processo. O coordenador publica e segue em
// frente; a durabilidade do commit nunca depende da entrega do alerta.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// Sink é um destino de entrega de alertas (log estruturado, trilha de
// auditoria no Mongo, etc).
type Sink interface {
	Deliver(ctx context.Context, event domain.AlertEvent) error
}

var ErrDispatcherClosed = errors.New("event dispatcher closed")
var ErrBufferFull = errors.New("event buffer full")

// AsyncDispatcher implementa gateway.EventDispatcher com um canal
// bufferizado e uma goroutine trabalhadora repassando os eventos aos sinks
// em ordem de publicação (que é a ordem de commit do coordenador).
//
// Publish nunca bloqueia: buffer cheio descarta o evento e devolve erro —
// quem publica só loga, por contrato.
type AsyncDispatcher struct {
	events chan domain.AlertEvent
	sinks  []Sink

	deliverTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsyncDispatcher sobe a goroutine de entrega imediatamente.
func NewAsyncDispatcher(buffer int, sinks ...Sink) *AsyncDispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	d := &AsyncDispatcher{
		events:         make(chan domain.AlertEvent, buffer),
		sinks:          sinks,
		deliverTimeout: 5 * time.Second,
		done:           make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *AsyncDispatcher) Publish(_ context.Context, event domain.AlertEvent) error {
	// RLock segura o fechamento do canal enquanto houver envio em curso.
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.events <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// run consome o canal até o Close. Falha num sink não impede os demais.
func (d *AsyncDispatcher) run() {
	for event := range d.events {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.deliverTimeout)
			if err := sink.Deliver(ctx, event); err != nil {
				log.Error().Err(err).
					Str("transaction_id", event.TransactionID).
					Str("account_id", event.AccountID).
					Str("kind", string(event.Kind)).
					Msg("Falha ao entregar alerta ao sink")
			}
			cancel()
		}
	}
	close(d.done)
}

// Close para de aceitar eventos e espera a fila drenar.
func (d *AsyncDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()

	<-d.done
}

// LogSink registra cada alerta no log estruturado. É o sink mínimo que o
// serviço sempre carrega, mesmo sem trilha de auditoria configurada.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, event domain.AlertEvent) error {
	log.Warn().
		Str("transaction_id", event.TransactionID).
		Str("account_id", event.AccountID).
		Str("kind", string(event.Kind)).
		Int64("observed", event.Observed).
		Int64("limit", event.Limit).
		Msg("Alerta emitido")
	return nil
}

package gateway

import (
	"context"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// EventDispatcher recebe notificações pós-commit (alertas de saldo baixo,
// transação de alto valor) para entrega assíncrona, best-effort.
//
// Falha de publicação NUNCA desfaz a transação já comitada: o coordenador
// apenas loga e segue — o retry é responsabilidade do próprio despachante.
type EventDispatcher interface {
	Publish(ctx context.Context, event domain.AlertEvent) error
}

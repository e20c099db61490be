package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/franklaercio/quarkpay/internal/domain"
)

// AlertAudit representa o documento salvo no Mongo para cada alerta
// despachado. Usamos tags 'bson' em vez de 'json'.
type AlertAudit struct {
	ID            string    `bson:"_id,omitempty"` // O Mongo gera automático se vazio
	TransactionID string    `bson:"transaction_id"`
	AccountID     string    `bson:"account_id"`
	Kind          string    `bson:"kind"`
	Observed      int64     `bson:"observed"`
	Limit         int64     `bson:"limit"`
	EmittedAt     time.Time `bson:"emitted_at"`
}

// AuditRepository guarda a trilha de auditoria dos alertas emitidos.
// É só trilha: o estado autoritativo da transação mora no ledger.
type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	// Cria/Obtém a collection "alert_audit"
	collection := client.Database(dbName).Collection("alert_audit")
	return &AuditRepository{collection: collection}
}

func (r *AuditRepository) Save(ctx context.Context, audit AlertAudit) error {
	// Adiciona timestamp de emissão
	audit.EmittedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to insert alert audit: %w", err)
	}
	return nil
}

// AuditSink adapta o repositório ao contrato dispatch.Sink: cada alerta
// entregue vira um documento de auditoria.
type AuditSink struct {
	repo *AuditRepository
}

func NewAuditSink(repo *AuditRepository) *AuditSink {
	return &AuditSink{repo: repo}
}

func (s *AuditSink) Deliver(ctx context.Context, event domain.AlertEvent) error {
	return s.repo.Save(ctx, AlertAudit{
		TransactionID: event.TransactionID,
		AccountID:     event.AccountID,
		Kind:          string(event.Kind),
		Observed:      event.Observed,
		Limit:         event.Limit,
	})
}

package domain

// AlertKind identifica o tipo de alerta derivado após um commit.
type AlertKind string

const (
	// AlertLowBalance: saldo pós-commit abaixo do mínimo configurado da conta.
	AlertLowBalance AlertKind = "LOW_BALANCE"
	// AlertHighValueTransaction: valor da transação acima do limiar configurado.
	AlertHighValueTransaction AlertKind = "HIGH_VALUE_TRANSACTION"
)

// AlertEvent é um registro de dado puro entregue ao despachante de eventos
// após o commit. Não carrega comportamento: Observed é o valor observado
// (saldo pós-commit ou valor da transação) e Limit o limite que o disparou.
type AlertEvent struct {
	TransactionID string
	AccountID     string
	Kind          AlertKind
	Observed      int64
	Limit         int64
}

package gateway

import "context"

// TransactionObject é o "crachá" opaco que carrega a unidade de commit
// do backend (pgx.Tx no Postgres, token interno no store em memória).
type TransactionObject interface{}

// TransactionManager define quem sabe iniciar/comitar unidades atômicas (UoW).
// O coordenador usa Run apenas no passo de commit: CAS das contas +
// finalização do registro no ledger como tudo-ou-nada. Nenhum lock é
// mantido fora desse trecho.
type TransactionManager interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionKeyType evita colisão de chaves no contexto
type TransactionKeyType string

const TransactionKey TransactionKeyType = "transaction"

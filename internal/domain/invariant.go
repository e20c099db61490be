package domain

// CheckResult é o veredito do verificador de invariantes sobre uma
// mutação de saldo proposta.
type CheckResult int

const (
	CheckOK CheckResult = iota
	CheckInvalidAmount
	CheckInsufficientFunds
)

func (r CheckResult) String() string {
	switch r {
	case CheckOK:
		return "OK"
	case CheckInvalidAmount:
		return "INVALID_AMOUNT"
	case CheckInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	}
	return "UNKNOWN"
}

// Err traduz o veredito para o erro de domínio correspondente (nil se OK).
func (r CheckResult) Err() error {
	switch r {
	case CheckInvalidAmount:
		return ErrInvalidAmount
	case CheckInsufficientFunds:
		return ErrInsufficientFunds
	}
	return nil
}

// CheckMutation valida uma mutação proposta contra as regras da conta.
// Função pura, sem I/O: pode rodar especulativamente sobre snapshots
// levemente defasados antes do commit condicional — o CAS do store é quem
// decide se o snapshot ainda vale.
//
// Regras:
//   - amount <= 0 → INVALID_AMOUNT, para qualquer operação;
//   - WITHDRAWAL/TRANSFER (lado debitado): saldo não pode ficar negativo
//     (sem cheque especial para SAVINGS/CHECKING);
//   - DEPOSIT (lado creditado): sempre OK com valor válido.
func CheckMutation(snapshot Account, txType TransactionType, amount int64) CheckResult {
	if amount <= 0 {
		return CheckInvalidAmount
	}

	switch txType {
	case TransactionTypeWithdrawal, TransactionTypeTransfer:
		if snapshot.Balance-amount < 0 {
			return CheckInsufficientFunds
		}
	case TransactionTypeDeposit:
		// Crédito nunca viola o piso de saldo.
	}

	return CheckOK
}

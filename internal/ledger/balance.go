// Package ledger считает баланс участника схемы и сумму выплаты с учетом комиссии.
//
// Все функции пакета чистые: на вход подается уже отфильтрованный по паре (участник, схема) список
// транзакций, побочных эффектов и обращений к хранилищу нет.
package ledger

import (
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/shopspring/decimal"
)

type Balance struct {
	Balance          decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TotalFees        decimal.Decimal
}

// ComputeBalance суммирует транзакции по типам. Balance = TotalDeposits - TotalWithdrawals - TotalFees.
func ComputeBalance(transactions []domain.Transaction) Balance {
	var b Balance
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionDeposit:
			b.TotalDeposits = b.TotalDeposits.Add(t.Amount)
		case domain.TransactionWithdrawal:
			b.TotalWithdrawals = b.TotalWithdrawals.Add(t.Amount)
		case domain.TransactionFee:
			b.TotalFees = b.TotalFees.Add(t.Amount)
		}
	}
	b.Balance = b.TotalDeposits.Sub(b.TotalWithdrawals).Sub(b.TotalFees)
	return b
}

// Deposits возвращает только взносы.
func Deposits(transactions []domain.Transaction) []domain.Transaction {
	var deposits = make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Type == domain.TransactionDeposit {
			deposits = append(deposits, t)
		}
	}
	return deposits
}

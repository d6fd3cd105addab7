package repoargs

import (
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTransaction struct {
	UserID   uuid.UUID
	SchemeID uuid.UUID
	AdminID  uuid.UUID
	Amount   decimal.Decimal
	Type     domain.TransactionType
	Date     time.Time
	Notes    string
}

// TransactionFilter пустые поля не фильтруют. Search ищет подстроку в notes без учета регистра.
type TransactionFilter struct {
	UserID   uuid.UUID
	SchemeID uuid.UUID
	Type     domain.TransactionType
	Search   string
	Limit    int
	Offset   int
}

// TransactionRow транзакция с именем участника и названием схемы для списков.
type TransactionRow struct {
	domain.Transaction
	MemberName  string
	MemberPhone string
	SchemeName  string
	SchemeType  domain.SchemeType
}

// TransactionTotals суммы по типам по всем транзакциям без учета фильтра.
type TransactionTotals struct {
	Deposits    decimal.Decimal
	Withdrawals decimal.Decimal
	Fees        decimal.Decimal
}

func (t TransactionTotals) Volume() decimal.Decimal {
	return t.Deposits.Add(t.Withdrawals).Add(t.Fees)
}

type TransactionBatchQueryRow func(i int, t *domain.Transaction, err error)

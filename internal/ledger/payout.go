package ledger

import (
	"fmt"
	"slices"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/shopspring/decimal"
)

type ChargeStrategy string

const (
	// PercentOfBalance комиссия = депозиты * percent/100 + fixed, к выплате идет текущий баланс.
	PercentOfBalance ChargeStrategy = "percent_of_balance"
	// MonthBucketFirstDeposit комиссия = сумма первого взноса каждого месяца, к выплате идут все депозиты.
	MonthBucketFirstDeposit ChargeStrategy = "month_bucket_first_deposit"
)

// MoneyScale число знаков после запятой у денежных сумм.
const MoneyScale = 2

var hundred = decimal.NewFromInt(100) //nolint:mnd

// IsMoneyScale проверяет, что у суммы не больше MoneyScale знаков после запятой.
func IsMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

type Payout struct {
	Strategy      ChargeStrategy
	GrossAmount   decimal.Decimal
	ServiceCharge decimal.Decimal
	NetPayout     decimal.Decimal
}

// ParseChargeStrategy проверяет имя стратегии.
func ParseChargeStrategy(name string) (ChargeStrategy, error) {
	switch s := ChargeStrategy(name); s {
	case PercentOfBalance, MonthBucketFirstDeposit:
		return s, nil
	default:
		return "", domain.NewValidationError("unknown charge strategy `%s`", name)
	}
}

// ChargeStrategyFor выбирает стратегию по правилам схемы:
//  1. явно заданная rules.charge_strategy;
//  2. PercentOfBalance, если задан процент или фиксированная комиссия;
//  3. иначе MonthBucketFirstDeposit.
func ChargeStrategyFor(rules domain.SchemeRules) (ChargeStrategy, error) {
	if rules.ChargeStrategy != "" {
		return ParseChargeStrategy(rules.ChargeStrategy)
	}
	if rules.ServiceChargePercent.Valid || rules.FixedServiceCharge.Valid {
		return PercentOfBalance, nil
	}
	return MonthBucketFirstDeposit, nil
}

// ComputePayout считает выплату по стратегии, выбранной через ChargeStrategyFor.
func ComputePayout(transactions []domain.Transaction, rules domain.SchemeRules) (Payout, error) {
	strategy, err := ChargeStrategyFor(rules)
	if err != nil {
		return Payout{}, fmt.Errorf("compute payout: %w", err)
	}
	payout, err := strategy.Compute(transactions, rules)
	if err != nil {
		return Payout{}, fmt.Errorf("compute payout: %w", err)
	}
	return payout, nil
}

// Compute считает выплату по конкретной стратегии.
func (s ChargeStrategy) Compute(transactions []domain.Transaction, rules domain.SchemeRules) (Payout, error) {
	var gross, charge decimal.Decimal
	switch s {
	case PercentOfBalance:
		gross, charge = percentOfBalance(transactions, rules)
	case MonthBucketFirstDeposit:
		gross, charge = monthBucketFirstDeposit(transactions)
	default:
		return Payout{}, domain.NewValidationError("unknown charge strategy `%s`", s)
	}
	return settle(s, gross, charge), nil
}

func percentOfBalance(transactions []domain.Transaction, rules domain.SchemeRules) (decimal.Decimal, decimal.Decimal) {
	balance := ComputeBalance(transactions)

	charge := decimal.Zero
	if rules.ServiceChargePercent.Valid {
		charge = balance.TotalDeposits.Mul(rules.ServiceChargePercent.Decimal).Div(hundred)
	}
	if rules.FixedServiceCharge.Valid {
		charge = charge.Add(rules.FixedServiceCharge.Decimal)
	}
	return balance.Balance, charge
}

type monthKey struct {
	year  int
	month int
}

// monthBucketFirstDeposit группирует депозиты по календарному месяцу. Комиссия месяца равна сумме его
// самого раннего депозита (взнос внутри месяца считается одинаковым).
func monthBucketFirstDeposit(transactions []domain.Transaction) (decimal.Decimal, decimal.Decimal) {
	deposits := Deposits(transactions)
	slices.SortStableFunc(deposits, func(a, b domain.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	gross, charge := decimal.Zero, decimal.Zero
	seen := make(map[monthKey]struct{})
	for _, d := range deposits {
		gross = gross.Add(d.Amount)

		key := monthKey{year: d.Date.Year(), month: int(d.Date.Month())}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		charge = charge.Add(d.Amount)
	}
	return gross, charge
}

// settle округляет комиссию до копеек (amount хранится как NUMERIC(14,2)) и ограничивает ее размером gross,
// чтобы net никогда не уходил в минус. Net считается от уже округленной комиссии.
func settle(s ChargeStrategy, gross, charge decimal.Decimal) Payout {
	limit := decimal.Max(gross, decimal.Zero)
	charge = decimal.Min(decimal.Max(charge.Round(MoneyScale), decimal.Zero), limit)

	return Payout{
		Strategy:      s,
		GrossAmount:   gross,
		ServiceCharge: charge,
		NetPayout:     decimal.Max(gross.Sub(charge), decimal.Zero),
	}
}

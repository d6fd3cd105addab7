package calendar

import (
	"math"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultMonths = 3
	MaxMonths     = 12

	// approxDaysPerMonth знаменатель метрики регулярности. Приближение (30 дней в месяце) сохранено ради
	// совместимости выводимых значений.
	approxDaysPerMonth = 30
)

type Month struct {
	Start         time.Time
	DaysInMonth   int
	Contributions int
	Days          []Day
}

type Summary struct {
	TotalSaved         decimal.Decimal
	ContributionCount  int
	ConsistencyPercent int
}

type Passbook struct {
	StartDate time.Time
	Today     time.Time
	Months    []Month
	Summary   Summary
}

// NormalizeMonths приводит количество отображаемых месяцев к диапазону [1, MaxMonths]; 0 означает
// значение по умолчанию.
func NormalizeMonths(months int) int {
	switch {
	case months <= 0:
		return DefaultMonths
	case months > MaxMonths:
		return MaxMonths
	default:
		return months
	}
}

// Passbook строит сетку из months месяцев начиная с месяца даты начала цикла. Все дни сетки считаются
// одним проходом Project.
func (p *Projector) Passbook(months int, transactions []domain.Transaction) Passbook {
	months = NormalizeMonths(months)

	startDate := p.dateOf(p.start)
	firstMonth := time.Date(startDate.Year(), startDate.Month(), 1, 0, 0, 0, 0, p.loc)
	lastDay := firstMonth.AddDate(0, months, -1)

	days := p.Project(firstMonth, lastDay)

	result := Passbook{
		StartDate: startDate,
		Today:     p.dateOf(p.today),
		Months:    make([]Month, 0, months),
		Summary:   RenderSummary(transactions, startDate, months),
	}

	offset := 0
	for i := 0; i < months; i++ {
		monthStart := firstMonth.AddDate(0, i, 0)
		daysInMonth := monthStart.AddDate(0, 1, -1).Day()

		month := Month{
			Start:       monthStart,
			DaysInMonth: daysInMonth,
			Days:        days[offset : offset+daysInMonth],
		}
		for _, d := range month.Days {
			month.Contributions += d.Contributions
		}
		result.Months = append(result.Months, month)
		offset += daysInMonth
	}
	return result
}

// RenderSummary считает итог по депозитам, сделанным в день начала цикла или позже.
// ConsistencyPercent = round(count / (months*30) * 100), ограничено диапазоном [0, 100].
func RenderSummary(transactions []domain.Transaction, startDate time.Time, months int) Summary {
	months = NormalizeMonths(months)
	start := dayNumber(startDate)

	var s Summary
	for _, t := range transactions {
		if t.Type != domain.TransactionDeposit || dayNumber(t.Date.In(startDate.Location())) < start {
			continue
		}
		s.TotalSaved = s.TotalSaved.Add(t.Amount)
		s.ContributionCount++
	}

	percent := math.Round(float64(s.ContributionCount) / float64(months*approxDaysPerMonth) * 100) //nolint:mnd
	s.ConsistencyPercent = int(max(0, min(100, percent)))                                       //nolint:mnd
	return s
}

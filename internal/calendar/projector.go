// Package calendar раскладывает историю взносов участника по календарной сетке ("цифровая сберкнижка").
package calendar

import (
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
)

type Status string

const (
	// StatusInactive день до начала цикла участника.
	StatusInactive Status = "inactive"
	// StatusPaid в этот день был хотя бы один взнос.
	StatusPaid Status = "paid"
	// StatusCovered взноса не было, но день закрыт излишком взносов за предыдущие дни.
	StatusCovered Status = "covered"
	StatusFuture  Status = "future"
	StatusMissed  Status = "missed"
)

const secondsPerDay = 24 * 60 * 60

type Day struct {
	Date          time.Time
	Status        Status
	Contributions int
}

// Multiple в этот день внесено больше одного взноса.
func (d Day) Multiple() bool {
	return d.Contributions > 1
}

// Projector классифицирует дни относительно даты начала цикла и "сегодня". Количество взносов по дням
// считается один раз при создании, дальше статусы вычисляются одним проходом слева направо.
type Projector struct {
	loc    *time.Location
	start  int
	today  int
	counts map[int]int
}

// NewProjector создает проектор. Календарные дни считаются в часовом поясе startDate. Учитываются только
// депозиты, сделанные в день начала цикла или позже.
func NewProjector(startDate, today time.Time, transactions []domain.Transaction) *Projector {
	loc := startDate.Location()
	p := &Projector{
		loc:    loc,
		start:  dayNumber(startDate),
		today:  dayNumber(today.In(loc)),
		counts: make(map[int]int),
	}

	for _, t := range transactions {
		if t.Type != domain.TransactionDeposit {
			continue
		}
		n := dayNumber(t.Date.In(loc))
		if n < p.start {
			continue
		}
		p.counts[n]++
	}
	return p
}

// ClassifyDay возвращает статус одного дня. Порядок проверок: inactive, paid, covered, future, missed.
func ClassifyDay(date, startDate, today time.Time, deposits []domain.Transaction) Status {
	return NewProjector(startDate, today, deposits).ClassifyDay(date)
}

func (p *Projector) ClassifyDay(date time.Time) Status {
	days := p.Project(date, date)
	return days[0].Status
}

// Project возвращает дни диапазона [from, to] включительно. Излишек взносов (credit) накапливается с даты
// начала цикла: день с N > 1 взносами добавляет N-1, пустой день тратит одну единицу, если она есть.
// Пустой прошедший день при положительном credit считается covered.
func (p *Projector) Project(from, to time.Time) []Day {
	first, last := dayNumber(from.In(p.loc)), dayNumber(to.In(p.loc))
	if last < first {
		return nil
	}

	days := make([]Day, 0, last-first+1)
	credit := 0
	for n := min(first, p.start); n <= last; n++ {
		count := p.counts[n]

		var status Status
		switch {
		case n < p.start:
			status = StatusInactive
		case count > 0:
			status = StatusPaid
		case n <= p.today && credit > 0:
			status = StatusCovered
		case n > p.today:
			status = StatusFuture
		default:
			status = StatusMissed
		}

		if n >= p.start {
			if count > 1 {
				credit += count - 1
			} else if count == 0 && credit > 0 {
				credit--
			}
		}

		if n >= first {
			days = append(days, Day{
				Date:          p.dateOf(n),
				Status:        status,
				Contributions: count,
			})
		}
	}
	return days
}

func (p *Projector) dateOf(n int) time.Time {
	y, m, d := time.Unix(int64(n)*secondsPerDay, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.loc)
}

// dayNumber номер календарного дня t (в его собственном часовом поясе) от начала эпохи.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// StartOfDay полночь дня t в часовом поясе loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

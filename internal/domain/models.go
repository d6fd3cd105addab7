package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID                uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Email             string
	FullName          string
	PhoneNumber       string
	AltPhoneNumber    string
	HomeAddress       string
	Role              RoleType
	EncryptedPassword string
}

type Scheme struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	AdminID            uuid.UUID
	Name               string
	Description        string
	Type               SchemeType
	ContributionAmount decimal.Decimal
	Frequency          FrequencyType
	Rules              SchemeRules
	StartDate          time.Time
	EndDate            *time.Time
}

// LockedAt сообщает, заблокированы ли средства схемы на момент at. Блокировка действует только для ajita
// схем до наступления end_date.
func (s *Scheme) LockedAt(at time.Time) bool {
	return s.Type == SchemeAjita && s.EndDate != nil && at.Before(*s.EndDate)
}

type Membership struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SchemeID    uuid.UUID
	UserID      uuid.UUID
	Status      MembershipStatusType
	JoinedAt    time.Time
	PayoutOrder *int32
}

// Transaction неизменяемая запись журнала. Сумма всегда положительная, направление задается Type.
type Transaction struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UserID    uuid.UUID
	SchemeID  uuid.UUID
	AdminID   uuid.UUID
	Amount    decimal.Decimal
	Type      TransactionType
	Date      time.Time
	Notes     string
}

// Actor тот, от чьего имени выполняется операция. Права проверяются явно по роли, а не выводятся из
// email или метаданных профиля.
type Actor struct {
	UserID uuid.UUID
	Role   RoleType
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated() && a.Role == RoleAdmin
}

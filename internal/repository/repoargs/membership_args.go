package repoargs

import (
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/google/uuid"
)

type CreateMembership struct {
	SchemeID uuid.UUID
	UserID   uuid.UUID
	JoinedAt time.Time
}

// UpdateMembership nil поля не меняются.
type UpdateMembership struct {
	SchemeID    uuid.UUID
	UserID      uuid.UUID
	Status      *domain.MembershipStatusType
	PayoutOrder *int32
}

// MemberRow участник схемы с данными профиля.
type MemberRow struct {
	Membership  domain.Membership
	FullName    string
	PhoneNumber string
	Email       string
}

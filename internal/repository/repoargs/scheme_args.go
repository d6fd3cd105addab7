package repoargs

import (
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateScheme struct {
	AdminID            uuid.UUID
	Name               string
	Description        string
	Type               domain.SchemeType
	ContributionAmount decimal.Decimal
	Frequency          domain.FrequencyType
	Rules              domain.SchemeRules
	StartDate          time.Time
	EndDate            *time.Time
}

// MemberScheme участие юзера в схеме вместе с самой схемой.
type MemberScheme struct {
	Scheme     domain.Scheme
	Membership domain.Membership
}

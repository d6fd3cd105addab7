package domain

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionFee        TransactionType = "fee"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionFee:
		return true
	}
	return false
}

type SchemeType string

const (
	// SchemeAkawo ежедневные/периодические взносы фиксированной суммы без ротации.
	SchemeAkawo SchemeType = "akawo"
	// SchemeKwanta ротационная схема: участники получают общий котел по очереди (payout_order).
	SchemeKwanta SchemeType = "kwanta"
	// SchemeAjita целевые накопления на срок, средства заблокированы до end_date.
	SchemeAjita SchemeType = "ajita"
)

func (t SchemeType) Valid() bool {
	switch t {
	case SchemeAkawo, SchemeKwanta, SchemeAjita:
		return true
	}
	return false
}

type FrequencyType string

const (
	FrequencyDaily   FrequencyType = "daily"
	FrequencyWeekly  FrequencyType = "weekly"
	FrequencyMonthly FrequencyType = "monthly"
)

func (f FrequencyType) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type MembershipStatusType string

const (
	MembershipActive    MembershipStatusType = "active"
	MembershipCompleted MembershipStatusType = "completed"
	MembershipDefaulted MembershipStatusType = "defaulted"
)

func (s MembershipStatusType) Valid() bool {
	switch s {
	case MembershipActive, MembershipCompleted, MembershipDefaulted:
		return true
	}
	return false
}

type RoleType string

const (
	RoleAdmin  RoleType = "admin"
	RoleMember RoleType = "member"
)

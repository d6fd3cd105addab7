package api

import (
	"time"

	"github.com/fsdevblog/adashi/internal/calendar"
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/ledger"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID             uuid.UUID       `json:"id"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name"`
	PhoneNumber    string          `json:"phone_number"`
	AltPhoneNumber string          `json:"alt_phone_number,omitempty"`
	HomeAddress    string          `json:"home_address,omitempty"`
	Role           domain.RoleType `json:"role"`
	CreatedAt      time.Time       `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		PhoneNumber:    u.PhoneNumber,
		AltPhoneNumber: u.AltPhoneNumber,
		HomeAddress:    u.HomeAddress,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
	}
}

type SchemeResponse struct {
	ID                 uuid.UUID            `json:"id"`
	Name               string               `json:"name"`
	Description        string               `json:"description,omitempty"`
	Type               domain.SchemeType    `json:"type"`
	ContributionAmount decimal.Decimal      `json:"contribution_amount"`
	Frequency          domain.FrequencyType `json:"frequency"`
	Rules              domain.SchemeRules   `json:"rules"`
	StartDate          time.Time            `json:"start_date"`
	EndDate            *time.Time           `json:"end_date,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

func newSchemeResponse(s *domain.Scheme) SchemeResponse {
	return SchemeResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		Type:               s.Type,
		ContributionAmount: s.ContributionAmount,
		Frequency:          s.Frequency,
		Rules:              s.Rules,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		CreatedAt:          s.CreatedAt,
	}
}

type MembershipResponse struct {
	SchemeID    uuid.UUID                   `json:"scheme_id"`
	UserID      uuid.UUID                   `json:"user_id"`
	Status      domain.MembershipStatusType `json:"status"`
	JoinedAt    time.Time                   `json:"joined_at"`
	PayoutOrder *int32                      `json:"payout_order,omitempty"`
}

func newMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		SchemeID:    m.SchemeID,
		UserID:      m.UserID,
		Status:      m.Status,
		JoinedAt:    m.JoinedAt,
		PayoutOrder: m.PayoutOrder,
	}
}

type MemberResponse struct {
	MembershipResponse
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type TransactionResponse struct {
	ID          uuid.UUID              `json:"id"`
	UserID      uuid.UUID              `json:"user_id"`
	SchemeID    uuid.UUID              `json:"scheme_id"`
	AdminID     uuid.UUID              `json:"admin_id"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Date        time.Time              `json:"date"`
	Notes       string                 `json:"notes,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	MemberName  string                 `json:"member_name,omitempty"`
	MemberPhone string                 `json:"member_phone,omitempty"`
	SchemeName  string                 `json:"scheme_name,omitempty"`
	SchemeType  domain.SchemeType      `json:"scheme_type,omitempty"`
}

func newTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		SchemeID:  t.SchemeID,
		AdminID:   t.AdminID,
		Amount:    t.Amount,
		Type:      t.Type,
		Date:      t.Date,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

func newTransactionRowsResponse(rows []repoargs.TransactionRow) []TransactionResponse {
	response := make([]TransactionResponse, len(rows))
	for i, row := range rows {
		r := newTransactionResponse(&row.Transaction)
		r.MemberName = row.MemberName
		r.MemberPhone = row.MemberPhone
		r.SchemeName = row.SchemeName
		r.SchemeType = row.SchemeType
		response[i] = r
	}
	return response
}

type BalanceResponse struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalFees        decimal.Decimal `json:"total_fees"`
}

func newBalanceResponse(b ledger.Balance) BalanceResponse {
	return BalanceResponse{
		Balance:          b.Balance,
		TotalDeposits:    b.TotalDeposits,
		TotalWithdrawals: b.TotalWithdrawals,
		TotalFees:        b.TotalFees,
	}
}

type PayoutResponse struct {
	Strategy      ledger.ChargeStrategy `json:"strategy"`
	GrossAmount   decimal.Decimal       `json:"gross_amount"`
	ServiceCharge decimal.Decimal       `json:"service_charge"`
	NetPayout     decimal.Decimal       `json:"net_payout"`
}

func newPayoutResponse(p ledger.Payout) PayoutResponse {
	return PayoutResponse{
		Strategy:      p.Strategy,
		GrossAmount:   p.GrossAmount,
		ServiceCharge: p.ServiceCharge,
		NetPayout:     p.NetPayout,
	}
}

type DayResponse struct {
	Date          string          `json:"date"`
	Status        calendar.Status `json:"status"`
	Contributions int             `json:"contributions"`
	Multiple      bool            `json:"multiple"`
}

type MonthResponse struct {
	Month         string        `json:"month"`
	DaysInMonth   int           `json:"days_in_month"`
	Contributions int           `json:"contributions"`
	Days          []DayResponse `json:"days"`
}

type SummaryResponse struct {
	TotalSaved         decimal.Decimal `json:"total_saved"`
	ContributionCount  int             `json:"contribution_count"`
	ConsistencyPercent int             `json:"consistency_percent"`
}

type PassbookResponse struct {
	Scheme     SchemeResponse     `json:"scheme"`
	Membership MembershipResponse `json:"membership"`
	Balance    BalanceResponse    `json:"balance"`
	StartDate  string             `json:"start_date"`
	Today      string             `json:"today"`
	Summary    SummaryResponse    `json:"summary"`
	Months     []MonthResponse    `json:"months"`
}

const monthLayout = "2006-01"

func newPassbookResponse(p *service.MemberPassbook) PassbookResponse {
	months := make([]MonthResponse, len(p.Months))
	for i, m := range p.Months {
		days := make([]DayResponse, len(m.Days))
		for j, d := range m.Days {
			days[j] = DayResponse{
				Date:          d.Date.Format(time.DateOnly),
				Status:        d.Status,
				Contributions: d.Contributions,
				Multiple:      d.Multiple(),
			}
		}
		months[i] = MonthResponse{
			Month:         m.Start.Format(monthLayout),
			DaysInMonth:   m.DaysInMonth,
			Contributions: m.Contributions,
			Days:          days,
		}
	}

	return PassbookResponse{
		Scheme:     newSchemeResponse(&p.Scheme),
		Membership: newMembershipResponse(&p.Membership),
		Balance:    newBalanceResponse(p.Balance),
		StartDate:  p.StartDate.Format(time.DateOnly),
		Today:      p.Today.Format(time.DateOnly),
		Summary: SummaryResponse{
			TotalSaved:         p.Summary.TotalSaved,
			ContributionCount:  p.Summary.ContributionCount,
			ConsistencyPercent: p.Summary.ConsistencyPercent,
		},
		Months: months,
	}
}

package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/ledger"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service"
	"github.com/google/uuid"
)

type AccountServicer interface {
	Login(ctx context.Context, args service.LoginArgs) (*domain.User, string, error)
	CreateMember(
		ctx context.Context,
		actor domain.Actor,
		args service.CreateMemberArgs,
	) (*domain.User, *service.Credentials, error)
	SearchMembers(ctx context.Context, actor domain.Actor, query string) ([]domain.User, error)
}

type SchemeServicer interface {
	Create(ctx context.Context, actor domain.Actor, args service.CreateSchemeArgs) (*domain.Scheme, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*service.SchemeDetails, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Scheme, error)
	MemberSchemes(ctx context.Context, actor domain.Actor, userID uuid.UUID) ([]repoargs.MemberScheme, error)
	AssignMembers(
		ctx context.Context,
		actor domain.Actor,
		schemeID uuid.UUID,
		userIDs []uuid.UUID,
	) (*service.AssignResult, error)
	UpdateMembership(
		ctx context.Context,
		actor domain.Actor,
		args service.UpdateMembershipArgs,
	) (*domain.Membership, error)
}

type LedgerServicer interface {
	RecordContribution(
		ctx context.Context,
		actor domain.Actor,
		args service.RecordContributionArgs,
	) (*domain.Transaction, error)
	MemberBalance(ctx context.Context, actor domain.Actor, schemeID, userID uuid.UUID) (*ledger.Balance, error)
	CalculatePayout(ctx context.Context, actor domain.Actor, schemeID, userID uuid.UUID) (*service.PayoutQuote, error)
	ProcessPayout(ctx context.Context, actor domain.Actor, args service.ProcessPayoutArgs) (*service.PayoutResult, error)
	HasContributedToday(ctx context.Context, actor domain.Actor, schemeID, userID uuid.UUID) (bool, error)
	Passbook(
		ctx context.Context,
		actor domain.Actor,
		schemeID, userID uuid.UUID,
		months int,
	) (*service.MemberPassbook, error)
	Transactions(ctx context.Context, actor domain.Actor, query service.TransactionsQuery) (*service.TransactionPage, error)
	MemberHistory(ctx context.Context, actor domain.Actor, userID uuid.UUID) ([]repoargs.TransactionRow, error)
}

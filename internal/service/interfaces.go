package service

import (
	"context"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/events"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.LedgerEvent) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Search(ctx context.Context, query string, role domain.RoleType, limit uint) ([]domain.User, error)
}

type SchemeRepository interface {
	Create(ctx context.Context, args repoargs.CreateScheme) (*domain.Scheme, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Scheme, error)
	List(ctx context.Context) ([]domain.Scheme, error)
	GetMatured(ctx context.Context, at time.Time, limit uint) ([]domain.Scheme, error)
}

type MembershipRepository interface {
	BatchCreate(ctx context.Context, memberships []repoargs.CreateMembership, fn repoargs.BatchExecQueryRow)
	Find(ctx context.Context, schemeID, userID uuid.UUID) (*domain.Membership, error)
	FindForUpdate(ctx context.Context, schemeID, userID uuid.UUID) (*domain.Membership, error)
	ListBySchemeID(ctx context.Context, schemeID uuid.UUID) ([]repoargs.MemberRow, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]repoargs.MemberScheme, error)
	Update(ctx context.Context, args repoargs.UpdateMembership) (*domain.Membership, error)
	Delete(ctx context.Context, schemeID uuid.UUID, userIDs []uuid.UUID) (int64, error)
	CompleteActive(ctx context.Context, schemeID uuid.UUID) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	BatchCreate(
		ctx context.Context,
		transactions []repoargs.CreateTransaction,
		fn repoargs.TransactionBatchQueryRow,
	)
	GetByMember(ctx context.Context, schemeID, userID uuid.UUID, since time.Time) ([]domain.Transaction, error)
	CountDeposits(ctx context.Context, schemeID, userID uuid.UUID, from, to time.Time) (int64, error)
	UsersWithDeposits(ctx context.Context, schemeID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
	List(ctx context.Context, filter repoargs.TransactionFilter) ([]repoargs.TransactionRow, int64, error)
	Totals(ctx context.Context) (*repoargs.TransactionTotals, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fsdevblog/adashi/internal/calendar"
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/ledger"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxSchemeNameLength = 255

type SchemeService struct {
	uow            uow.UOW
	schemeRepo     SchemeRepository
	membershipRepo MembershipRepository
	loc            *time.Location
	now            func() time.Time
}

func NewSchemeService(u uow.UOW, loc *time.Location) (*SchemeService, error) {
	schemeRepo, err := uow.GetRepositoryAs[SchemeRepository](u, uow.RepositoryName(repoargs.SchemeRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	membershipRepo, err := uow.GetRepositoryAs[MembershipRepository](u, uow.RepositoryName(repoargs.MembershipRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &SchemeService{
		uow:            u,
		schemeRepo:     schemeRepo,
		membershipRepo: membershipRepo,
		loc:            loc,
		now:            time.Now,
	}, nil
}

type CreateSchemeArgs struct {
	Name               string
	Description        string
	Type               domain.SchemeType
	ContributionAmount decimal.Decimal
	Frequency          domain.FrequencyType
	Rules              domain.SchemeRules
	// StartDate nil означает начало текущего дня.
	StartDate *time.Time
	// EndDate допускается только для ajita схем.
	EndDate *time.Time
}

// Create создает схему от имени админа.
func (s *SchemeService) Create(ctx context.Context, actor domain.Actor, args CreateSchemeArgs) (*domain.Scheme, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("creating scheme: %w", err)
	}

	startDate := calendar.StartOfDay(s.now(), s.loc)
	if args.StartDate != nil {
		startDate = *args.StartDate
	}
	if err := validateScheme(args, startDate); err != nil {
		return nil, fmt.Errorf("creating scheme: %w", err)
	}

	scheme, err := s.schemeRepo.Create(ctx, repoargs.CreateScheme{
		AdminID:            actor.UserID,
		Name:               strings.TrimSpace(args.Name),
		Description:        strings.TrimSpace(args.Description),
		Type:               args.Type,
		ContributionAmount: args.ContributionAmount,
		Frequency:          args.Frequency,
		Rules:              args.Rules,
		StartDate:          startDate,
		EndDate:            args.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("creating scheme: %w", err)
	}
	return scheme, nil
}

func validateScheme(args CreateSchemeArgs, startDate time.Time) error {
	name := strings.TrimSpace(args.Name)
	switch {
	case name == "":
		return domain.NewValidationError("name is required")
	case len(name) > maxSchemeNameLength:
		return domain.NewValidationError("name is longer than %d bytes", maxSchemeNameLength)
	case !args.Type.Valid():
		return domain.NewValidationError("unknown scheme type `%s`", args.Type)
	case !args.Frequency.Valid():
		return domain.NewValidationError("unknown frequency `%s`", args.Frequency)
	case !args.ContributionAmount.IsPositive():
		return fmt.Errorf("%w: contribution amount must be positive", domain.ErrInvalidAmount)
	}

	if args.EndDate != nil {
		if args.Type != domain.SchemeAjita {
			return domain.NewValidationError("end date is only allowed for %s schemes", domain.SchemeAjita)
		}
		if !args.EndDate.After(startDate) {
			return domain.NewValidationError("end date must be after start date")
		}
	}

	if _, err := ledger.ChargeStrategyFor(args.Rules); err != nil {
		return err //nolint:wrapcheck
	}
	if p := args.Rules.ServiceChargePercent; p.Valid && (p.Decimal.IsNegative() || p.Decimal.GreaterThan(hundred)) {
		return domain.NewValidationError("%s must be within [0, 100]", domain.RuleServiceChargePercent)
	}
	if f := args.Rules.FixedServiceCharge; f.Valid && f.Decimal.IsNegative() {
		return domain.NewValidationError("%s must not be negative", domain.RuleFixedServiceCharge)
	}
	return nil
}

var hundred = decimal.NewFromInt(100) //nolint:mnd

type SchemeDetails struct {
	Scheme  domain.Scheme
	Members []repoargs.MemberRow
}

// GetByID схема с участниками.
func (s *SchemeService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*SchemeDetails, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("getting scheme: %w", err)
	}
	scheme, err := s.schemeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting scheme: %w", err)
	}
	members, err := s.membershipRepo.ListBySchemeID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting scheme: %w", err)
	}
	return &SchemeDetails{Scheme: *scheme, Members: members}, nil
}

func (s *SchemeService) List(ctx context.Context, actor domain.Actor) ([]domain.Scheme, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("listing schemes: %w", err)
	}
	schemes, err := s.schemeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing schemes: %w", err)
	}
	return schemes, nil
}

// MemberSchemes схемы, в которых участвует userID.
func (s *SchemeService) MemberSchemes(
	ctx context.Context,
	actor domain.Actor,
	userID uuid.UUID,
) ([]repoargs.MemberScheme, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, fmt.Errorf("member schemes: %w", err)
	}
	items, err := s.membershipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("member schemes: %w", err)
	}
	return items, nil
}

type AssignResult struct {
	Added   []uuid.UUID
	Removed []uuid.UUID
	// Kept участники, которых нужно было убрать, но у них уже есть депозиты в схеме.
	Kept []uuid.UUID
}

// AssignMembers приводит состав схемы к userIDs: добавляет недостающих и убирает лишних. Участники с
// депозитами не удаляются, их история остается привязанной к схеме.
func (s *SchemeService) AssignMembers(
	ctx context.Context,
	actor domain.Actor,
	schemeID uuid.UUID,
	userIDs []uuid.UUID,
) (*AssignResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("assigning members: %w", err)
	}

	wanted := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == uuid.Nil {
			return nil, fmt.Errorf("assigning members: %w", domain.NewValidationError("empty user id"))
		}
		wanted[id] = struct{}{}
	}

	result := new(AssignResult)
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		schemeRepo, err := uow.GetAs[SchemeRepository](tx, uow.RepositoryName(repoargs.SchemeRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		membershipRepo, err := uow.GetAs[MembershipRepository](tx, uow.RepositoryName(repoargs.MembershipRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		transactionRepo, err := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if _, err = schemeRepo.FindByID(c, schemeID); err != nil {
			return err //nolint:wrapcheck
		}
		current, err := membershipRepo.ListBySchemeID(c, schemeID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		existing := make(map[uuid.UUID]struct{}, len(current))
		var toRemove []uuid.UUID
		for _, m := range current {
			existing[m.Membership.UserID] = struct{}{}
			if _, ok := wanted[m.Membership.UserID]; !ok {
				toRemove = append(toRemove, m.Membership.UserID)
			}
		}

		if len(toRemove) > 0 {
			depositors, depErr := transactionRepo.UsersWithDeposits(c, schemeID, toRemove)
			if depErr != nil {
				return depErr //nolint:wrapcheck
			}
			result.Kept = depositors
			result.Removed = slices.DeleteFunc(toRemove, func(id uuid.UUID) bool {
				return slices.Contains(depositors, id)
			})
			if _, delErr := membershipRepo.Delete(c, schemeID, result.Removed); delErr != nil {
				return delErr //nolint:wrapcheck
			}
		}

		joinedAt := s.now()
		var creates []repoargs.CreateMembership
		for _, id := range userIDs {
			if _, ok := existing[id]; ok {
				continue
			}
			existing[id] = struct{}{}
			creates = append(creates, repoargs.CreateMembership{SchemeID: schemeID, UserID: id, JoinedAt: joinedAt})
			result.Added = append(result.Added, id)
		}

		var createErr error
		membershipRepo.BatchCreate(c, creates, func(_ int, err error) {
			if err != nil && !errors.Is(err, domain.ErrDuplicateKey) {
				createErr = err
			}
		})
		return createErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("assigning members: %w", txErr)
	}
	return result, nil
}

type UpdateMembershipArgs struct {
	SchemeID    uuid.UUID
	UserID      uuid.UUID
	Status      *domain.MembershipStatusType
	PayoutOrder *int32
}

// UpdateMembership меняет статус и/или порядок выплаты участника. Порядок только для отображения.
func (s *SchemeService) UpdateMembership(
	ctx context.Context,
	actor domain.Actor,
	args UpdateMembershipArgs,
) (*domain.Membership, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("updating membership: %w", err)
	}
	if args.Status == nil && args.PayoutOrder == nil {
		return nil, fmt.Errorf("updating membership: %w", domain.NewValidationError("nothing to update"))
	}
	if args.Status != nil && !args.Status.Valid() {
		return nil, fmt.Errorf("updating membership: %w",
			domain.NewValidationError("unknown membership status `%s`", *args.Status))
	}
	if args.PayoutOrder != nil && *args.PayoutOrder < 1 {
		return nil, fmt.Errorf("updating membership: %w", domain.NewValidationError("payout order must be >= 1"))
	}

	membership, err := s.membershipRepo.Update(ctx, repoargs.UpdateMembership{
		SchemeID:    args.SchemeID,
		UserID:      args.UserID,
		Status:      args.Status,
		PayoutOrder: args.PayoutOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("updating membership: %w", err)
	}
	return membership, nil
}

// MaturedSchemes ajita схемы, срок которых истек, с еще активными участниками.
func (s *SchemeService) MaturedSchemes(ctx context.Context, limit uint) ([]domain.Scheme, error) {
	schemes, err := s.schemeRepo.GetMatured(ctx, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("matured schemes: %w", err)
	}
	return schemes, nil
}

// CompleteMatured переводит активных участников схемы в completed. Возвращает количество обновленных.
func (s *SchemeService) CompleteMatured(ctx context.Context, schemeID uuid.UUID) (int64, error) {
	n, err := s.membershipRepo.CompleteActive(ctx, schemeID)
	if err != nil {
		return 0, fmt.Errorf("completing matured scheme %s: %w", schemeID, err)
	}
	return n, nil
}

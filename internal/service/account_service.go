package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service/tokens"
	"github.com/fsdevblog/adashi/pkg/uow"
)

const (
	JWTTokenExpire = 24 * time.Hour

	// generatedEmailDomain домен email, который выдается участнику без собственного адреса.
	generatedEmailDomain = "adashi.local"
	minPhoneDigits       = 7
	searchLimit          = 50
)

type AccountService struct {
	uow            uow.UOW
	userRepo       UserRepository
	hasher         PasswordHasher
	jwtTokenSecret []byte
}

func NewAccountService(u uow.UOW, jwtTokenSecret []byte, hasher PasswordHasher) (*AccountService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &AccountService{
		uow:            u,
		userRepo:       userRepo,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type LoginArgs struct {
	// Login email или номер телефона.
	Login    string
	Password string
}

// Login ищет юзера по email или телефону и проверяет пароль. Возвращает юзера и jwt токен с его ролью.
// Неизвестный логин - domain.ErrRecordNotFound, неверный пароль - domain.ErrPasswordMissMatch.
func (s *AccountService) Login(ctx context.Context, args LoginArgs) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByLogin(ctx, args.Login)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !s.hasher.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, "", fmt.Errorf("login: %w", domain.ErrPasswordMissMatch)
	}

	token, err := tokens.GenerateUserJWT(user.ID, user.Role, JWTTokenExpire, s.jwtTokenSecret)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return user, token, nil
}

type CreateMemberArgs struct {
	FullName       string
	PhoneNumber    string
	AltPhoneNumber string
	HomeAddress    string
	// Email пустой - генерируется из цифр телефона.
	Email string
	// Password пустой - используется номер телефона.
	Password string
}

// Credentials данные для первого входа, которые админ передает участнику.
type Credentials struct {
	Login    string
	Password string
}

// CreateMember регистрирует участника от имени админа.
func (s *AccountService) CreateMember(
	ctx context.Context,
	actor domain.Actor,
	args CreateMemberArgs,
) (*domain.User, *Credentials, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, fmt.Errorf("creating member: %w", err)
	}

	fullName := strings.TrimSpace(args.FullName)
	phone := strings.TrimSpace(args.PhoneNumber)
	digits := phoneDigits(phone)
	if fullName == "" {
		return nil, nil, fmt.Errorf("creating member: %w", domain.NewValidationError("full name is required"))
	}
	if len(digits) < minPhoneDigits {
		return nil, nil, fmt.Errorf("creating member: %w",
			domain.NewValidationError("phone number must contain at least %d digits", minPhoneDigits))
	}

	email := strings.ToLower(strings.TrimSpace(args.Email))
	if email == "" {
		email = digits + "@" + generatedEmailDomain
	}
	password := args.Password
	if password == "" {
		password = phone
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("creating member: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, repoargs.CreateUser{
		Email:             email,
		FullName:          fullName,
		PhoneNumber:       phone,
		AltPhoneNumber:    strings.TrimSpace(args.AltPhoneNumber),
		HomeAddress:       strings.TrimSpace(args.HomeAddress),
		Role:              domain.RoleMember,
		EncryptedPassword: hash,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating member: %w", err)
	}
	return user, &Credentials{Login: email, Password: password}, nil
}

// SearchMembers участники, у которых имя, телефон или email содержат query.
func (s *AccountService) SearchMembers(ctx context.Context, actor domain.Actor, query string) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("searching members: %w", err)
	}
	users, err := s.userRepo.Search(ctx, query, domain.RoleMember, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("searching members: %w", err)
	}
	return users, nil
}

type EnsureAdminArgs struct {
	Email       string
	PhoneNumber string
	Password    string
}

// EnsureAdmin создает администратора при первом запуске. Если юзер с таким email уже есть, ничего не
// меняется. Возвращает true, если админ был создан.
func (s *AccountService) EnsureAdmin(ctx context.Context, args EnsureAdminArgs) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(args.Email))
	if email == "" || args.Password == "" {
		return false, fmt.Errorf("ensure admin: %w", domain.NewValidationError("email and password are required"))
	}

	_, err := s.userRepo.FindUserByLogin(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return false, fmt.Errorf("ensure admin: %w", err)
	}

	phone := strings.TrimSpace(args.PhoneNumber)
	if phone == "" {
		// телефон уникален и обязателен, у админа без телефона его роль играет email.
		phone = email
	}

	hash, err := s.hasher.HashPassword(args.Password)
	if err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	if _, err = s.userRepo.CreateUser(ctx, repoargs.CreateUser{
		Email:             email,
		FullName:          "Administrator",
		PhoneNumber:       phone,
		Role:              domain.RoleAdmin,
		EncryptedPassword: hash,
	}); err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	return true, nil
}

func phoneDigits(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

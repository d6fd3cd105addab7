package pgrepo

import (
	"context"
	"strings"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, created_at, updated_at, email, full_name, phone_number, alt_phone_number, home_address,
	role, encrypted_password`

type UserRepository struct {
	conn DBTX
}

func NewUserRepository(conn DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser создает юзера. При конфликте email или телефона возвращает domain.ErrDuplicateKey.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `
		INSERT INTO users (email, full_name, phone_number, alt_phone_number, home_address, role, encrypted_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		user.Email,
		user.FullName,
		user.PhoneNumber,
		user.AltPhoneNumber,
		user.HomeAddress,
		user.Role,
		user.EncryptedPassword,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return dbUser, nil
}

// FindUserByLogin ищет юзера по email (без учета регистра) или номеру телефона.
func (u *UserRepository) FindUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1) OR phone_number = $1
		LIMIT 1`,
		strings.TrimSpace(login),
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by login %s", login)
	}
	return dbUser, nil
}

func (u *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %s", id)
	}
	return dbUser, nil
}

// Search возвращает юзеров с ролью role, у которых имя, телефон или email содержат query. Пустой query
// возвращает всех. Сортировка по имени.
func (u *UserRepository) Search(
	ctx context.Context,
	query string,
	role domain.RoleType,
	limit uint,
) ([]domain.User, error) {
	rows, err := u.conn.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1
		  AND ($2 = '' OR full_name ILIKE '%' || $2 || '%' OR phone_number ILIKE '%' || $2 || '%'
		       OR email ILIKE '%' || $2 || '%')
		ORDER BY full_name, created_at
		LIMIT $3`,
		role,
		strings.TrimSpace(query),
		int64(limit),
	)
	if err != nil {
		return nil, convertErr(err, "searching users")
	}
	users, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		dbUser, scanErr := scanUser(row)
		if scanErr != nil {
			return domain.User{}, scanErr
		}
		return *dbUser, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "searching users")
	}
	return users, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Email,
		&user.FullName,
		&user.PhoneNumber,
		&user.AltPhoneNumber,
		&user.HomeAddress,
		&user.Role,
		&user.EncryptedPassword,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}

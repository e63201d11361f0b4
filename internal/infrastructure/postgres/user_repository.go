package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo UserRepository over PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the user adapter. Pass a pool or a tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, firstname, lastname, email, password_hash, role, street, city, postcode,
	payment_method, status, reset_token_hash, reset_token_expires_at, created_at, updated_at`

// Create persists a new user.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Firstname, user.Lastname, user.Email, user.PasswordHash, user.Role,
		user.Address.Street, user.Address.City, user.Address.Postcode,
		user.PaymentMethod, user.Status, nullIfEmpty(user.ResetTokenHash), user.ResetTokenExpiresAt,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the user or nil.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail returns the user with that email (case-insensitive) or nil.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByResetToken returns the user whose unexpired reset token hash matches.
func (r *UserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1 AND reset_token_expires_at > $2`
	u, err := scanUser(r.q.QueryRow(ctx, query, tokenHash, now))
	if err != nil {
		return nil, fmt.Errorf("get user by reset token: %w", err)
	}
	return u, nil
}

// Update overwrites every mutable column.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET firstname = $2, lastname = $3, email = $4, password_hash = $5, role = $6,
			street = $7, city = $8, postcode = $9, payment_method = $10, status = $11,
			reset_token_hash = $12, reset_token_expires_at = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Firstname, user.Lastname, user.Email, user.PasswordHash, user.Role,
		user.Address.Street, user.Address.City, user.Address.Postcode, user.PaymentMethod, user.Status,
		nullIfEmpty(user.ResetTokenHash), user.ResetTokenExpiresAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByRole returns users of a role, newest first.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete removes a user. Users that still own orders cannot be deleted (ErrConflict).
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// scanUser scans one row; pgx.ErrNoRows yields (nil, nil).
func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		tokenHash *string
	)
	err := row.Scan(
		&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash, &u.Role,
		&u.Address.Street, &u.Address.City, &u.Address.Postcode,
		&u.PaymentMethod, &u.Status, &tokenHash, &u.ResetTokenExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.ResetTokenHash = derefString(tokenHash)
	return &u, nil
}

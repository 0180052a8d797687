package repository

import (
	"context"
	"errors"
	"time"

	"go-gin-comedy-tickets/internal/model"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByRoles(ctx context.Context, roles []model.Role) ([]*model.User, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, user *model.User) (*model.User, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.User, error)
	UpdateRole(ctx context.Context, tx pgx.Tx, id int, role model.Role) (*model.User, error)
	CreateApproval(ctx context.Context, tx pgx.Tx, approval *model.RoleApproval) (*model.RoleApproval, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, email, role)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, role, created_at, updated_at
	`
	created, err := scanUser(tx.QueryRow(ctx, query, user.Name, user.Email, user.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
		FOR UPDATE
	`
	return scanUser(tx.QueryRow(ctx, query, id))
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepositoryImpl) ListByRoles(ctx context.Context, roles []model.Role) ([]*model.User, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE role = ANY($1)
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, tx pgx.Tx, id int, role model.Role) (*model.User, error) {
	query := `
		UPDATE users
		SET role = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, name, email, role, created_at, updated_at
	`
	return scanUser(tx.QueryRow(ctx, query, role, time.Now().UTC(), id))
}

func (r *UserRepositoryImpl) CreateApproval(ctx context.Context, tx pgx.Tx, approval *model.RoleApproval) (*model.RoleApproval, error) {
	query := `
		INSERT INTO role_approvals (user_id, status, decided_by, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, status, decided_by, decided_at, note
	`
	var created model.RoleApproval
	err := tx.QueryRow(ctx, query,
		approval.UserID, approval.Status, approval.DecidedBy, approval.Note,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Status,
		&created.DecidedBy,
		&created.DecidedAt,
		&created.Note,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

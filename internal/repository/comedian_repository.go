package repository

import (
	"context"
	"errors"
	"fmt"

	"go-gin-comedy-tickets/internal/model"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComedianRepository 喜劇演員資料與節目演出陣容（show_comedians）
type ComedianRepository interface {
	FindByUserID(ctx context.Context, userID int) (*model.ComedianProfile, error)
	ListIDsByShowID(ctx context.Context, showID int) ([]int, error)

	// Transaction methods
	CreateProfile(ctx context.Context, tx pgx.Tx, profile *model.ComedianProfile) (*model.ComedianProfile, error)
	CountExisting(ctx context.Context, tx pgx.Tx, ids []int) (int, error)
	ReplaceLineup(ctx context.Context, tx pgx.Tx, showID int, comedianIDs []int) error
	ListIDsByShowIDTx(ctx context.Context, tx pgx.Tx, showID int) ([]int, error)
}

type ComedianRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewComedianRepository(pool *pgxpool.Pool) ComedianRepository {
	return &ComedianRepositoryImpl{
		pool: pool,
	}
}

func (r *ComedianRepositoryImpl) CreateProfile(ctx context.Context, tx pgx.Tx, profile *model.ComedianProfile) (*model.ComedianProfile, error) {
	query := `
		INSERT INTO comedian_profiles (user_id, stage_name, bio)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, stage_name, bio, created_at
	`
	var created model.ComedianProfile
	err := tx.QueryRow(ctx, query, profile.UserID, profile.StageName, profile.Bio).Scan(
		&created.ID,
		&created.UserID,
		&created.StageName,
		&created.Bio,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comedian profile: %w", err)
	}
	return &created, nil
}

func (r *ComedianRepositoryImpl) FindByUserID(ctx context.Context, userID int) (*model.ComedianProfile, error) {
	query := `
		SELECT id, user_id, stage_name, bio, created_at
		FROM comedian_profiles
		WHERE user_id = $1
	`
	var profile model.ComedianProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.StageName,
		&profile.Bio,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrComedianNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ComedianRepositoryImpl) CountExisting(ctx context.Context, tx pgx.Tx, ids []int) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM comedian_profiles WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanIDs(rows pgx.Rows) ([]int, error) {
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

const lineupQuery = `
		SELECT comedian_id
		FROM show_comedians
		WHERE show_id = $1
		ORDER BY position ASC, comedian_id ASC
	`

func (r *ComedianRepositoryImpl) ListIDsByShowID(ctx context.Context, showID int) ([]int, error) {
	rows, err := r.pool.Query(ctx, lineupQuery, showID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

func (r *ComedianRepositoryImpl) ListIDsByShowIDTx(ctx context.Context, tx pgx.Tx, showID int) ([]int, error) {
	rows, err := tx.Query(ctx, lineupQuery, showID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

// ReplaceLineup 以 comedianIDs 的順序作為演出順序，整批取代
func (r *ComedianRepositoryImpl) ReplaceLineup(ctx context.Context, tx pgx.Tx, showID int, comedianIDs []int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM show_comedians WHERE show_id = $1`, showID); err != nil {
		return fmt.Errorf("failed to clear lineup: %w", err)
	}

	if len(comedianIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for position, comedianID := range comedianIDs {
		batch.Queue(`
			INSERT INTO show_comedians (show_id, comedian_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (show_id, comedian_id) DO NOTHING
		`, showID, comedianID, position)
	}

	results := tx.SendBatch(ctx, batch)
	for range comedianIDs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert lineup: %w", err)
		}
	}
	return results.Close()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-comedy-tickets/internal/model"
	apperrors "go-gin-comedy-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const showColumns = `id, show_id, title, description, date, venue, map_link,
		ticket_price, total_tickets, poster_url, media_links, is_published,
		is_disbursed, custom_platform_fee, created_by, created_at, updated_at, disbursed_at`

type ShowRepository interface {
	FindByID(ctx context.Context, id int) (*model.Show, error)
	FindByShowID(ctx context.Context, showID uuid.UUID) (*model.Show, error)
	List(ctx context.Context, filter model.ShowFilter, params model.ListShowsParams) ([]*model.Show, error)
	SetCustomPlatformFee(ctx context.Context, id int, percent *int) (*model.Show, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, show *model.Show) (*model.Show, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateShowParams) (*model.Show, error)
	SetPublished(ctx context.Context, tx pgx.Tx, id int, published bool) (*model.Show, error)
	MarkDisbursed(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error)
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}

type ShowRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShowRepository(pool *pgxpool.Pool) ShowRepository {
	return &ShowRepositoryImpl{
		pool: pool,
	}
}

func scanShow(row pgx.Row) (*model.Show, error) {
	var show model.Show
	err := row.Scan(
		&show.ID,
		&show.ShowID,
		&show.Title,
		&show.Description,
		&show.Date,
		&show.Venue,
		&show.MapLink,
		&show.TicketPrice,
		&show.TotalTickets,
		&show.PosterURL,
		&show.MediaLinks,
		&show.IsPublished,
		&show.IsDisbursed,
		&show.CustomPlatformFee,
		&show.CreatedBy,
		&show.CreatedAt,
		&show.UpdatedAt,
		&show.DisbursedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShowNotFound
		}
		return nil, err
	}
	return &show, nil
}

func (r *ShowRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, show *model.Show) (*model.Show, error) {
	if show.MediaLinks == nil {
		show.MediaLinks = []string{}
	}
	query := `
		INSERT INTO shows (
			show_id, title, description, date, venue, map_link,
			ticket_price, total_tickets, poster_url, media_links, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + showColumns

	created, err := scanShow(tx.QueryRow(ctx, query,
		show.ShowID, show.Title, show.Description, show.Date, show.Venue, show.MapLink,
		show.TicketPrice, show.TotalTickets, show.PosterURL, show.MediaLinks, show.CreatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create show: %w", err)
	}
	return created, nil
}

func (r *ShowRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE id = $1`
	return scanShow(r.pool.QueryRow(ctx, query, id))
}

func (r *ShowRepositoryImpl) FindByShowID(ctx context.Context, showID uuid.UUID) (*model.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE show_id = $1`
	return scanShow(r.pool.QueryRow(ctx, query, showID))
}

func (r *ShowRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE id = $1 FOR UPDATE`
	return scanShow(tx.QueryRow(ctx, query, id))
}

// buildShowWhere 將可見性條件轉成 WHERE 子句，回傳子句、參數與下一個參數位置
func buildShowWhere(filter model.ShowFilter, search string) (string, []interface{}, int) {
	conds := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.CreatedBy != nil {
		conds = append(conds, fmt.Sprintf("created_by = $%d", argPos))
		args = append(args, *filter.CreatedBy)
		argPos++
	}

	if filter.PublishedOnly {
		conds = append(conds, "is_published = TRUE")
	}

	if filter.PublishedOrCreatedBy != nil {
		conds = append(conds, fmt.Sprintf("(is_published = TRUE OR created_by = $%d)", argPos))
		args = append(args, *filter.PublishedOrCreatedBy)
		argPos++
	}

	if filter.From != nil {
		conds = append(conds, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}

	if search = strings.TrimSpace(search); search != "" {
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+search+"%")
		argPos++
	}

	if len(conds) == 0 {
		return "", args, argPos
	}
	return "WHERE " + strings.Join(conds, " AND "), args, argPos
}

func (r *ShowRepositoryImpl) List(ctx context.Context, filter model.ShowFilter, params model.ListShowsParams) ([]*model.Show, error) {
	params = params.Normalize()
	where, args, argPos := buildShowWhere(filter, params.Search)
	args = append(args, params.Limit, params.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shows
		%s
		ORDER BY date ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, showColumns, where, argPos, argPos+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]*model.Show, 0)
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func (r *ShowRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateShowParams) (*model.Show, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Date != nil {
		add("date", *params.Date)
	}
	if params.Venue != nil {
		add("venue", *params.Venue)
	}
	if params.MapLink != nil {
		add("map_link", *params.MapLink)
	}
	if params.TicketPrice != nil {
		add("ticket_price", *params.TicketPrice)
	}
	if params.TotalTickets != nil {
		add("total_tickets", *params.TotalTickets)
	}
	if params.PosterURL != nil {
		add("poster_url", *params.PosterURL)
	}
	if params.MediaLinks != nil {
		add("media_links", params.MediaLinks)
	}

	// 只改演出陣容時，仍需更新 updated_at 並回傳最新資料
	add("updated_at", time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE shows
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, showColumns)

	return scanShow(tx.QueryRow(ctx, query, args...))
}

func (r *ShowRepositoryImpl) SetPublished(ctx context.Context, tx pgx.Tx, id int, published bool) (*model.Show, error) {
	query := `
		UPDATE shows
		SET is_published = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + showColumns
	return scanShow(tx.QueryRow(ctx, query, published, time.Now().UTC(), id))
}

func (r *ShowRepositoryImpl) SetCustomPlatformFee(ctx context.Context, id int, percent *int) (*model.Show, error) {
	query := `
		UPDATE shows
		SET custom_platform_fee = $1, updated_at = $2
		WHERE id = $3 AND is_disbursed = FALSE
		RETURNING ` + showColumns

	show, err := scanShow(r.pool.QueryRow(ctx, query, percent, time.Now().UTC(), id))
	if errors.Is(err, apperrors.ErrShowNotFound) {
		// 區分節目不存在與已撥款
		if _, findErr := r.FindByID(ctx, id); findErr == nil {
			return nil, apperrors.ErrShowDisbursed
		}
	}
	return show, err
}

func (r *ShowRepositoryImpl) MarkDisbursed(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error) {
	now := time.Now().UTC()
	query := `
		UPDATE shows
		SET is_disbursed = TRUE, disbursed_at = $1, updated_at = $2
		WHERE id = $3 AND is_disbursed = FALSE
		RETURNING ` + showColumns

	show, err := scanShow(tx.QueryRow(ctx, query, now, now, id))
	if errors.Is(err, apperrors.ErrShowNotFound) {
		return nil, apperrors.ErrShowDisbursed
	}
	return show, err
}

// Delete 刪除節目，庫存與演出陣容由外鍵 ON DELETE CASCADE 一併移除
func (r *ShowRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	result, err := tx.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrShowNotFound
	}

	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
)

type PostingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

func (r *PostingRepository) Create(ctx context.Context, record posting.Posting) (*posting.Posting, error) {
	record.ID = common.NewUUID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO postings (id, company, role, category, classification, eligible_courses, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.Company, record.Role, record.Category, record.Classification,
		pq.Array(record.EligibleCourses), record.Status, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create posting", err)
	}
	return &record, nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, company, role, category, classification, eligible_courses, status, created_at, updated_at
		FROM postings WHERE id = $1`, id)
	var record posting.Posting
	if err := row.Scan(&record.ID, &record.Company, &record.Role, &record.Category, &record.Classification,
		pq.Array(&record.EligibleCourses), &record.Status, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load posting", err)
	}
	return &record, nil
}

func (r *PostingRepository) ListOpen(ctx context.Context, limit, offset int) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, company, role, category, classification, eligible_courses, status, created_at, updated_at
		FROM postings WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, posting.StatusOpen, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list postings", err)
	}
	defer rows.Close()
	var items []posting.Posting
	for rows.Next() {
		var record posting.Posting
		if err := rows.Scan(&record.ID, &record.Company, &record.Role, &record.Category, &record.Classification,
			pq.Array(&record.EligibleCourses), &record.Status, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan posting", err)
		}
		items = append(items, record)
	}
	return items, nil
}

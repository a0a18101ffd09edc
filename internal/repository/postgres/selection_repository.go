package postgres

import (
	"context"
	"database/sql"

	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
	"tpcell/internal/domain/selection"
)

type SelectionRepository struct {
	db *sql.DB
}

func NewSelectionRepository(db *sql.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) ListSelectedRolls(ctx context.Context, filter selection.PostingFilter) ([]selection.SelectedRoll, error) {
	// RequireTier excludes the 'none' sentinel; passed as a parameter so both
	// shapes share one statement.
	rows, err := r.db.QueryContext(ctx, `SELECT st.roll, p.classification
		FROM selections s
		JOIN postings p ON p.id = s.posting_id
		JOIN students st ON st.id = s.student_id
		WHERE s.status = $1 AND p.category = $2 AND ($3 = FALSE OR p.classification <> $4)`,
		selection.StatusSelected, filter.Category, filter.RequireTier, posting.ClassificationNone)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list selected rolls", err)
	}
	defer rows.Close()
	var items []selection.SelectedRoll
	for rows.Next() {
		var item selection.SelectedRoll
		if err := rows.Scan(&item.Roll, &item.Classification); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan selected roll", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *SelectionRepository) ExistsSelected(ctx context.Context, studentID common.UUID, filter selection.PostingFilter) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM selections s
		JOIN postings p ON p.id = s.posting_id
		WHERE s.student_id = $1 AND s.status = $2 AND p.category = $3 AND ($4 = FALSE OR p.classification <> $5)
	)`, studentID, selection.StatusSelected, filter.Category, filter.RequireTier, posting.ClassificationNone)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check selections", err)
	}
	return exists, nil
}

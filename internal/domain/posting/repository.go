package posting

import (
	"context"

	"tpcell/internal/common"
)

type Repository interface {
	Create(ctx context.Context, record Posting) (*Posting, error)
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	ListOpen(ctx context.Context, limit, offset int) ([]Posting, error)
}

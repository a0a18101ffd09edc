package app

import (
	"context"
	"strings"

	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
)

type PostingService struct {
	postings posting.Repository
}

func NewPostingService(postings posting.Repository) *PostingService {
	return &PostingService{postings: postings}
}

func (s *PostingService) Get(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	return s.postings.GetByID(ctx, id)
}

func (s *PostingService) ListOpen(ctx context.Context, limit, offset int) ([]posting.Posting, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.postings.ListOpen(ctx, limit, offset)
}

func (s *PostingService) Create(ctx context.Context, record posting.Posting) (*posting.Posting, error) {
	if strings.TrimSpace(record.Company) == "" {
		return nil, common.NewValidationError("company is required", map[string]string{"company": "required"})
	}
	switch record.Category {
	case posting.CategoryFTE, posting.CategoryIntern2, posting.CategoryIntern6:
	default:
		return nil, common.NewValidationError("invalid category", map[string]string{"category": "must be FTE, Internship (2 Month) or Internship (6 Month)"})
	}
	switch record.Classification {
	case posting.ClassificationNone, posting.ClassificationTier1, posting.ClassificationTier2, posting.ClassificationTier3:
	case "":
		record.Classification = posting.ClassificationNone
	default:
		return nil, common.NewValidationError("invalid classification", map[string]string{"classification": "must be Tier1, Tier2, Tier3 or none"})
	}
	if record.Status == "" {
		record.Status = posting.StatusOpen
	}
	return s.postings.Create(ctx, record)
}

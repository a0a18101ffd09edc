package app

import (
	"context"
	"sync"
	"testing"

	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
)

type fakePostingRepo struct {
	mu       sync.Mutex
	postings []posting.Posting

	lastLimit  int
	lastOffset int
}

func (r *fakePostingRepo) Create(ctx context.Context, record posting.Posting) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = common.NewUUID()
	r.postings = append(r.postings, record)
	copied := record
	return &copied, nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.postings {
		if record.ID == id {
			copied := record
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
}

func (r *fakePostingRepo) ListOpen(ctx context.Context, limit, offset int) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	r.lastOffset = offset
	var open []posting.Posting
	for _, record := range r.postings {
		if record.Status == posting.StatusOpen {
			open = append(open, record)
		}
	}
	return open, nil
}

func TestPostingCreateDefaults(t *testing.T) {
	repo := &fakePostingRepo{}
	svc := NewPostingService(repo)

	created, err := svc.Create(context.Background(), posting.Posting{
		Company:  "Acme",
		Category: posting.CategoryIntern2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Classification != posting.ClassificationNone {
		t.Fatalf("expected classification defaulted to none, got %s", created.Classification)
	}
	if created.Status != posting.StatusOpen {
		t.Fatalf("expected status defaulted to open, got %s", created.Status)
	}
}

func TestPostingCreateValidation(t *testing.T) {
	svc := NewPostingService(&fakePostingRepo{})

	if _, err := svc.Create(context.Background(), posting.Posting{Category: posting.CategoryFTE}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for missing company, got %v", err)
	}
	if _, err := svc.Create(context.Background(), posting.Posting{Company: "Acme", Category: "Contract"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
	if _, err := svc.Create(context.Background(), posting.Posting{Company: "Acme", Category: posting.CategoryFTE, Classification: "Tier4"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown classification, got %v", err)
	}
}

func TestPostingGet(t *testing.T) {
	repo := &fakePostingRepo{}
	svc := NewPostingService(repo)
	created, err := svc.Create(context.Background(), posting.Posting{Company: "Acme", Category: posting.CategoryFTE})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Company != "Acme" {
		t.Fatalf("unexpected posting: %+v", got)
	}
	if _, err := svc.Get(context.Background(), common.NewUUID()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostingListClampsPagination(t *testing.T) {
	repo := &fakePostingRepo{}
	svc := NewPostingService(repo)

	if _, err := svc.ListOpen(context.Background(), 0, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 50 || repo.lastOffset != 0 {
		t.Fatalf("expected clamped defaults 50/0, got %d/%d", repo.lastLimit, repo.lastOffset)
	}
	if _, err := svc.ListOpen(context.Background(), 500, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 50 || repo.lastOffset != 10 {
		t.Fatalf("expected oversized limit clamped to 50, got %d/%d", repo.lastLimit, repo.lastOffset)
	}
}

package selection

import (
	"context"
	"time"

	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusSelected    Status = "selected"
	StatusRejected    Status = "rejected"
)

// Event links one student to one posting. Rows are written by the selection
// workflow elsewhere; this service only reads them.
type Event struct {
	ID        common.UUID `json:"id"`
	StudentID common.UUID `json:"student_id"`
	PostingID common.UUID `json:"posting_id"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PostingFilter narrows selected events by the posting they were recorded
// against. RequireTier excludes the ClassificationNone sentinel, which is how
// the placement dimension rejects internship-conversion postings.
type PostingFilter struct {
	Category    posting.Category
	RequireTier bool
}

// SelectedRoll is one qualifying identity plus the posting's tier label, which
// the placement report buckets by.
type SelectedRoll struct {
	Roll           string
	Classification posting.Classification
}

type Repository interface {
	// ListSelectedRolls returns the rolls of every student with a selected
	// event against a posting matching the filter.
	ListSelectedRolls(ctx context.Context, filter PostingFilter) ([]SelectedRoll, error)
	// ExistsSelected reports whether one student has any such event.
	ExistsSelected(ctx context.Context, studentID common.UUID, filter PostingFilter) (bool, error)
}

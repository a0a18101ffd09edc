package student

import (
	"context"
	"time"
)

// OfferFlag names one of the boolean off-campus offer columns.
type OfferFlag string

const (
	FlagInternship2 OfferFlag = "internship_status_2"
	FlagInternship6 OfferFlag = "internship_status_6"
	FlagFTE         OfferFlag = "fte_status"
)

type Repository interface {
	Create(ctx context.Context, record Student) (*Student, error)
	GetByRoll(ctx context.Context, roll string) (*Student, error)
	GetSummaryByRoll(ctx context.Context, roll string) (*Summary, error)
	FindByEmail(ctx context.Context, email string) (*Student, error)
	// UpdateFields applies a column→value patch to one record. A nil value
	// clears the column; the media detach step relies on that.
	UpdateFields(ctx context.Context, roll string, fields map[string]any) (*Student, error)
	SetPlacedStatus(ctx context.Context, roll string, status PlacedStatus, updatedAt time.Time) error
	// ListPlaced returns rolls whose placed_status is one of the tier
	// values, together with the stored status.
	ListPlaced(ctx context.Context) ([]PlacedRoll, error)
	// ListWithOfferFlag returns rolls whose given offer flag is set.
	ListWithOfferFlag(ctx context.Context, flag OfferFlag) ([]string, error)
}

type PlacedRoll struct {
	Roll   string
	Status PlacedStatus
}

package posting

import (
	"time"

	"tpcell/internal/common"
)

type Category string

const (
	CategoryFTE     Category = "FTE"
	CategoryIntern2 Category = "Internship (2 Month)"
	CategoryIntern6 Category = "Internship (6 Month)"
)

// Classification is the tier label of an on-campus FTE posting. The sentinel
// ClassificationNone marks postings outside the tier scheme, e.g. internships
// or conversion-path offers.
type Classification string

const (
	ClassificationNone  Classification = "none"
	ClassificationTier1 Classification = "Tier1"
	ClassificationTier2 Classification = "Tier2"
	ClassificationTier3 Classification = "Tier3"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Posting struct {
	ID              common.UUID    `json:"id"`
	Company         string         `json:"company"`
	Role            string         `json:"role"`
	Category        Category       `json:"category"`
	Classification  Classification `json:"classification"`
	EligibleCourses []string       `json:"eligible_courses"`
	Status          Status         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

package app

import (
	"context"
	"strings"
	"time"

	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
	"tpcell/internal/domain/selection"
	"tpcell/internal/domain/student"
)

// StatusService reconciles two signals: selected events against postings
// (on-campus) and the flags stored on the profile (off-campus). Both are
// read-only here; a torn snapshot across the two queries is accepted.
type StatusService struct {
	students   student.Repository
	selections selection.Repository
}

func NewStatusService(students student.Repository, selections selection.Repository) *StatusService {
	return &StatusService{students: students, selections: selections}
}

// placementFilter admits only tier-labelled FTE postings: a selection against
// a ClassificationNone posting does not count as an on-campus placement.
var placementFilter = selection.PostingFilter{Category: posting.CategoryFTE, RequireTier: true}

type offerDimension struct {
	filter  selection.PostingFilter
	flag    student.OfferFlag
	flagSet func(*student.Student) bool
}

var (
	intern2Dimension = offerDimension{
		filter:  selection.PostingFilter{Category: posting.CategoryIntern2},
		flag:    student.FlagInternship2,
		flagSet: func(s *student.Student) bool { return s.InternshipStatus2 },
	}
	intern6Dimension = offerDimension{
		filter:  selection.PostingFilter{Category: posting.CategoryIntern6},
		flag:    student.FlagInternship6,
		flagSet: func(s *student.Student) bool { return s.InternshipStatus6 },
	}
	fteDimension = offerDimension{
		filter:  selection.PostingFilter{Category: posting.CategoryFTE},
		flag:    student.FlagFTE,
		flagSet: func(s *student.Student) bool { return s.FTEStatus },
	}
)

// PlacedForRoll reports whether one student is placed. A stored tier wins
// without touching the event store; anything else falls through to the
// on-campus query.
func (s *StatusService) PlacedForRoll(ctx context.Context, roll string) (bool, error) {
	record, err := s.students.GetByRoll(ctx, roll)
	if err != nil {
		return false, err
	}
	if record.PlacedStatus.IsPlaced() {
		return true, nil
	}
	return s.selections.ExistsSelected(ctx, record.ID, placementFilter)
}

// PlacedReport buckets placed rolls by tier, unioning the posting's tier
// label (on-campus) with the stored status (off-campus), deduped per bucket.
type PlacedReport struct {
	Tier1 []string `json:"placed_tier1"`
	Tier2 []string `json:"placed_tier2"`
	Tier3 []string `json:"placed_tier3"`
}

func (s *StatusService) PlacedReportAll(ctx context.Context) (*PlacedReport, error) {
	selected, err := s.selections.ListSelectedRolls(ctx, placementFilter)
	if err != nil {
		return nil, err
	}
	placed, err := s.students.ListPlaced(ctx)
	if err != nil {
		return nil, err
	}
	report := &PlacedReport{
		Tier1: make([]string, 0),
		Tier2: make([]string, 0),
		Tier3: make([]string, 0),
	}
	seen := make(map[*[]string]map[string]bool)
	appendRoll := func(bucket *[]string, roll string) {
		if seen[bucket] == nil {
			seen[bucket] = make(map[string]bool)
		}
		if seen[bucket][roll] {
			return
		}
		seen[bucket][roll] = true
		*bucket = append(*bucket, roll)
	}
	for _, row := range selected {
		switch row.Classification {
		case posting.ClassificationTier1:
			appendRoll(&report.Tier1, row.Roll)
		case posting.ClassificationTier2:
			appendRoll(&report.Tier2, row.Roll)
		case posting.ClassificationTier3:
			appendRoll(&report.Tier3, row.Roll)
		}
	}
	for _, row := range placed {
		switch row.Status {
		case student.PlacedTier1:
			appendRoll(&report.Tier1, row.Roll)
		case student.PlacedTier2:
			appendRoll(&report.Tier2, row.Roll)
		case student.PlacedTier3:
			appendRoll(&report.Tier3, row.Roll)
		}
	}
	return report, nil
}

func (s *StatusService) Intern2ForRoll(ctx context.Context, roll string) (bool, error) {
	return s.offerForRoll(ctx, roll, intern2Dimension)
}

func (s *StatusService) Intern6ForRoll(ctx context.Context, roll string) (bool, error) {
	return s.offerForRoll(ctx, roll, intern6Dimension)
}

func (s *StatusService) FTEForRoll(ctx context.Context, roll string) (bool, error) {
	return s.offerForRoll(ctx, roll, fteDimension)
}

func (s *StatusService) Intern2Rolls(ctx context.Context) ([]string, error) {
	return s.offerRolls(ctx, intern2Dimension)
}

func (s *StatusService) Intern6Rolls(ctx context.Context) ([]string, error) {
	return s.offerRolls(ctx, intern6Dimension)
}

func (s *StatusService) FTERolls(ctx context.Context) ([]string, error) {
	return s.offerRolls(ctx, fteDimension)
}

func (s *StatusService) offerForRoll(ctx context.Context, roll string, dim offerDimension) (bool, error) {
	record, err := s.students.GetByRoll(ctx, roll)
	if err != nil {
		return false, err
	}
	if dim.flagSet(record) {
		return true, nil
	}
	return s.selections.ExistsSelected(ctx, record.ID, dim.filter)
}

// offerRolls is the all-rolls report: always both signals, unioned and
// deduplicated, never short-circuited per roll.
func (s *StatusService) offerRolls(ctx context.Context, dim offerDimension) ([]string, error) {
	selected, err := s.selections.ListSelectedRolls(ctx, dim.filter)
	if err != nil {
		return nil, err
	}
	flagged, err := s.students.ListWithOfferFlag(ctx, dim.flag)
	if err != nil {
		return nil, err
	}
	rolls := make([]string, 0, len(selected)+len(flagged))
	seen := make(map[string]bool, len(selected)+len(flagged))
	for _, row := range selected {
		if !seen[row.Roll] {
			seen[row.Roll] = true
			rolls = append(rolls, row.Roll)
		}
	}
	for _, roll := range flagged {
		if !seen[roll] {
			seen[roll] = true
			rolls = append(rolls, roll)
		}
	}
	return rolls, nil
}

// SetPlacedStatus is the administrative override for off-campus outcomes.
// The timestamp is stamped in the same update as the value.
func (s *StatusService) SetPlacedStatus(ctx context.Context, roll, status string) (student.PlacedStatus, error) {
	if strings.TrimSpace(roll) == "" || strings.TrimSpace(status) == "" {
		return "", common.NewValidationError("roll and placed_status are required", map[string]string{"roll": "required", "placed_status": "required"})
	}
	if !student.ValidPlacedStatus(status) {
		return "", common.NewValidationError("invalid placed_status", map[string]string{"placed_status": "must be one of unplaced, placed_tier1, placed_tier2, placed_tier3"})
	}
	value := student.PlacedStatus(status)
	if err := s.students.SetPlacedStatus(ctx, roll, value, time.Now().UTC()); err != nil {
		return "", err
	}
	return value, nil
}

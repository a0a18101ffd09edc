package student

import (
	"time"

	"tpcell/internal/common"
)

// ApprovalState is the profile's lifecycle stage. A profile is created as
// pending and moved to approved/rejected by a placement coordinator; it never
// moves back on its own.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

// PlacedStatus is the off-campus placement flag stored directly on the
// profile. On-campus placements are derived from selections instead.
type PlacedStatus string

const (
	Unplaced    PlacedStatus = "unplaced"
	PlacedTier1 PlacedStatus = "placed_tier1"
	PlacedTier2 PlacedStatus = "placed_tier2"
	PlacedTier3 PlacedStatus = "placed_tier3"
)

func ValidPlacedStatus(value string) bool {
	switch PlacedStatus(value) {
	case Unplaced, PlacedTier1, PlacedTier2, PlacedTier3:
		return true
	default:
		return false
	}
}

// IsPlaced reports whether the status records an off-campus placement. Only
// the three tier values count; the zero value is as unplaced as "unplaced".
func (s PlacedStatus) IsPlaced() bool {
	switch s {
	case PlacedTier1, PlacedTier2, PlacedTier3:
		return true
	default:
		return false
	}
}

type Student struct {
	ID                 common.UUID   `json:"id"`
	Roll               string        `json:"roll"`
	Name               string        `json:"name"`
	Gender             string        `json:"gender,omitempty"`
	DateOfBirth        string        `json:"date_of_birth,omitempty"`
	Category           string        `json:"category,omitempty"`
	Rank               string        `json:"rank,omitempty"`
	Course             string        `json:"course,omitempty"`
	Address            string        `json:"address,omitempty"`
	XMarks             string        `json:"X_marks,omitempty"`
	XIIMarks           string        `json:"XII_marks,omitempty"`
	UGCollege          string        `json:"ug_college,omitempty"`
	UGCPI              string        `json:"ug_cpi,omitempty"`
	InstituteEmail     string        `json:"institute_email_id,omitempty"`
	ResumeLink         string        `json:"resume_link,omitempty"`
	OtherAchievements  string        `json:"other_achievements,omitempty"`
	Projects           string        `json:"projects,omitempty"`
	TranscriptLink     string        `json:"transcript_link,omitempty"`
	CoverLetterLink    string        `json:"cover_letter_link,omitempty"`
	ProfilePic         string        `json:"profile_pic,omitempty"`
	Resume             string        `json:"resume,omitempty"`
	CasteCertificate   string        `json:"casteCertificate,omitempty"`
	TenthCertificate   string        `json:"tenthCertificate,omitempty"`
	TwelthCertificate  string        `json:"twelthCertificate,omitempty"`
	AadharCard         string        `json:"aadharCard,omitempty"`
	PanCard            string        `json:"panCard,omitempty"`
	DrivingLicence     string        `json:"drivingLicence,omitempty"`
	DisabilityCert     string        `json:"disabilityCertificate,omitempty"`
	AllSemMarksheet    string        `json:"allSemMarksheet,omitempty"`
	Approved           ApprovalState `json:"approved"`
	PlacedStatus       PlacedStatus  `json:"placed_status"`
	PlacedStatusAt     *time.Time    `json:"placed_status_updated,omitempty"`
	InternshipStatus2  bool          `json:"internship_status_2"`
	InternshipStatus6  bool          `json:"internship_status_6"`
	FTEStatus          bool          `json:"fte_status"`
	SPI1               *float64      `json:"spi_1,omitempty"`
	SPI2               *float64      `json:"spi_2,omitempty"`
	SPI3               *float64      `json:"spi_3,omitempty"`
	SPI4               *float64      `json:"spi_4,omitempty"`
	SPI5               *float64      `json:"spi_5,omitempty"`
	SPI6               *float64      `json:"spi_6,omitempty"`
	SPI7               *float64      `json:"spi_7,omitempty"`
	SPI8               *float64      `json:"spi_8,omitempty"`
	SPI9               *float64      `json:"spi_9,omitempty"`
	SPI10              *float64      `json:"spi_10,omitempty"`
	CPI                *float64      `json:"cpi,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// Summary is the projection the modify path needs before filtering: just
// enough to know which record to patch and which partition applies.
type Summary struct {
	ID       common.UUID
	Roll     string
	Approved ApprovalState
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tpcell/internal/common"
	"tpcell/internal/domain/student"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Patch keys arrive as wire field names; only names in this map ever reach
// the SET clause, so an arbitrary payload can never name a column directly.
var columnByField = map[string]string{
	"name":                  "name",
	"roll":                  "roll",
	"gender":                "gender",
	"date_of_birth":         "date_of_birth",
	"category":              "category",
	"rank":                  "rank",
	"course":                "course",
	"address":               "address",
	"X_marks":               "x_marks",
	"XII_marks":             "xii_marks",
	"ug_college":            "ug_college",
	"ug_cpi":                "ug_cpi",
	"resume_link":           "resume_link",
	"other_achievements":    "other_achievements",
	"projects":              "projects",
	"transcript_link":       "transcript_link",
	"cover_letter_link":     "cover_letter_link",
	"profile_pic":           "profile_pic",
	"spi_1":                 "spi_1",
	"spi_2":                 "spi_2",
	"spi_3":                 "spi_3",
	"spi_4":                 "spi_4",
	"spi_5":                 "spi_5",
	"spi_6":                 "spi_6",
	"spi_7":                 "spi_7",
	"spi_8":                 "spi_8",
	"spi_9":                 "spi_9",
	"spi_10":                "spi_10",
	"cpi":                   "cpi",
	"resume":                "resume",
	"casteCertificate":      "caste_certificate",
	"tenthCertificate":      "tenth_certificate",
	"twelthCertificate":     "twelth_certificate",
	"aadharCard":            "aadhar_card",
	"panCard":               "pan_card",
	"drivingLicence":        "driving_licence",
	"disabilityCertificate": "disability_certificate",
	"allSemMarksheet":       "all_sem_marksheet",
}

const studentColumns = `id, roll, name, gender, date_of_birth, category, rank, course, address,
	x_marks, xii_marks, ug_college, ug_cpi, institute_email_id,
	resume_link, other_achievements, projects, transcript_link, cover_letter_link, profile_pic,
	resume, caste_certificate, tenth_certificate, twelth_certificate, aadhar_card, pan_card,
	driving_licence, disability_certificate, all_sem_marksheet,
	approved, placed_status, placed_status_updated,
	internship_status_2, internship_status_6, fte_status,
	spi_1, spi_2, spi_3, spi_4, spi_5, spi_6, spi_7, spi_8, spi_9, spi_10, cpi,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*student.Student, error) {
	var record student.Student
	var placedAt sql.NullTime
	spi := make([]sql.NullFloat64, 11)
	if err := row.Scan(
		&record.ID, &record.Roll, &record.Name, &record.Gender, &record.DateOfBirth,
		&record.Category, &record.Rank, &record.Course, &record.Address,
		&record.XMarks, &record.XIIMarks, &record.UGCollege, &record.UGCPI, &record.InstituteEmail,
		&record.ResumeLink, &record.OtherAchievements, &record.Projects,
		&record.TranscriptLink, &record.CoverLetterLink, &record.ProfilePic,
		&record.Resume, &record.CasteCertificate, &record.TenthCertificate, &record.TwelthCertificate,
		&record.AadharCard, &record.PanCard, &record.DrivingLicence, &record.DisabilityCert, &record.AllSemMarksheet,
		&record.Approved, &record.PlacedStatus, &placedAt,
		&record.InternshipStatus2, &record.InternshipStatus6, &record.FTEStatus,
		&spi[0], &spi[1], &spi[2], &spi[3], &spi[4], &spi[5], &spi[6], &spi[7], &spi[8], &spi[9], &spi[10],
		&record.CreatedAt, &record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if placedAt.Valid {
		at := placedAt.Time
		record.PlacedStatusAt = &at
	}
	targets := []**float64{
		&record.SPI1, &record.SPI2, &record.SPI3, &record.SPI4, &record.SPI5,
		&record.SPI6, &record.SPI7, &record.SPI8, &record.SPI9, &record.SPI10, &record.CPI,
	}
	for i, target := range targets {
		if spi[i].Valid {
			value := spi[i].Float64
			*target = &value
		}
	}
	return &record, nil
}

func (r *StudentRepository) Create(ctx context.Context, record student.Student) (*student.Student, error) {
	record.ID = common.NewUUID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO students (id, roll, name, gender, date_of_birth, category, rank, course, address,
		x_marks, xii_marks, ug_college, ug_cpi, institute_email_id,
		resume_link, other_achievements, projects, transcript_link, cover_letter_link, profile_pic,
		approved, placed_status, internship_status_2, internship_status_6, fte_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
		record.ID, record.Roll, record.Name, record.Gender, record.DateOfBirth, record.Category, record.Rank,
		record.Course, record.Address, record.XMarks, record.XIIMarks, record.UGCollege, record.UGCPI,
		record.InstituteEmail, record.ResumeLink, record.OtherAchievements, record.Projects,
		record.TranscriptLink, record.CoverLetterLink, record.ProfilePic,
		record.Approved, record.PlacedStatus, record.InternshipStatus2, record.InternshipStatus6, record.FTEStatus,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "a profile with this roll already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create student", err)
	}
	return r.GetByRoll(ctx, record.Roll)
}

func (r *StudentRepository) GetByRoll(ctx context.Context, roll string) (*student.Student, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE roll = $1`, roll)
	record, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student", err)
	}
	return record, nil
}

func (r *StudentRepository) GetSummaryByRoll(ctx context.Context, roll string) (*student.Summary, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, roll, approved FROM students WHERE roll = $1`, roll)
	var summary student.Summary
	if err := row.Scan(&summary.ID, &summary.Roll, &summary.Approved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student", err)
	}
	return &summary, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE institute_email_id = $1`, email)
	record, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student", err)
	}
	return record, nil
}

func (r *StudentRepository) UpdateFields(ctx context.Context, roll string, fields map[string]any) (*student.Student, error) {
	assignments := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)
	position := 1
	for field, value := range fields {
		column, ok := columnByField[field]
		if !ok {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, position))
		args = append(args, value)
		position++
	}
	if len(assignments) == 0 {
		return r.GetByRoll(ctx, roll)
	}
	assignments = append(assignments, fmt.Sprintf("updated_at = $%d", position))
	args = append(args, time.Now().UTC())
	position++
	args = append(args, roll)
	query := `UPDATE students SET ` + strings.Join(assignments, ", ") + fmt.Sprintf(` WHERE roll = $%d`, position)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update student", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "student not found", sql.ErrNoRows)
	}
	return r.GetByRoll(ctx, roll)
}

func (r *StudentRepository) SetPlacedStatus(ctx context.Context, roll string, status student.PlacedStatus, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE students SET placed_status = $1, placed_status_updated = $2, updated_at = $2 WHERE roll = $3`,
		status, updatedAt, roll)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to set placed status", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "student not found", sql.ErrNoRows)
	}
	return nil
}

func (r *StudentRepository) ListPlaced(ctx context.Context) ([]student.PlacedRoll, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT roll, placed_status FROM students WHERE placed_status IN ($1, $2, $3)`,
		student.PlacedTier1, student.PlacedTier2, student.PlacedTier3)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list placed students", err)
	}
	defer rows.Close()
	var items []student.PlacedRoll
	for rows.Next() {
		var item student.PlacedRoll
		if err := rows.Scan(&item.Roll, &item.Status); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan placed student", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *StudentRepository) ListWithOfferFlag(ctx context.Context, flag student.OfferFlag) ([]string, error) {
	column, ok := offerFlagColumn(flag)
	if !ok {
		return nil, common.NewError(common.CodeInternal, "unknown offer flag", nil)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT roll FROM students WHERE `+column+` = TRUE`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students by offer flag", err)
	}
	defer rows.Close()
	var rolls []string
	for rows.Next() {
		var roll string
		if err := rows.Scan(&roll); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan roll", err)
		}
		rolls = append(rolls, roll)
	}
	return rolls, nil
}

func offerFlagColumn(flag student.OfferFlag) (string, bool) {
	switch flag {
	case student.FlagInternship2:
		return "internship_status_2", true
	case student.FlagInternship6:
		return "internship_status_6", true
	case student.FlagFTE:
		return "fte_status", true
	default:
		return "", false
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

package app

import (
	"context"
	"log/slog"
	"strings"

	"tpcell/internal/common"
	"tpcell/internal/domain/media"
	"tpcell/internal/domain/setting"
	"tpcell/internal/domain/student"
)

// Media-bearing profile columns. Attachments under any other form key are
// ignored.
var mediaFields = []string{
	"resume",
	"profile_pic",
	"casteCertificate",
	"tenthCertificate",
	"twelthCertificate",
	"aadharCard",
	"panCard",
	"drivingLicence",
	"disabilityCertificate",
	"allSemMarksheet",
}

// resumeField is stored as "<roll>.pdf".
const resumeField = "resume"

type ProfileService struct {
	students student.Repository
	settings setting.Repository
	store    media.Store
	logger   *slog.Logger
}

func NewProfileService(students student.Repository, settings setting.Repository, store media.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{students: students, settings: settings, store: store, logger: logger}
}

func (s *ProfileService) Me(ctx context.Context, roll string) (*student.Student, error) {
	return s.students.GetByRoll(ctx, roll)
}

func (s *ProfileService) ProfilePicURL(ctx context.Context, email string) (string, error) {
	record, err := s.students.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return record.ProfilePic, nil
}

// Submit registers a new profile. Approval state and placement flags are
// always forced server-side.
func (s *ProfileService) Submit(ctx context.Context, roll string, record student.Student) (*student.Student, error) {
	policy, err := s.settings.Get(ctx)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load placement settings", err)
	}
	if !policy.RegistrationsAllowed {
		return nil, common.NewError(common.CodeValidation, "registrations are not allowed, contact the placement cell", nil)
	}
	if strings.TrimSpace(record.Roll) != roll {
		return nil, common.NewValidationError("roll does not match the signed-in user", map[string]string{"roll": "roll must match the authenticated roll number"})
	}

	record.Roll = roll
	record.Approved = student.ApprovalPending
	record.PlacedStatus = student.Unplaced
	record.PlacedStatusAt = nil
	record.InternshipStatus2 = false
	record.InternshipStatus6 = false
	record.FTEStatus = false

	return s.students.Create(ctx, record)
}

// Modify applies a self-service patch: the payload is filtered through the
// field access policy, attachments are replaced, and the merged patch lands
// in one update. The boolean result reports that nothing survived filtering.
func (s *ProfileService) Modify(ctx context.Context, roll string, payload map[string]any, uploads map[string]media.Upload) (*student.Student, bool, error) {
	summary, err := s.students.GetSummaryByRoll(ctx, roll)
	if err != nil {
		// The roll comes from a verified token; a missing record is a
		// server-side inconsistency.
		return nil, false, common.NewError(common.CodeInternal, "failed to fetch student record", err)
	}

	policy := setting.Policy{}
	if loaded, err := s.settings.Get(ctx); err != nil {
		// Without a policy the grade fields are not editable.
		if s.logger != nil {
			s.logger.Error("failed to load placement settings, grade fields locked for this request", "err", err)
		}
	} else {
		policy = *loaded
	}

	fields := student.FilterPayload(payload, summary.Approved, policy)
	stored := s.mergeUploads(ctx, roll, uploads)
	for field, url := range stored {
		fields[field] = url
	}

	if len(fields) == 0 && len(uploads) == 0 {
		return nil, true, nil
	}

	updated, err := s.students.UpdateFields(ctx, roll, fields)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// mergeUploads replaces each attachment field in order: detach the stored
// reference, store the new binary, bind the returned URL. A failure after the
// detach leaves the field empty; the failed field is dropped and the update
// proceeds without it.
func (s *ProfileService) mergeUploads(ctx context.Context, roll string, uploads map[string]media.Upload) map[string]string {
	stored := make(map[string]string)
	for _, field := range mediaFields {
		upload, ok := uploads[field]
		if !ok {
			continue
		}
		if _, err := s.students.UpdateFields(ctx, roll, map[string]any{field: nil}); err != nil {
			if s.logger != nil {
				s.logger.Error("failed to detach media field", "field", field, "roll", roll, "err", err)
			}
			continue
		}
		if field == resumeField {
			upload.Name = roll + ".pdf"
		}
		file, err := s.store.Save(ctx, upload)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("failed to store media field", "field", field, "roll", roll, "err", err)
			}
			continue
		}
		if file == nil {
			// Storage reported nothing stored; leave the field detached.
			continue
		}
		stored[field] = file.URL
	}
	return stored
}

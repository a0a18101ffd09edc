package app

import (
	"context"
	"sync"
	"time"

	"tpcell/internal/common"
	"tpcell/internal/domain/media"
	"tpcell/internal/domain/posting"
	"tpcell/internal/domain/selection"
	"tpcell/internal/domain/setting"
	"tpcell/internal/domain/student"
)

// opLog records collaborator calls across fakes so tests can assert ordering
// between the detach and store steps.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) index(op string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, recorded := range l.ops {
		if recorded == op {
			return i
		}
	}
	return -1
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[string]*student.Student
	log      *opLog
	patches  []map[string]any
}

func newFakeStudentRepo(log *opLog) *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*student.Student), log: log}
}

func (r *fakeStudentRepo) add(record student.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == "" {
		record.ID = common.NewUUID()
	}
	r.students[record.Roll] = &record
}

func (r *fakeStudentRepo) Create(ctx context.Context, record student.Student) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[record.Roll]; ok {
		return nil, common.NewError(common.CodeConflict, "a profile with this roll already exists", nil)
	}
	record.ID = common.NewUUID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.students[record.Roll] = &record
	copied := record
	return &copied, nil
}

func (r *fakeStudentRepo) GetByRoll(ctx context.Context, roll string) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.students[roll]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "student not found", nil)
	}
	copied := *record
	return &copied, nil
}

func (r *fakeStudentRepo) GetSummaryByRoll(ctx context.Context, roll string) (*student.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.students[roll]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "student not found", nil)
	}
	return &student.Summary{ID: record.ID, Roll: record.Roll, Approved: record.Approved}, nil
}

func (r *fakeStudentRepo) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.students {
		if record.InstituteEmail == email {
			copied := *record
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "student not found", nil)
}

func (r *fakeStudentRepo) UpdateFields(ctx context.Context, roll string, fields map[string]any) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.students[roll]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "student not found", nil)
	}
	if r.log != nil {
		if len(fields) == 1 {
			for field, value := range fields {
				if value == nil {
					r.log.add("detach:" + field)
				}
			}
		}
	}
	copied := make(map[string]any, len(fields))
	for field, value := range fields {
		copied[field] = value
	}
	r.patches = append(r.patches, copied)
	applyPatch(record, fields)
	out := *record
	return &out, nil
}

// applyPatch mirrors the handful of columns the tests look at.
func applyPatch(record *student.Student, fields map[string]any) {
	for field, value := range fields {
		text, _ := value.(string)
		switch field {
		case "name":
			record.Name = text
		case "resume_link":
			record.ResumeLink = text
		case "address":
			record.Address = text
		case "resume":
			record.Resume = text
		case "profile_pic":
			record.ProfilePic = text
		case "cpi":
			if number, ok := value.(float64); ok {
				record.CPI = &number
			}
		}
	}
}

func (r *fakeStudentRepo) SetPlacedStatus(ctx context.Context, roll string, status student.PlacedStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.students[roll]
	if !ok {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	record.PlacedStatus = status
	at := updatedAt
	record.PlacedStatusAt = &at
	return nil
}

func (r *fakeStudentRepo) ListPlaced(ctx context.Context) ([]student.PlacedRoll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []student.PlacedRoll
	for _, record := range r.students {
		if record.PlacedStatus.IsPlaced() {
			items = append(items, student.PlacedRoll{Roll: record.Roll, Status: record.PlacedStatus})
		}
	}
	return items, nil
}

func (r *fakeStudentRepo) ListWithOfferFlag(ctx context.Context, flag student.OfferFlag) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rolls []string
	for _, record := range r.students {
		set := false
		switch flag {
		case student.FlagInternship2:
			set = record.InternshipStatus2
		case student.FlagInternship6:
			set = record.InternshipStatus6
		case student.FlagFTE:
			set = record.FTEStatus
		}
		if set {
			rolls = append(rolls, record.Roll)
		}
	}
	return rolls, nil
}

type fakeSelection struct {
	roll           string
	studentID      common.UUID
	status         selection.Status
	category       posting.Category
	classification posting.Classification
}

type fakeSelectionRepo struct {
	mu          sync.Mutex
	events      []fakeSelection
	listCalls   int
	existsCalls int
}

func (r *fakeSelectionRepo) add(event fakeSelection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *fakeSelectionRepo) matches(event fakeSelection, filter selection.PostingFilter) bool {
	if event.status != selection.StatusSelected {
		return false
	}
	if event.category != filter.Category {
		return false
	}
	if filter.RequireTier && event.classification == posting.ClassificationNone {
		return false
	}
	return true
}

func (r *fakeSelectionRepo) ListSelectedRolls(ctx context.Context, filter selection.PostingFilter) ([]selection.SelectedRoll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var items []selection.SelectedRoll
	for _, event := range r.events {
		if r.matches(event, filter) {
			items = append(items, selection.SelectedRoll{Roll: event.roll, Classification: event.classification})
		}
	}
	return items, nil
}

func (r *fakeSelectionRepo) ExistsSelected(ctx context.Context, studentID common.UUID, filter selection.PostingFilter) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.existsCalls++
	for _, event := range r.events {
		if event.studentID == studentID && r.matches(event, filter) {
			return true, nil
		}
	}
	return false, nil
}

type fakeSettingRepo struct {
	policy setting.Policy
	err    error
	calls  int
}

func (r *fakeSettingRepo) Get(ctx context.Context) (*setting.Policy, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	copied := r.policy
	return &copied, nil
}

func (r *fakeSettingRepo) Update(ctx context.Context, policy setting.Policy) (*setting.Policy, error) {
	r.policy = policy
	copied := policy
	return &copied, nil
}

type fakeMediaStore struct {
	mu      sync.Mutex
	log     *opLog
	saved   []media.Upload
	failAll bool
	empty   bool
}

func (s *fakeMediaStore) Save(ctx context.Context, upload media.Upload) (*media.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log != nil {
		s.log.add("store:" + upload.Name)
	}
	if s.failAll {
		return nil, common.NewError(common.CodeInternal, "storage unavailable", nil)
	}
	if s.empty {
		return nil, nil
	}
	s.saved = append(s.saved, upload)
	return &media.File{
		Name:       upload.Name,
		URL:        "/uploads/" + upload.Name,
		MimeType:   upload.ContentType,
		Size:       int64(len(upload.Data)),
		UploadedAt: time.Now().UTC(),
	}, nil
}

package student

import (
	"strconv"

	"tpcell/internal/domain/setting"
)

// Access classifies what it takes for a field to be writable by its owner.
type Access int

const (
	// Deny covers unknown fields as well: anything outside the partitions
	// below is immutable through the self-service path.
	Deny Access = iota
	// AllowAlways fields stay editable for the life of the profile.
	AllowAlways
	// AllowIfPending fields lock once the profile leaves the pending state.
	AllowIfPending
	// AllowIfGradeChange fields additionally require the global toggle and a
	// numeric value.
	AllowIfGradeChange
)

// The partitions are data, not request logic: adding a field to the student
// schema means adding a row here.
var fieldsAllowedBeforeApproval = []string{
	"name",
	"roll",
	"gender",
	"date_of_birth",
	"category",
	"rank",
	"course",
	"address",
	"X_marks",
	"XII_marks",
	"ug_college",
	"ug_cpi",
}

var fieldsAllowedAnytime = []string{
	"resume_link",
	"other_achievements",
	"projects",
	"transcript_link",
	"cover_letter_link",
	"profile_pic",
}

var gradeFields = []string{
	"spi_1",
	"spi_2",
	"spi_3",
	"spi_4",
	"spi_5",
	"spi_6",
	"spi_7",
	"spi_8",
	"spi_9",
	"spi_10",
	"cpi",
}

var accessByField = func() map[string]Access {
	out := make(map[string]Access, len(fieldsAllowedBeforeApproval)+len(fieldsAllowedAnytime)+len(gradeFields))
	for _, field := range fieldsAllowedBeforeApproval {
		out[field] = AllowIfPending
	}
	for _, field := range fieldsAllowedAnytime {
		out[field] = AllowAlways
	}
	for _, field := range gradeFields {
		out[field] = AllowIfGradeChange
	}
	return out
}()

// Classify reports whether one field is writable given the profile's approval
// state and the global policy. Pure over its inputs.
func Classify(field string, state ApprovalState, policy setting.Policy) Access {
	access, ok := accessByField[field]
	if !ok {
		return Deny
	}
	switch access {
	case AllowIfPending:
		if state != ApprovalPending {
			return Deny
		}
	case AllowIfGradeChange:
		if !policy.CPIChangeAllowed {
			return Deny
		}
	}
	return access
}

// FilterPayload keeps only the writable fields of an arbitrary payload.
// Unknown and forbidden fields are dropped silently, never rejected, so the
// caller may hand over an untrusted superset payload as-is. Grade fields are
// value-checked one by one: a non-numeric or empty value drops that field
// alone.
func FilterPayload(payload map[string]any, state ApprovalState, policy setting.Policy) map[string]any {
	out := make(map[string]any)
	for field, value := range payload {
		switch Classify(field, state, policy) {
		case AllowAlways, AllowIfPending:
			out[field] = value
		case AllowIfGradeChange:
			// Zero counts as unset here, same as an empty form value.
			if number, ok := numericValue(value); ok && number != 0 {
				out[field] = number
			}
		}
	}
	return out
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if v == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

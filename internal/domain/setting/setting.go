package setting

import "context"

// Policy is the process-wide singleton the field access engine and the
// registration gate read. Writes go through the admin surface only.
type Policy struct {
	RegistrationsAllowed bool `json:"registrations_allowed"`
	CPIChangeAllowed     bool `json:"cpi_change_allowed"`
}

type Repository interface {
	Get(ctx context.Context) (*Policy, error)
	Update(ctx context.Context, policy Policy) (*Policy, error)
}

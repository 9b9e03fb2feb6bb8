package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a credit application.
// The only legal path is DRAFT -> SUBMITTED -> ANALYZING -> DECIDED -> WITHDRAWN;
// no stage may be skipped and no backward transition exists.
type ApplicationStatus struct {
	value string
}

const (
	statusDraft     = "DRAFT"
	statusSubmitted = "SUBMITTED"
	statusAnalyzing = "ANALYZING"
	statusDecided   = "DECIDED"
	statusWithdrawn = "WITHDRAWN"
)

var (
	ApplicationStatusDraft     = ApplicationStatus{value: statusDraft}
	ApplicationStatusSubmitted = ApplicationStatus{value: statusSubmitted}
	ApplicationStatusAnalyzing = ApplicationStatus{value: statusAnalyzing}
	ApplicationStatusDecided   = ApplicationStatus{value: statusDecided}
	ApplicationStatusWithdrawn = ApplicationStatus{value: statusWithdrawn}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	statusDraft:     ApplicationStatusDraft,
	statusSubmitted: ApplicationStatusSubmitted,
	statusAnalyzing: ApplicationStatusAnalyzing,
	statusDecided:   ApplicationStatusDecided,
	statusWithdrawn: ApplicationStatusWithdrawn,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

package enums

import "fmt"

// AvailabilityStatus is the computed availability of a field agent for a
// specific booking date and time window.
type AvailabilityStatus string

const (
	AvailabilityStatusAvailable            AvailabilityStatus = "available"
	AvailabilityStatusTimeOff              AvailabilityStatus = "unavailable (time-off)"
	AvailabilityStatusNoTimesheet          AvailabilityStatus = "unavailable (no timesheet)"
	AvailabilityStatusTimesheetNotApproved AvailabilityStatus = "unavailable (timesheet not approved)"
	AvailabilityStatusNotScheduled         AvailabilityStatus = "unavailable (not scheduled)"
)

var validAvailabilityStatuses = []AvailabilityStatus{
	AvailabilityStatusAvailable,
	AvailabilityStatusTimeOff,
	AvailabilityStatusNoTimesheet,
	AvailabilityStatusTimesheetNotApproved,
	AvailabilityStatusNotScheduled,
}

// String implements fmt.Stringer.
func (a AvailabilityStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AvailabilityStatus.
func (a AvailabilityStatus) IsValid() bool {
	for _, candidate := range validAvailabilityStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the agent can be offered for assignment.
func (a AvailabilityStatus) IsAvailable() bool {
	return a == AvailabilityStatusAvailable
}

// ParseAvailabilityStatus converts raw input into an AvailabilityStatus.
func ParseAvailabilityStatus(value string) (AvailabilityStatus, error) {
	for _, candidate := range validAvailabilityStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability status %q", value)
}

package enums

import "fmt"

// TimeOffStatus tracks the review state of a time-off request.
type TimeOffStatus string

const (
	TimeOffStatusPending  TimeOffStatus = "pending"
	TimeOffStatusApproved TimeOffStatus = "approved"
	TimeOffStatusRejected TimeOffStatus = "rejected"
)

var validTimeOffStatuses = []TimeOffStatus{
	TimeOffStatusPending,
	TimeOffStatusApproved,
	TimeOffStatusRejected,
}

// String implements fmt.Stringer.
func (t TimeOffStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimeOffStatus.
func (t TimeOffStatus) IsValid() bool {
	for _, candidate := range validTimeOffStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimeOffStatus converts raw input into a TimeOffStatus.
func ParseTimeOffStatus(value string) (TimeOffStatus, error) {
	for _, candidate := range validTimeOffStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time off status %q", value)
}

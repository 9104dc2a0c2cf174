package enums

import "fmt"

// TimesheetStatus tracks the review state of a weekly timesheet.
type TimesheetStatus string

const (
	TimesheetStatusPending  TimesheetStatus = "pending"
	TimesheetStatusApproved TimesheetStatus = "approved"
	TimesheetStatusRejected TimesheetStatus = "rejected"
)

var validTimesheetStatuses = []TimesheetStatus{
	TimesheetStatusPending,
	TimesheetStatusApproved,
	TimesheetStatusRejected,
}

// String implements fmt.Stringer.
func (t TimesheetStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimesheetStatus.
func (t TimesheetStatus) IsValid() bool {
	for _, candidate := range validTimesheetStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimesheetStatus converts raw input into a TimesheetStatus.
func ParseTimesheetStatus(value string) (TimesheetStatus, error) {
	for _, candidate := range validTimesheetStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid timesheet status %q", value)
}

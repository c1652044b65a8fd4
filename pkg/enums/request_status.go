package enums

import "fmt"

// RequestStatus tracks the lifecycle of a print request. The values match the
// labels staff see on the operator sheet, so they double as display strings.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "New"
	RequestStatusProcessing RequestStatus = "Processing"
	RequestStatusReady      RequestStatus = "Ready for Collection"
	RequestStatusCollected  RequestStatus = "Collected"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusProcessing,
	RequestStatusReady,
	RequestStatusCollected,
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RequestStatus.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}

package status

// SetStatusRequest carries the operator-chosen lifecycle status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TechnicianNotesRequest replaces the technician notes wholesale. An empty
// string clears them.
type TechnicianNotesRequest struct {
	Notes string `json:"notes"`
}

// RequestDetail is the operator-facing view of a print request.
type RequestDetail struct {
	Reference       string  `json:"referenceNumber"`
	Status          string  `json:"status"`
	UploadLocation  string  `json:"uploadLocation"`
	SubmittedAt     string  `json:"submittedAt"`
	FirstName       string  `json:"firstName"`
	Surname         string  `json:"surname"`
	Email           string  `json:"email"`
	StudentID       string  `json:"universityId"`
	Course          string  `json:"course"`
	PrintSize       string  `json:"printSize"`
	PaperType       string  `json:"paperType"`
	PaperCategory   string  `json:"paperCategory,omitempty"`
	Quantity        int     `json:"quantity"`
	EstimatedPrice  string  `json:"estimatedPrice"`
	DPICheck        bool    `json:"checkDpi"`
	RGBCheck        bool    `json:"checkRgb"`
	FlattenedCheck  bool    `json:"checkFlattened"`
	Notes           *string `json:"notes,omitempty"`
	ReadyDate       *string `json:"readyDate,omitempty"`
	TechnicianNotes *string `json:"technicianNotes,omitempty"`
}

// StatusResult reports the outcome of a status transition.
type StatusResult struct {
	Reference        string  `json:"referenceNumber"`
	Status           string  `json:"status"`
	ReadyDate        *string `json:"readyDate,omitempty"`
	NotificationSent *bool   `json:"notificationSent,omitempty"`
}

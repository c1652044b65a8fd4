package intake

// SubmitRequest mirrors the public web-form payload.
type SubmitRequest struct {
	ReferenceNumber string  `json:"referenceNumber" validate:"required"`
	FirstName       string  `json:"firstName" validate:"required"`
	Surname         string  `json:"surname" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	UniversityID    string  `json:"universityId" validate:"required"`
	Course          string  `json:"course" validate:"required"`
	PrintSize       string  `json:"printSize" validate:"required"`
	PaperType       string  `json:"paperType" validate:"required"`
	PaperCategory   string  `json:"paperCategory"`
	Quantity        int     `json:"quantity" validate:"required,min=1"`
	TotalPrice      float64 `json:"totalPrice" validate:"min=0"`
	CheckDpi        bool    `json:"checkDpi"`
	CheckRgb        bool    `json:"checkRgb"`
	CheckFlattened  bool    `json:"checkFlattened"`
	Notes           string  `json:"notes"`
	PrintDimensions string  `json:"printDimensions"`
	Timestamp       string  `json:"timestamp"`
}

// SubmitResult reports what actually happened during intake: the row is
// always persisted on success, while the folder and email steps may have
// degraded (sentinel location, unsent receipt).
type SubmitResult struct {
	Reference        string `json:"referenceNumber"`
	UploadFolderURL  string `json:"uploadFolderUrl"`
	Status           string `json:"status"`
	NotificationSent bool   `json:"notificationSent"`
}

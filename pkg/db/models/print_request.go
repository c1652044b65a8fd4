package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harrowdigital/printdesk-backend/pkg/enums"
)

// PrintRequest is one submitted print order. Rows are never deleted; the
// cleanup sweep only rewrites UploadLocation once the backing folder is gone.
//
// SubmittedAt and ReadyDate are stored as display-formatted text rather than
// timestamps because staff read and occasionally hand-edit them on the
// operator sheet. CreatedAt/UpdatedAt remain the machine-readable times.
type PrintRequest struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference       string              `gorm:"column:reference;not null;uniqueIndex:idx_print_requests_reference"`
	Status          enums.RequestStatus `gorm:"column:status;type:text;not null;default:'New'"`
	UploadLocation  string              `gorm:"column:upload_location;not null;default:''"`
	SubmittedAt     string              `gorm:"column:submitted_at;not null"`
	FirstName       string              `gorm:"column:first_name;not null"`
	Surname         string              `gorm:"column:surname;not null"`
	Email           string              `gorm:"column:email;not null"`
	StudentID       string              `gorm:"column:student_id;not null"`
	Course          string              `gorm:"column:course;not null"`
	PrintSize       string              `gorm:"column:print_size;not null"`
	PaperType       string              `gorm:"column:paper_type;not null"`
	PaperCategory   string              `gorm:"column:paper_category;not null;default:''"`
	Quantity        int                 `gorm:"column:quantity;not null"`
	EstimatedPrice  string              `gorm:"column:estimated_price;not null;default:''"`
	DPICheck        bool                `gorm:"column:dpi_check;not null;default:false"`
	RGBCheck        bool                `gorm:"column:rgb_check;not null;default:false"`
	FlattenedCheck  bool                `gorm:"column:flattened_check;not null;default:false"`
	Notes           *string             `gorm:"column:notes"`
	ReadyDate       *string             `gorm:"column:ready_date"`
	TechnicianNotes *string             `gorm:"column:technician_notes"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import "time"

// InquiryStatus is the dispatch outcome of a contact form submission.
type InquiryStatus string

const (
	InquiryPending InquiryStatus = "pending"
	InquirySent    InquiryStatus = "sent"
	InquiryFailed  InquiryStatus = "failed"
)

// Inquiry is a recorded contact form submission.
type Inquiry struct {
	ID                string        `json:"id" db:"id"`
	Name              string        `json:"name" db:"name"`
	Email             string        `json:"email" db:"email"`
	Phone             string        `json:"phone,omitempty" db:"phone"`
	Company           string        `json:"company,omitempty" db:"company"`
	Service           string        `json:"service,omitempty" db:"service"`
	Message           string        `json:"message" db:"message"`
	AttachmentName    string        `json:"attachment_name,omitempty" db:"attachment_name"`
	AttachmentPreview string        `json:"attachment_preview,omitempty" db:"attachment_preview"`
	Status            InquiryStatus `json:"status" db:"status"`
	Error             string        `json:"error,omitempty" db:"error"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

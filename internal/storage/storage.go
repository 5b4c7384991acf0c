// Package storage defines the persistence interface for contact inquiries.
package storage

import (
	"context"
	"errors"

	"github.com/insightexus/site/internal/models"
)

// ErrInquiryNotFound is returned when no inquiry has the requested id.
var ErrInquiryNotFound = errors.New("inquiry not found")

// InquiryStore persists contact form submissions and their dispatch outcome.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inq *models.Inquiry) error
	UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus, errMsg string) error
	GetInquiry(ctx context.Context, id string) (*models.Inquiry, error)
	ListInquiries(ctx context.Context, offset, limit int) ([]*models.Inquiry, error)

	// Stats
	CountInquiries(ctx context.Context) (map[models.InquiryStatus]int64, error)

	Close() error
}

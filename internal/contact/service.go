// Package contact validates contact form submissions, emails the admin and the
// submitter, and records every inquiry with its dispatch outcome.
package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/extract"
	"github.com/insightexus/site/internal/metrics"
	"github.com/insightexus/site/internal/models"
	"github.com/insightexus/site/internal/storage"
	"go.uber.org/zap"
)

// ErrDispatch wraps mail delivery failures.
var ErrDispatch = errors.New("failed to send email")

// Submission is one contact form post.
type Submission struct {
	Name       string      `form:"name" validate:"required,max=200"`
	Email      string      `form:"email" validate:"required,email"`
	Phone      string      `form:"phone" validate:"max=50"`
	Company    string      `form:"company" validate:"max=200"`
	Service    string      `form:"service" validate:"max=200"`
	Message    string      `form:"message" validate:"required,max=10000"`
	Attachment *Attachment `form:"-" validate:"-"`
}

// Service handles contact submissions.
type Service struct {
	mailer    Mailer
	composer  *Composer
	store     storage.InquiryStore
	extractor *extract.Extractor
	validator *formValidator
	cfg       config.ContactConfig
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStore records inquiries in store.
func WithStore(store storage.InquiryStore) Option {
	return func(s *Service) { s.store = store }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService returns a contact service delivering through mailer.
func NewService(mailer Mailer, mailCfg config.MailConfig, contactCfg config.ContactConfig, opts ...Option) *Service {
	s := &Service{
		mailer:    mailer,
		composer:  NewComposer(mailCfg.From, mailCfg.Admin),
		extractor: extract.NewExtractor(),
		validator: newFormValidator(),
		cfg:       contactCfg,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates sub, records it, sends the admin notification then the confirmation,
// and records the outcome. Validation failures return *ValidationError; delivery failures
// wrap ErrDispatch. The returned inquiry is nil only for validation failures.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*models.Inquiry, error) {
	if err := s.validator.check(sub); err != nil {
		metrics.RecordContact("invalid")
		return nil, err
	}

	inq := &models.Inquiry{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Company: sub.Company,
		Service: sub.Service,
		Message: sub.Message,
		Status:  models.InquiryPending,
	}
	if sub.Attachment != nil {
		inq.AttachmentName = sub.Attachment.Filename
		inq.AttachmentPreview = s.preview(sub.Attachment)
	}
	s.record(ctx, inq)

	sendErr := s.mailer.Send(ctx, s.composer.AdminNotification(sub))
	if sendErr == nil {
		sendErr = s.mailer.Send(ctx, s.composer.Confirmation(sub))
	}

	if sendErr != nil {
		inq.Status = models.InquiryFailed
		inq.Error = sendErr.Error()
		s.logger.Error("email handling error", zap.String("inquiry_id", inq.ID), zap.Error(sendErr))
	} else {
		inq.Status = models.InquirySent
		s.logger.Info("contact submission sent", zap.String("inquiry_id", inq.ID))
	}
	s.updateStatus(ctx, inq)
	metrics.RecordContact(string(inq.Status))

	if sendErr != nil {
		return inq, fmt.Errorf("%w: %w", ErrDispatch, sendErr)
	}
	return inq, nil
}

func (s *Service) preview(a *Attachment) string {
	if !extract.Supported(a.Filename) {
		return ""
	}
	text, err := s.extractor.Preview(a.Content, a.Filename, s.cfg.AttachmentPreviewChars)
	if err != nil {
		s.logger.Debug("attachment preview failed", zap.String("filename", a.Filename), zap.Error(err))
		return ""
	}
	return text
}

// record stores inq. Storage problems are logged, never surfaced: the email is what matters.
func (s *Service) record(ctx context.Context, inq *models.Inquiry) {
	if s.store == nil {
		return
	}
	if err := s.store.CreateInquiry(ctx, inq); err != nil {
		s.logger.Warn("failed to record inquiry", zap.Error(err))
	}
}

func (s *Service) updateStatus(ctx context.Context, inq *models.Inquiry) {
	if s.store == nil || inq.ID == "" {
		return
	}
	if err := s.store.UpdateInquiryStatus(ctx, inq.ID, inq.Status, inq.Error); err != nil {
		s.logger.Warn("failed to update inquiry status", zap.String("inquiry_id", inq.ID), zap.Error(err))
	}
}

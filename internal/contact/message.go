package contact

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const teamName = "InsightExus Team"

// Attachment is a file forwarded with the admin notification.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outgoing email.
type Message struct {
	FromName    string
	FromAddress string
	To          string
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Composer renders the admin notification and the submitter confirmation.
type Composer struct {
	from   string
	admin  string
	policy *bluemonday.Policy
}

// NewComposer returns a composer sending from the from address to admin.
func NewComposer(from, admin string) *Composer {
	return &Composer{from: from, admin: admin, policy: bluemonday.StrictPolicy()}
}

// escape strips markup from user input and HTML-escapes what remains.
func (c *Composer) escape(s string) string {
	return c.policy.Sanitize(s)
}

// AdminNotification is sent to the site admin, labelled with the submitter's name
// and replying to the submitter.
func (c *Composer) AdminNotification(s *Submission) *Message {
	text := fmt.Sprintf(`
Name: %s
Email: %s
Phone: %s
Company: %s
Service: %s

Message:
%s
`, s.Name, s.Email, s.Phone, s.Company, s.Service, s.Message)

	var html strings.Builder
	html.WriteString("<h3>New Contact Form Submission</h3>\n")
	for _, f := range []struct{ label, value string }{
		{"Name", s.Name},
		{"Email", s.Email},
		{"Phone", s.Phone},
		{"Company", s.Company},
		{"Service", s.Service},
	} {
		fmt.Fprintf(&html, "<p><strong>%s:</strong> %s</p>\n", f.label, c.escape(f.value))
	}
	html.WriteString("<br/>\n<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&html, "<p>%s</p>\n", strings.ReplaceAll(c.escape(s.Message), "\n", "<br>"))

	msg := &Message{
		FromName:    s.Name,
		FromAddress: c.from,
		To:          c.admin,
		ReplyTo:     s.Email,
		Subject:     "New Contact Form Submission: " + s.Name,
		Text:        text,
		HTML:        html.String(),
	}
	if s.Attachment != nil {
		msg.Attachments = []Attachment{*s.Attachment}
	}
	return msg
}

// Confirmation is sent back to the submitter.
func (c *Composer) Confirmation(s *Submission) *Message {
	text := fmt.Sprintf("Hi %s,\n\nThank you for reaching out to InsightExus. We have received your inquiry regarding %s and will get back to you shortly.\n\nBest regards,\nThe InsightExus Team", s.Name, s.Service)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px;">
  <h2 style="color: #0ea5e9;">Thank You for Contacting Us</h2>
  <p>Hi %s,</p>
  <p>We have received your inquiry regarding <strong>%s</strong>.</p>
  <p>Our team is reviewing your details and will get back to you within 24 hours.</p>
  <br/>
  <p>Best regards,</p>
  <p><strong>The InsightExus Team</strong></p>
  <p style="font-size: 12px; color: #64748b;">This is an automated confirmation. Please do not reply to this email.</p>
</div>
`, c.escape(s.Name), c.escape(s.Service))
	return &Message{
		FromName:    teamName,
		FromAddress: c.from,
		To:          s.Email,
		Subject:     "We've received your message - InsightExus",
		Text:        text,
		HTML:        html,
	}
}

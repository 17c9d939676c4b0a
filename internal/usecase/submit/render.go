package submit

import (
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"portfolio-backend/internal/domain/entity"

	"github.com/microcosm-cc/bluemonday"
)

// Placeholders rendered for optional fields the submitter left empty.
const (
	placeholderNotSpecified  = "Not specified"
	placeholderToBeDiscussed = "To be discussed"
)

// RenderedEmails holds the rendered bodies for one submission: the owner
// notification (HTML plus plain-text fallback) and the submitter
// confirmation.
type RenderedEmails struct {
	NotificationSubject string
	NotificationHTML    string
	NotificationText    string
	ConfirmationSubject string
	ConfirmationHTML    string
}

// Renderer renders submission emails. User-supplied text is stripped of any
// markup before templating, and the HTML templates auto-escape on top of
// that, so submitted content can never inject structure into the emails.
type Renderer struct {
	policy *bluemonday.Policy

	contactNotification *htmltemplate.Template
	contactConfirmation *htmltemplate.Template
	contactText         *texttemplate.Template
	orderNotification   *htmltemplate.Template
	orderConfirmation   *htmltemplate.Template
	orderText           *texttemplate.Template

	siteName string
}

// NewRenderer parses the email templates. siteName appears in subjects and
// signatures.
func NewRenderer(siteName string) (*Renderer, error) {
	r := &Renderer{
		policy:   bluemonday.StrictPolicy(),
		siteName: siteName,
	}

	var err error
	if r.contactNotification, err = htmltemplate.New("contact_notification").Parse(contactNotificationHTML); err != nil {
		return nil, fmt.Errorf("parse contact notification template: %w", err)
	}
	if r.contactConfirmation, err = htmltemplate.New("contact_confirmation").Parse(contactConfirmationHTML); err != nil {
		return nil, fmt.Errorf("parse contact confirmation template: %w", err)
	}
	if r.contactText, err = texttemplate.New("contact_text").Parse(contactNotificationText); err != nil {
		return nil, fmt.Errorf("parse contact text template: %w", err)
	}
	if r.orderNotification, err = htmltemplate.New("order_notification").Parse(orderNotificationHTML); err != nil {
		return nil, fmt.Errorf("parse order notification template: %w", err)
	}
	if r.orderConfirmation, err = htmltemplate.New("order_confirmation").Parse(orderConfirmationHTML); err != nil {
		return nil, fmt.Errorf("parse order confirmation template: %w", err)
	}
	if r.orderText, err = texttemplate.New("order_text").Parse(orderNotificationText); err != nil {
		return nil, fmt.Errorf("parse order text template: %w", err)
	}

	return r, nil
}

// clean strips markup from user text and decodes entities back to plain
// text. The templates re-escape on output.
func (r *Renderer) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(s)))
}

// cleanOr returns the cleaned value, or the placeholder when the field is
// empty after cleaning.
func (r *Renderer) cleanOr(s, placeholder string) string {
	if out := r.clean(s); out != "" {
		return out
	}
	return placeholder
}

type contactEmailData struct {
	SiteName    string
	Name        string
	Email       string
	Company     string
	ProjectType string
	Budget      string
	Timeline    string
	Message     string
}

// RenderContact renders the notification and confirmation emails for a
// contact inquiry.
func (r *Renderer) RenderContact(s entity.ContactSubmission) (*RenderedEmails, error) {
	data := contactEmailData{
		SiteName:    r.siteName,
		Name:        r.clean(s.Name),
		Email:       r.clean(s.Email),
		Company:     r.cleanOr(s.Company, placeholderNotSpecified),
		ProjectType: r.clean(s.ProjectType),
		Budget:      r.cleanOr(s.Budget, placeholderNotSpecified),
		Timeline:    r.cleanOr(s.Timeline, placeholderToBeDiscussed),
		Message:     r.clean(s.Message),
	}

	var notification, confirmation strings.Builder
	if err := r.contactNotification.Execute(&notification, data); err != nil {
		return nil, fmt.Errorf("render contact notification: %w", err)
	}
	if err := r.contactConfirmation.Execute(&confirmation, data); err != nil {
		return nil, fmt.Errorf("render contact confirmation: %w", err)
	}
	var text strings.Builder
	if err := r.contactText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render contact text fallback: %w", err)
	}

	return &RenderedEmails{
		NotificationSubject: fmt.Sprintf("New inquiry from %s", data.Name),
		NotificationHTML:    notification.String(),
		NotificationText:    text.String(),
		ConfirmationSubject: fmt.Sprintf("Thanks for reaching out to %s", r.siteName),
		ConfirmationHTML:    confirmation.String(),
	}, nil
}

type orderEmailData struct {
	SiteName      string
	Name          string
	Email         string
	Service       string
	Requirements  string
	Deadline      string
	Budget        string
	PaymentMethod string
	Attachments   []string
}

// RenderOrder renders the notification and confirmation emails for a
// service order. Attachment filenames are listed; contents travel on the
// notification message itself.
func (r *Renderer) RenderOrder(s entity.OrderSubmission) (*RenderedEmails, error) {
	filenames := make([]string, 0, len(s.Attachments))
	for _, a := range s.Attachments {
		filenames = append(filenames, r.clean(a.Filename))
	}

	data := orderEmailData{
		SiteName:      r.siteName,
		Name:          r.clean(s.Name),
		Email:         r.clean(s.Email),
		Service:       r.clean(s.Service),
		Requirements:  r.clean(s.Requirements),
		Deadline:      r.cleanOr(s.Deadline, placeholderNotSpecified),
		Budget:        r.cleanOr(s.Budget, placeholderNotSpecified),
		PaymentMethod: r.cleanOr(s.PaymentMethod, placeholderNotSpecified),
		Attachments:   filenames,
	}

	var notification, confirmation strings.Builder
	if err := r.orderNotification.Execute(&notification, data); err != nil {
		return nil, fmt.Errorf("render order notification: %w", err)
	}
	if err := r.orderConfirmation.Execute(&confirmation, data); err != nil {
		return nil, fmt.Errorf("render order confirmation: %w", err)
	}
	var text strings.Builder
	if err := r.orderText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render order text fallback: %w", err)
	}

	return &RenderedEmails{
		NotificationSubject: fmt.Sprintf("New order: %s from %s", data.Service, data.Name),
		NotificationHTML:    notification.String(),
		NotificationText:    text.String(),
		ConfirmationSubject: fmt.Sprintf("Your order with %s", r.siteName),
		ConfirmationHTML:    confirmation.String(),
	}, nil
}

const contactNotificationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>New inquiry</h2>
  <table cellpadding="6">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Company</strong></td><td>{{.Company}}</td></tr>
    <tr><td><strong>Project type</strong></td><td>{{.ProjectType}}</td></tr>
    <tr><td><strong>Budget</strong></td><td>{{.Budget}}</td></tr>
    <tr><td><strong>Timeline</strong></td><td>{{.Timeline}}</td></tr>
  </table>
  <h3>Message</h3>
  <p>{{.Message}}</p>
</body>
</html>`

const contactNotificationText = `New inquiry

Name: {{.Name}}
Email: {{.Email}}
Company: {{.Company}}
Project type: {{.ProjectType}}
Budget: {{.Budget}}
Timeline: {{.Timeline}}

Message:
{{.Message}}
`

const contactConfirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Thanks for reaching out, {{.Name}}!</h2>
  <p>Your message has been received. I usually reply within one business day.</p>
  <p>Here is a copy of what you sent:</p>
  <blockquote>{{.Message}}</blockquote>
  <p>— {{.SiteName}}</p>
</body>
</html>`

const orderNotificationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>New order</h2>
  <table cellpadding="6">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Service</strong></td><td>{{.Service}}</td></tr>
    <tr><td><strong>Deadline</strong></td><td>{{.Deadline}}</td></tr>
    <tr><td><strong>Budget</strong></td><td>{{.Budget}}</td></tr>
    <tr><td><strong>Payment method</strong></td><td>{{.PaymentMethod}}</td></tr>
  </table>
  <h3>Requirements</h3>
  <p>{{.Requirements}}</p>
  {{if .Attachments}}<h3>Attachments</h3>
  <ul>{{range .Attachments}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body>
</html>`

const orderNotificationText = `New order

Name: {{.Name}}
Email: {{.Email}}
Service: {{.Service}}
Deadline: {{.Deadline}}
Budget: {{.Budget}}
Payment method: {{.PaymentMethod}}

Requirements:
{{.Requirements}}
{{if .Attachments}}
Attachments:
{{range .Attachments}}- {{.}}
{{end}}{{end}}`

const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Thanks for your order, {{.Name}}!</h2>
  <p>Your request for <strong>{{.Service}}</strong> has been received.
  I will review the requirements and get back to you shortly.</p>
  <p>— {{.SiteName}}</p>
</body>
</html>`

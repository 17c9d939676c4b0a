package submit

import (
	"fmt"

	"portfolio-backend/internal/domain/entity"
)

// minMessageRunes is the minimum length of the free-text field on both forms,
// counted in runes after trimming.
const minMessageRunes = 20

// User-facing validation messages. These are rendered verbatim by the UI,
// keep them stable.
const (
	msgNameRequired     = "Name is required"
	msgEmailInvalid     = "Please enter a valid email address"
	msgProjectType      = "Please select a project type"
	msgServiceRequired  = "Please select a service"
	msgMessageTooShort  = "Please provide at least 20 characters"
	msgFilenameRequired = "Attachment filename is required"
)

// ValidateContact checks a contact submission and returns one message per
// failing field. Company, budget, and timeline are optional. The check is
// pure; it never touches the network.
func ValidateContact(s entity.ContactSubmission) entity.ValidationResult {
	result := entity.ValidationResult{}

	if entity.IsBlank(s.Name) {
		result["name"] = msgNameRequired
	}
	if !entity.ValidEmail(s.Email) {
		result["email"] = msgEmailInvalid
	}
	if entity.IsBlank(s.ProjectType) {
		result["projectType"] = msgProjectType
	}
	if !entity.MinRunes(s.Message, minMessageRunes) {
		result["message"] = msgMessageTooShort
	}

	return result
}

// ValidateOrder checks an order submission, including attachment bounds.
// Deadline, budget, and payment method are optional. An over-limit upload is
// a validation failure, not a transport error.
func ValidateOrder(s entity.OrderSubmission) entity.ValidationResult {
	result := entity.ValidationResult{}

	if entity.IsBlank(s.Name) {
		result["name"] = msgNameRequired
	}
	if !entity.ValidEmail(s.Email) {
		result["email"] = msgEmailInvalid
	}
	if entity.IsBlank(s.Service) {
		result["service"] = msgServiceRequired
	}
	if !entity.MinRunes(s.Requirements, minMessageRunes) {
		result["requirements"] = msgMessageTooShort
	}

	if msg := validateAttachments(s.Attachments); msg != "" {
		result["attachments"] = msg
	}

	return result
}

func validateAttachments(attachments []entity.Attachment) string {
	if len(attachments) > entity.MaxAttachmentCount {
		return fmt.Sprintf("At most %d attachments are allowed", entity.MaxAttachmentCount)
	}

	var total int
	for _, a := range attachments {
		if entity.IsBlank(a.Filename) {
			return msgFilenameRequired
		}
		size := len(a.Content)
		if size > entity.MaxAttachmentSize {
			return fmt.Sprintf("Each attachment must be at most %dMB", entity.MaxAttachmentSize/(1024*1024))
		}
		total += size
	}
	if total > entity.MaxAttachmentTotal {
		return fmt.Sprintf("Attachments must total at most %dMB", entity.MaxAttachmentTotal/(1024*1024))
	}
	return ""
}

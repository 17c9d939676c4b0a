package entity

// Attachment size limits. Uploads beyond these bounds are rejected during
// validation, before any transport call.
const (
	MaxAttachmentCount = 5
	MaxAttachmentSize  = 5 * 1024 * 1024  // 5MB per file
	MaxAttachmentTotal = 15 * 1024 * 1024 // 15MB per submission
)

// ContactSubmission is a contact form inquiry. It is transient: constructed
// from request input, validated, consumed by the dispatch step, and discarded.
type ContactSubmission struct {
	Name        string
	Email       string
	Company     string // optional
	ProjectType string
	Budget      string // optional
	Timeline    string // optional
	Message     string
}

// OrderSubmission is a service order placed through the order form.
// Attachments carry requirement documents supplied by the client.
type OrderSubmission struct {
	Name          string
	Email         string
	Service       string
	Requirements  string
	Deadline      string // optional
	Budget        string // optional
	PaymentMethod string // optional
	Attachments   []Attachment
}

// Attachment is an uploaded file attached to an order submission.
type Attachment struct {
	Filename string
	Content  []byte
}

// Package submission provides HTTP handlers for the contact and order
// form endpoints. Both run the same pipeline: decode, validate, dispatch
// two emails, report a structured result.
package submission

// contactRequest is the JSON body of a contact inquiry.
type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
	Message     string `json:"message"`
}

// contactResponse is the JSON result of a contact submission.
type contactResponse struct {
	Success   bool              `json:"success"`
	MessageID string            `json:"messageId,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// orderResponse is the JSON result of an order submission.
type orderResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message,omitempty"`
	ClientEmailID string            `json:"clientEmailId,omitempty"`
	SellerEmailID string            `json:"sellerEmailId,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
	Error         string            `json:"error,omitempty"`
}

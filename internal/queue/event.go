// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactSubmittedEvent is published when a visitor submits the contact form.
// It carries enough information for downstream consumers to log or notify
// staff without querying the primary database.
type ContactSubmittedEvent struct {
	ContactID   uint64 `json:"contact_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Subject     string `json:"subject"`
	SubmittedAt string `json:"submitted_at"`
}

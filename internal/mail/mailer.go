// Package mail is the outbound email collaborator. Senders deliver a
// prepared message; callers treat any failure as a DeliveryError and
// decide what state to roll back.
package mail

import "context"

// Email is a plain-text message ready for delivery.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender is the minimal interface an email provider must implement.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

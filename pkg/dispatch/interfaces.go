// Package dispatch contains the public contracts and domain models for the
// delivery module.
package dispatch

import (
	"context"

	"github.com/tinywideclouds/go-pushover/pkg/settle"
)

// MaxMessageLength is the longest message body the provider accepts.
const MaxMessageLength = 1024

// Message is the per-send value object. Title and Device are optional; an
// empty string means "not set" and the parameter is omitted from the request.
type Message struct {
	Recipient string
	Body      string
	Title     string
	Device    string
}

// Dispatcher defines the contract for a component that can deliver a message
// to one or many recipient tokens.
type Dispatcher interface {
	// Send delivers one message and returns the provider's message identifier.
	Send(ctx context.Context, msg Message) (string, error)

	// Broadcast delivers the body to every recipient concurrently and returns
	// one outcome per recipient, index-aligned with the input. A failed
	// recipient never aborts the rest of the batch.
	Broadcast(ctx context.Context, recipients []string, body, title string) []settle.Result[string]
}

// ReceiptStore defines the contract for an optional delivery log that records
// the provider message identifier handed back for a recipient.
type ReceiptStore interface {
	Record(ctx context.Context, recipient, requestID string) error
}

// Package pushover delivers notifications through the Pushover REST API.
package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/tinywideclouds/go-pushover/pkg/dispatch"
	"github.com/tinywideclouds/go-pushover/pkg/settle"
)

// DefaultEndpoint is the Pushover message submission endpoint.
const DefaultEndpoint = "https://api.pushover.net/1/messages.json"

// HTTPClient defines the subset of http.Client we use. This interface allows
// us to fake the transport for unit testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the credential and transport for a Dispatcher.
type Config struct {
	// Token is the application-level API token. Required.
	Token string
	// Endpoint overrides the message submission URL. Tests point this at a
	// local server; empty means DefaultEndpoint.
	Endpoint string
	// Client is the transport used for submissions. Defaults to a plain
	// http.Client. The Dispatcher sets no deadline of its own, so a hung
	// transport hangs its submission; cancellation belongs to the caller,
	// via ctx or the client they supply.
	Client HTTPClient
}

// Dispatcher is a credential-bound client for the message submission API.
// The token is fixed at construction. Safe for concurrent use.
type Dispatcher struct {
	token    string
	endpoint string
	client   HTTPClient
	logger   *slog.Logger
}

func NewDispatcher(cfg Config, logger *slog.Logger) *Dispatcher {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	return &Dispatcher{
		token:    cfg.Token,
		endpoint: endpoint,
		client:   client,
		logger:   logger.With("component", "PushoverDispatcher"),
	}
}

// Send delivers one message and returns the provider's message identifier.
// Validation errors surface as bare sentinels; anything past validation is
// tagged with the recipient via dispatch.RecipientError.
func (d *Dispatcher) Send(ctx context.Context, msg dispatch.Message) (string, error) {
	if err := d.preflight(msg); err != nil {
		return "", err
	}
	return d.submit(ctx, msg)
}

// Broadcast delivers body to every recipient concurrently and returns one
// outcome per recipient, index-aligned with the input. The device qualifier
// is only available through Send. A failed recipient lands in its own slot
// and never aborts the rest of the batch; Broadcast itself does not fail.
func (d *Dispatcher) Broadcast(ctx context.Context, recipients []string, body, title string) []settle.Result[string] {
	batchLogger := d.logger.With("batch_id", uuid.NewString())

	tasks := make([]func(context.Context) (string, error), len(recipients))
	for i, recipient := range recipients {
		msg := dispatch.Message{Recipient: recipient, Body: body, Title: title}
		tasks[i] = func(ctx context.Context) (string, error) {
			// Preflight failures are tagged here so a bad batch yields N
			// correlated failures instead of one thrown error.
			if err := d.preflight(msg); err != nil {
				return "", dispatch.TagRecipient(msg.Recipient, err)
			}
			return d.submit(ctx, msg)
		}
	}

	batchLogger.Info("Broadcast started", "total", len(recipients))
	results := settle.All(ctx, tasks)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		batchLogger.Warn("Broadcast finished with failures", "total", len(results), "failed", failed)
	} else {
		batchLogger.Info("Broadcast finished", "total", len(results))
	}
	return results
}

// preflight checks everything that must never reach the transport.
func (d *Dispatcher) preflight(msg dispatch.Message) error {
	if d.token == "" {
		return dispatch.ErrNoAppToken
	}
	if msg.Recipient == "" {
		return dispatch.ErrNoUserToken
	}
	if msg.Body == "" {
		return dispatch.ErrNoMessage
	}
	return nil
}

// submit is the single-submission procedure shared by Send and Broadcast.
// Every failure it produces carries the originating recipient.
func (d *Dispatcher) submit(ctx context.Context, msg dispatch.Message) (string, error) {
	// 1. Length guard before any I/O.
	if len(msg.Body) > dispatch.MaxMessageLength {
		return "", dispatch.TagRecipient(msg.Recipient, dispatch.ErrMessageTooLong)
	}

	// 2. Build the request. All parameters travel in the query string; the
	// body is empty per the provider contract.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.requestURL(msg), nil)
	if err != nil {
		return "", dispatch.TagRecipient(msg.Recipient, err)
	}

	// 3. Submit.
	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error("Pushover transport failed", "recipient", msg.Recipient, "err", err)
		return "", dispatch.TagRecipient(msg.Recipient, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", dispatch.TagRecipient(msg.Recipient, fmt.Errorf("reading response: %w", err))
	}

	// 4. Interpret the response.
	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("Pushover rejected message", "recipient", msg.Recipient, "status", resp.StatusCode)
		return "", dispatch.TagRecipient(msg.Recipient, newStatusError(resp.StatusCode, payload))
	}

	var ok struct {
		Request string `json:"request"`
	}
	if err := json.Unmarshal(payload, &ok); err != nil {
		return "", dispatch.TagRecipient(msg.Recipient, fmt.Errorf("response is malformed: %s", payload))
	}
	return ok.Request, nil
}

// requestURL builds the query-encoded submission URL. url.Values sorts keys
// on Encode, so identical inputs yield byte-identical URLs.
func (d *Dispatcher) requestURL(msg dispatch.Message) string {
	q := url.Values{}
	q.Set("token", d.token)
	q.Set("user", msg.Recipient)
	q.Set("message", msg.Body)
	if msg.Title != "" {
		q.Set("title", msg.Title)
	}
	if msg.Device != "" {
		q.Set("device", msg.Device)
	}
	return d.endpoint + "?" + q.Encode()
}

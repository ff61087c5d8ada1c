// Package receipts is an optional delivery log. It records the provider
// message identifier returned for each recipient so deliveries can be
// correlated after the fact. It is a pure observer: dispatch outcomes never
// depend on it.
package receipts

import (
	"context"
	"fmt"
	"time"
)

// CacheClient defines the subset of Redis commands we need.
type CacheClient interface {
	// Get unmarshals the stored value or returns an error if not found.
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores the value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Receipt is one recorded delivery.
type Receipt struct {
	Recipient string    `json:"recipient"`
	RequestID string    `json:"request_id"`
	SentAt    time.Time `json:"sent_at"`
}

// Store keeps the latest receipt per recipient, expiring after the TTL.
type Store struct {
	cache CacheClient
	ttl   time.Duration
}

func NewStore(cache CacheClient, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

func receiptKey(recipient string) string {
	return fmt.Sprintf("pushover:receipt:%s", recipient)
}

// Record stores the provider message identifier returned for a recipient.
func (s *Store) Record(ctx context.Context, recipient, requestID string) error {
	receipt := Receipt{
		Recipient: recipient,
		RequestID: requestID,
		SentAt:    time.Now().UTC(),
	}
	return s.cache.Set(ctx, receiptKey(recipient), receipt, s.ttl)
}

// Last returns the most recently recorded receipt for a recipient.
func (s *Store) Last(ctx context.Context, recipient string) (Receipt, error) {
	var receipt Receipt
	if err := s.cache.Get(ctx, receiptKey(recipient), &receipt); err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

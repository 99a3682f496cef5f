// Package queue defines the rental audit events exchanged over the message
// broker and the publisher/consumer pair that moves them.
package queue

const eventsQueueName = "rental.events"

// Envelope wraps every message on the rental.events queue. Exactly one of
// the payload fields is set, selected by Type.
type Envelope struct {
	Type             string                 `json:"type"` // "rental.created" or "returns.processed"
	RentalCreated    *RentalCreatedEvent    `json:"rental_created,omitempty"`
	ReturnsProcessed *ReturnsProcessedEvent `json:"returns_processed,omitempty"`
}

// RentalCreatedEvent is published after a rental batch commits. It carries
// the outcome counts so downstream consumers can audit without re-querying
// the primary database.
type RentalCreatedEvent struct {
	CustomerID int64   `json:"customer_id"`
	StoreID    int64   `json:"store_id"`
	RentalIDs  []int64 `json:"rental_ids"`
	Completed  int     `json:"completed"`
	Failed     int     `json:"failed"`
	CreatedAt  string  `json:"created_at"`
}

// ReturnsProcessedEvent is published after a returns batch commits.
type ReturnsProcessedEvent struct {
	RentalIDs    []int64 `json:"rental_ids"`
	UpdatedCount int64   `json:"updated_count"`
	ProcessedAt  string  `json:"processed_at"`
}

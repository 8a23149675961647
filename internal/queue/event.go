// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into audit log lines.
package queue

// HiveChangedQueue is the broker queue carrying hive mutation events.
const HiveChangedQueue = "hive.changed"

// HiveChangedEvent is published after every successful hive mutation. It
// carries enough information for downstream consumers to audit who changed
// which record without querying the primary database.
type HiveChangedEvent struct {
	Action     string `json:"action"` // created | updated | deleted
	HiveID     uint64 `json:"hive_id"`
	OwnerID    uint64 `json:"owner_id"`
	ActorID    uint64 `json:"actor_id"`
	ActorRole  string `json:"actor_role"`
	Name       string `json:"name"`
	OccurredAt string `json:"occurred_at"`
}

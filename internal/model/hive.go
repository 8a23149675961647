package model

import "time"

// Hive status values recognized by the aggregate statistics. Status itself
// is free-form in the ownership logic; anything else counts as unknown.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Hive represents a beekeeping hive record owned by a single user. The ID
// is assigned by the database and immutable, as is OwnerID: ownership never
// transfers through any exposed operation.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – required, stored trimmed, unique per owner.
//  Location  – optional free-form location text.
//  Status    – optional free-form status (ACTIVE/INACTIVE by convention).
//  Strength  – optional colony strength, integer 0-10 inclusive.
//  OwnerID   – user id of the owning beekeeper.
//  CreatedAt – timestamp when the record was created.
type Hive struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Location  *string       `json:"location"`
	Status    *string       `json:"status"`
	Strength  *int          `json:"strength"`
	OwnerID   uint64        `json:"ownerId"`
	CreatedAt time.Time     `json:"createdAt"`
	Owner     *OwnerSummary `json:"owner,omitempty"`
	Comments  []Comment     `json:"comments,omitempty"`
}

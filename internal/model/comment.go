package model

import "time"

// Comment is a note attached to a hive. Comments are read-only through the
// hive API: they are included when fetching a single hive and carry no
// authorization of their own beyond hive-level visibility.
type Comment struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	HiveID    uint64    `json:"hiveId"`
	AuthorID  uint64    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

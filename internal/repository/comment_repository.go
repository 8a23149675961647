package repository

import (
	"context"
	"database/sql"

	"github.com/honeyflow/hive-api/internal/model"
)

// CommentRepo reads comments attached to hives. Comments are read-only
// through the hive API and are only included when fetching a single hive.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// ListByHive returns all comments for a hive in insertion order.
func (r *CommentRepo) ListByHive(ctx context.Context, hiveID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, text, hive_id, author_id, created_at FROM comments WHERE hive_id=? ORDER BY id",
		hiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.HiveID, &c.AuthorID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type CompletedDare struct {
	CompletionID uuid.UUID
	DareID       uuid.UUID
	UserID       int64
	MediaURLs    []string
	Caption      string
	Location     string
	CreatedAt    time.Time
	IsActive     bool

	SmileCount   int
	CommentCount int
	ShareCount   int
}

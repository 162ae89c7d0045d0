package model

import (
	"time"

	"github.com/google/uuid"
)

type EngagementType string

const (
	EngagementSmile   EngagementType = "smile"
	EngagementComment EngagementType = "comment"
	EngagementShare   EngagementType = "share"
	EngagementTag     EngagementType = "tag"
)

func (t EngagementType) Valid() bool {
	switch t {
	case EngagementSmile, EngagementComment, EngagementShare, EngagementTag:
		return true
	}
	return false
}

// Unique reports whether the type allows at most one record
// per (user, target) pair.
func (t EngagementType) Unique() bool {
	return t == EngagementSmile || t == EngagementTag
}

// EngagementTarget points at exactly one of a dare or a completed dare.
type EngagementTarget struct {
	DareID       *uuid.UUID
	CompletionID *uuid.UUID
}

type Engagement struct {
	EngagementID uuid.UUID
	UserID       int64
	Username     string
	Target       EngagementTarget
	Type         EngagementType
	Content      string
	CreatedAt    time.Time
}

// EngagementCounts is the ledger-derived tally for one target,
// used for reconciliation against the denormalized counters.
type EngagementCounts struct {
	Smiles   int
	Comments int
	Shares   int
	Tags     int
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Vibe string

const (
	VibeHappy  Vibe = "Happy"
	VibeChill  Vibe = "Chill"
	VibeBold   Vibe = "Bold"
	VibeSocial Vibe = "Social"
)

func (v Vibe) Valid() bool {
	switch v {
	case VibeHappy, VibeChill, VibeBold, VibeSocial:
		return true
	}
	return false
}

type Dare struct {
	DareID      uuid.UUID
	Title       string
	Description string
	Hashtag     string
	Vibe        Vibe
	CreatorID   int64
	ExpiresAt   time.Time
	CreatedAt   time.Time

	// IsActive means the dare still accepts completions; it drops at
	// expiry. IsVisible keeps an expired dare browsable through the
	// grace window until low-engagement pruning hides it.
	IsActive  bool
	IsVisible bool

	CompletionCount int
	SmileCount      int
	CommentCount    int
	ShareCount      int
}

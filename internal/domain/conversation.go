package domain

import (
	"context"
	"time"
)

// Message roles accepted by the generation service.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation sent to the generation service.
type Message struct {
	Role    string
	Content string
}

// Generator produces a completion for a message sequence. The call is opaque:
// messages in, text out.
type Generator interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Rating values recorded against an answered question.
const (
	RatingHelpful    = 1
	RatingNotHelpful = -1
)

// Interaction is one rated question/answer exchange, kept for the feedback
// analytics pass.
type Interaction struct {
	Question  string
	Answer    string
	SourceIDs []string
	Rating    int
	Feedback  string
	CreatedAt time.Time
}

// Negative reports whether the interaction carries a negative rating.
func (i Interaction) Negative() bool { return i.Rating < 0 }

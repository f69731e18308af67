// Package interactions keeps the rated question/answer log as a capped
// Redis list, newest first.
package interactions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

const logKey = "waqfrag:interactions"

// maxLogEntries caps the list; LTRIM after every append keeps it bounded.
const maxLogEntries = 5000

// scanWindow bounds how many newest entries a negative scan reads.
const scanWindow = 1000

// store is the consumer interface for the log (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
}

// entryDTO is the wire form of one logged interaction.
type entryDTO struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	SourceIDs []string  `json:"source_ids,omitempty"`
	Rating    int       `json:"rating"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Log implements usecase/answer.InteractionLog and usecase/feedback.Repository.
type Log struct {
	store  store
	logger *zap.Logger
}

// New creates an interaction log.
func New(s store, logger *zap.Logger) *Log {
	return &Log{store: s, logger: logger}
}

// Append records an interaction and trims the list to its cap.
func (l *Log) Append(ctx context.Context, in domain.Interaction) error {
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(entryDTO{
		Question:  in.Question,
		Answer:    in.Answer,
		SourceIDs: in.SourceIDs,
		Rating:    in.Rating,
		Feedback:  in.Feedback,
		CreatedAt: in.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	if err := l.store.LPush(ctx, logKey, string(data)); err != nil {
		return fmt.Errorf("append interaction: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	if err := l.store.LTrim(ctx, logKey, 0, maxLogEntries-1); err != nil {
		return fmt.Errorf("trim interaction log: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	return nil
}

// ListNegative returns up to limit of the newest negatively rated
// interactions. Entries that fail to decode are skipped with a warning.
func (l *Log) ListNegative(ctx context.Context, limit int) ([]domain.Interaction, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := l.store.LRange(ctx, logKey, 0, scanWindow-1)
	if err != nil {
		return nil, fmt.Errorf("read interaction log: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	negatives := make([]domain.Interaction, 0, limit)
	for _, item := range raw {
		var dto entryDTO
		if err := json.Unmarshal([]byte(item), &dto); err != nil {
			l.logger.Warn("Skipping undecodable interaction entry", zap.Error(err))
			continue
		}
		in := domain.Interaction{
			Question:  dto.Question,
			Answer:    dto.Answer,
			SourceIDs: dto.SourceIDs,
			Rating:    dto.Rating,
			Feedback:  dto.Feedback,
			CreatedAt: dto.CreatedAt,
		}
		if !in.Negative() {
			continue
		}
		negatives = append(negatives, in)
		if len(negatives) == limit {
			break
		}
	}
	return negatives, nil
}

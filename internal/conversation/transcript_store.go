package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TranscriptMessage is one entry of a conversation transcript.
type TranscriptMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptStore keeps rolling per-caller transcripts in Redis so operators
// can review recent exchanges. Entries are capped per conversation.
type TranscriptStore struct {
	client      *redis.Client
	maxMessages int64
	ttl         time.Duration
}

// NewTranscriptStore creates a store capped at maxMessages per conversation.
func NewTranscriptStore(client *redis.Client, maxMessages int) *TranscriptStore {
	// Matches the TRANSCRIPT_MAX_MESSAGES config default.
	if maxMessages <= 0 {
		maxMessages = 250
	}
	return &TranscriptStore{
		client:      client,
		maxMessages: int64(maxMessages),
		ttl:         30 * 24 * time.Hour,
	}
}

func transcriptKey(companyID, caller string) string {
	return fmt.Sprintf("chat_transcript:%s:%s", companyID, caller)
}

// Append adds a message to the caller's transcript and trims to the cap.
func (s *TranscriptStore) Append(ctx context.Context, companyID, caller string, msg TranscriptMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("transcript: marshal message: %w", err)
	}

	key := transcriptKey(companyID, caller)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -s.maxMessages, -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("transcript: append: %w", err)
	}
	return nil
}

// List returns the caller's transcript oldest-first.
func (s *TranscriptStore) List(ctx context.Context, companyID, caller string) ([]TranscriptMessage, error) {
	raw, err := s.client.LRange(ctx, transcriptKey(companyID, caller), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("transcript: list: %w", err)
	}

	out := make([]TranscriptMessage, 0, len(raw))
	for _, item := range raw {
		var msg TranscriptMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("transcript: decode message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}

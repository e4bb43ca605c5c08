package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranscriptStore(t *testing.T, maxMessages int) *TranscriptStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewTranscriptStore(client, maxMessages)
}

func TestTranscriptStoreAppendAndList(t *testing.T) {
	store := newTestTranscriptStore(t, 50)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "company-1", "5511999998888", TranscriptMessage{Role: "user", Body: "agendar maria amanha"}))
	require.NoError(t, store.Append(ctx, "company-1", "5511999998888", TranscriptMessage{Role: "assistant", Body: "Agendamento criado"}))

	msgs, err := store.List(ctx, "company-1", "5511999998888")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.NotEmpty(t, msgs[0].ID)
	assert.False(t, msgs[0].Timestamp.IsZero())
}

func TestTranscriptStoreTrimsToCap(t *testing.T) {
	store := newTestTranscriptStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, "company-1", "caller", TranscriptMessage{
			Role: "user",
			Body: fmt.Sprintf("mensagem %d", i),
		}))
	}

	msgs, err := store.List(ctx, "company-1", "caller")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "mensagem 2", msgs[0].Body)
	assert.Equal(t, "mensagem 4", msgs[2].Body)
}

func TestTranscriptStoreDefaultCapMatchesConfig(t *testing.T) {
	store := newTestTranscriptStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 253; i++ {
		require.NoError(t, store.Append(ctx, "company-1", "caller", TranscriptMessage{
			Role: "user",
			Body: fmt.Sprintf("mensagem %d", i),
		}))
	}

	msgs, err := store.List(ctx, "company-1", "caller")
	require.NoError(t, err)
	require.Len(t, msgs, 250)
	assert.Equal(t, "mensagem 3", msgs[0].Body)
}

func TestTranscriptStoreIsolatesConversations(t *testing.T) {
	store := newTestTranscriptStore(t, 50)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "company-1", "caller-a", TranscriptMessage{Role: "user", Body: "oi"}))

	msgs, err := store.List(ctx, "company-1", "caller-b")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = store.List(ctx, "company-2", "caller-a")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

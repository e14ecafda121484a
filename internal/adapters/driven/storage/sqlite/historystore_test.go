package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func newStore(t *testing.T) *HistoryStore {
	t.Helper()
	s, err := NewHistoryStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendRecent_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	userMsg := domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Content:   "what is the warranty period?",
		CreatedAt: time.Now().Add(-time.Minute),
	}
	assistantMsg := domain.Message{
		ID:      uuid.New().String(),
		Role:    domain.RoleAssistant,
		Content: "The warranty period is two years.",
		Context: []string{"Warranty: two years from purchase.", "See section 4."},
	}

	require.NoError(t, s.Append(ctx, userMsg))
	require.NoError(t, s.Append(ctx, assistantMsg))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, userMsg.ID, got[0].ID)
	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Empty(t, got[0].Context)

	assert.Equal(t, assistantMsg.ID, got[1].ID)
	assert.Equal(t, assistantMsg.Content, got[1].Content)
	assert.Equal(t, assistantMsg.Context, got[1].Context)
}

func TestRecent_Limit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, domain.Message{
			ID:        uuid.New().String(),
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// The two newest, oldest first
	assert.Equal(t, "message 3", got[0].Content)
	assert.Equal(t, "message 4", got[1].Content)
}

func TestRecent_SameTimestampKeepsInsertionOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	// A question and its answer are saved with one shared timestamp,
	// and the ids picked here sort against insertion order.
	now := time.Now()
	require.NoError(t, s.Append(ctx, domain.Message{
		ID: "zzzz", Role: domain.RoleUser, Content: "who signs the invoice?", CreatedAt: now,
	}))
	require.NoError(t, s.Append(ctx, domain.Message{
		ID: "aaaa", Role: domain.RoleAssistant, Content: "The finance lead signs it.", CreatedAt: now,
	}))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Equal(t, domain.RoleAssistant, got[1].Role)
}

func TestRecent_Empty(t *testing.T) {
	s := newStore(t)

	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, domain.Message{
		ID: uuid.New().String(), Role: domain.RoleUser, Content: "hi",
	}))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppend_DuplicateID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	msg := domain.Message{ID: "fixed", Role: domain.RoleUser, Content: "hi"}
	require.NoError(t, s.Append(ctx, msg))
	assert.Error(t, s.Append(ctx, msg))
}

package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docquery/internal/providers"
)

func TestRecordFromCall(t *testing.T) {
	ok := RecordFromCall(providers.Call{
		ID:        "c1",
		Operation: "ask_llm",
		Provider:  providers.ProviderInfo{Name: "anthropic", Model: "claude-3-opus-20240229", Key: "team"},
		Duration:  1500 * time.Millisecond,
	})
	assert.Equal(t, "ok", ok.Status)
	assert.Equal(t, "team", ok.KeyAlias)
	assert.Empty(t, ok.ErrorType)

	failed := RecordFromCall(providers.Call{
		Operation: "ask",
		Provider:  providers.ProviderInfo{Name: "groq"},
		Err:       errors.New("429 too many requests"),
	})
	assert.Equal(t, "error", failed.Status)
	assert.Equal(t, string(providers.ErrorRate), failed.ErrorType)
	assert.Equal(t, "429 too many requests", failed.ErrorMessage)
}

// Runs against a real database only when DOCQUERY_TEST_POSTGRES_URL is set.
func TestLLMAuditRepoRoundTrip(t *testing.T) {
	dsn := os.Getenv("DOCQUERY_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("DOCQUERY_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	db, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.EnsureSchema(ctx))

	repo := NewLLMAuditRepo(db)
	id := uuid.NewString()
	repo.Observer(func(err error) { t.Errorf("audit insert: %v", err) })(ctx, providers.Call{
		ID:        id,
		Operation: "ask_llm",
		Provider:  providers.ProviderInfo{Name: "mock", Model: "mock-llm-v1"},
		Duration:  20 * time.Millisecond,
	})

	recs, err := repo.Recent(ctx, 50)
	require.NoError(t, err)
	var found bool
	for _, rec := range recs {
		if rec.CallID == id {
			found = true
			assert.Equal(t, "mock", rec.ProviderName)
			assert.Equal(t, 20*time.Millisecond, rec.Duration)
		}
	}
	assert.True(t, found)
}

// test/e2e/onboarding_flow_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/engine"
	"automata-onboarding/internal/onboarding"
	"automata-onboarding/internal/storage"
	"automata-onboarding/pkg/catalog"
)

// TestOnboardingFlow walks the whole pre-signup journey against a real Redis
// protocol server: describe the business, review recommendations, pick
// templates, then materialize the record into project and automation rows.
func TestOnboardingFlow(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cat := catalog.Default()
	eng := engine.New(cat, engine.WithLogger(log))
	store := onboarding.NewStore(storage.NewRedisKV(client), onboarding.WithLogger(log))
	processor := onboarding.NewProcessor(db, store, cat, log)

	// Step 1: the visitor describes their business and gets a ranked list.
	prompt := "I run a coffee shop and want to celebrate every customer birthday"
	recs := eng.GetRecommendations(prompt, nil)
	require.Len(t, recs, 5)
	assert.Equal(t, "birthday-rewards", recs[0].ID)

	_, err = store.Save(ctx, onboarding.Update{
		BusinessPrompt:  &prompt,
		BusinessContext: &onboarding.ContextUpdate{Industry: onboarding.String("food")},
		Recommendations: recs,
	})
	require.NoError(t, err)
	assert.True(t, store.IsInProgress(ctx))
	assert.False(t, store.IsComplete(ctx))

	// Step 2: two templates are picked; the record survives in Redis.
	for _, id := range []string{"birthday-rewards", "happy-hour-alerts"} {
		added, err := store.ToggleTemplate(ctx, id)
		require.NoError(t, err)
		require.True(t, added)
	}
	assert.True(t, store.IsComplete(ctx))
	assert.True(t, store.CanAddMore(ctx))

	data, err := store.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, prompt, data.BusinessPrompt)
	require.Len(t, data.AIRecommendations, 5)

	// The Redis key carries a TTL matching the record expiry.
	assert.Positive(t, srv.TTL(onboarding.DefaultStorageKey))

	// Step 3: signup happens and the record becomes real rows.
	mock.ExpectExec("INSERT INTO projects").
		WithArgs(sqlmock.AnyArg(), "org-42", "My Restaurant", prompt, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := processor.Process(ctx, "org-42")
	require.NoError(t, err)
	assert.Equal(t, "My Restaurant", result.Project.Name)
	require.Len(t, result.Automations, 2)
	assert.Equal(t, "birthday-rewards", result.Automations[0].TemplateID)
	assert.Equal(t, "happy-hour-alerts", result.Automations[1].TemplateID)

	// Step 4: the journey is consumed; a fresh visit starts clean.
	assert.False(t, store.IsInProgress(ctx))
	data, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestOnboardingFlow_ExpiredRecord checks that a stale record never leaks
// into a new session.
func TestOnboardingFlow_ExpiredRecord(t *testing.T) {
	ctx := context.Background()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	store := onboarding.NewStore(storage.NewRedisKV(client),
		onboarding.WithLogger(logger.NewTestLogger(t)))

	_, err := store.Save(ctx, onboarding.Update{
		BusinessPrompt: onboarding.String("a yoga studio"),
	})
	require.NoError(t, err)

	srv.FastForward(8 * 24 * time.Hour)

	data, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.False(t, store.IsInProgress(ctx))
}

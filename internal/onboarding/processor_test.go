// internal/onboarding/processor_test.go
package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "automata-onboarding/internal/common/errors"
	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/storage"
	"automata-onboarding/pkg/catalog"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestProcessor(t *testing.T) (*Processor, *Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(storage.NewMemoryKV(), WithLogger(logger.NewTestLogger(t)))
	processor := NewProcessor(db, store, catalog.Default(), logger.NewTestLogger(t))
	return processor, store, mock
}

func seedCompletedOnboarding(t *testing.T, store *Store) {
	ctx := context.Background()
	_, err := store.Save(ctx, Update{
		BusinessPrompt:  String("a coffee shop downtown"),
		BusinessContext: &ContextUpdate{Industry: String("food")},
	})
	require.NoError(t, err)

	added, err := store.AddTemplate(ctx, "happy-hour-alerts")
	require.NoError(t, err)
	require.True(t, added)
}

// ==========================
// Processing Tests
// ==========================

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()
	processor, store, mock := createTestProcessor(t)
	seedCompletedOnboarding(t, store)

	added, err := store.AddTemplate(ctx, "birthday-rewards")
	require.NoError(t, err)
	require.True(t, added)

	mock.ExpectExec("INSERT INTO projects").
		WithArgs(sqlmock.AnyArg(), "org-1", "My Restaurant", "a coffee shop downtown", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Happy Hour Alerts", sqlmock.AnyArg(),
			"email", "daily", "promotion", "happy-hour-alerts", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Birthday Rewards", sqlmock.AnyArg(),
			"email", "daily", "birthday", "birthday-rewards", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := processor.Process(ctx, "org-1")
	require.NoError(t, err)

	assert.Equal(t, "org-1", result.Project.OrganizationID)
	assert.Equal(t, "My Restaurant", result.Project.Name)
	assert.NotEmpty(t, result.Project.ID)
	require.Len(t, result.Automations, 2)
	assert.Equal(t, "happy-hour-alerts", result.Automations[0].TemplateID)
	assert.Equal(t, "birthday-rewards", result.Automations[1].TemplateID)

	// The record is consumed on success.
	data, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessor_Process_CustomAutomation(t *testing.T) {
	ctx := context.Background()
	processor, store, mock := createTestProcessor(t)
	seedCompletedOnboarding(t, store)
	require.NoError(t, store.SetCustomAutomation(ctx, "text me when it rains"))

	mock.ExpectExec("INSERT INTO projects").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Happy Hour Alerts", sqlmock.AnyArg(),
			"email", "daily", "promotion", "happy-hour-alerts", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Custom Automation", "text me when it rains",
			"custom", "daily", "custom", nil, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := processor.Process(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, result.Automations, 2)
	assert.Equal(t, "custom", result.Automations[1].Type)
	assert.Empty(t, result.Automations[1].TemplateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessor_Process_SkipsUnknownTemplate(t *testing.T) {
	ctx := context.Background()
	processor, store, mock := createTestProcessor(t)
	seedCompletedOnboarding(t, store)

	added, err := store.AddTemplate(ctx, "no-such-template")
	require.NoError(t, err)
	require.True(t, added)

	mock.ExpectExec("INSERT INTO projects").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := processor.Process(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, result.Automations, 1)
	assert.Equal(t, "happy-hour-alerts", result.Automations[0].TemplateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessor_Process_NothingToProcess(t *testing.T) {
	ctx := context.Background()
	processor, store, mock := createTestProcessor(t)

	// Absent record.
	_, err := processor.Process(ctx, "org-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNothingToProcess, apperrors.CodeOf(err))

	// A record with a prompt but no selections is also not processable.
	require.NoError(t, store.SetBusinessPrompt(ctx, "a bookstore"))
	_, err = processor.Process(ctx, "org-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNothingToProcess, apperrors.CodeOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessor_Process_ProjectInsertFails(t *testing.T) {
	ctx := context.Background()
	processor, store, mock := createTestProcessor(t)
	seedCompletedOnboarding(t, store)

	mock.ExpectExec("INSERT INTO projects").
		WillReturnError(errors.New("connection refused"))

	_, err := processor.Process(ctx, "org-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeProjectCreateFailed, apperrors.CodeOf(err))
	assert.True(t, apperrors.IsRetryable(err))

	// The record survives a failed run and can be retried.
	assert.True(t, processor.HasPending(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessor_Process_AutomationInsertFailureIsSkipped(t *testing.T) {
	ctx := context.Background()
	processor, store, mock := createTestProcessor(t)
	seedCompletedOnboarding(t, store)

	added, err := store.AddTemplate(ctx, "loyalty-program")
	require.NoError(t, err)
	require.True(t, added)

	mock.ExpectExec("INSERT INTO projects").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO automations").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectExec("INSERT INTO automations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := processor.Process(ctx, "org-1")
	require.NoError(t, err)

	// One automation fails, the other still lands.
	require.Len(t, result.Automations, 1)
	assert.Equal(t, "loyalty-program", result.Automations[0].TemplateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessor_Pending(t *testing.T) {
	ctx := context.Background()
	processor, store, _ := createTestProcessor(t)

	assert.False(t, processor.HasPending(ctx))
	data, err := processor.Pending(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	seedCompletedOnboarding(t, store)
	assert.True(t, processor.HasPending(ctx))
	data, err = processor.Pending(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, []string{"happy-hour-alerts"}, data.SelectedTemplates)
}

// ==========================
// Project Naming Tests
// ==========================

func TestProjectNameFor(t *testing.T) {
	tests := []struct {
		industry string
		expected string
	}{
		{"food", "My Restaurant"},
		{"retail", "My Store"},
		{"health", "My Practice"},
		{"technology", "My Tech Company"},
		{"education", "My School"},
		{"service", "My Business"},
		{"politics", "My Business"},
		{"agnostic", "My Business"},
		{"", "My Business"},
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectNameFor(tt.industry))
		})
	}
}

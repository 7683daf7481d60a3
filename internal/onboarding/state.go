// internal/onboarding/state.go
package onboarding

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	apperrors "automata-onboarding/internal/common/errors"
	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/common/metrics"
	"automata-onboarding/internal/models"
	"automata-onboarding/internal/storage"
)

const (
	// DefaultStorageKey is the single slot the record is persisted under.
	DefaultStorageKey = "automata_onboarding"

	// DefaultExpiryDays is the sliding expiry window refreshed on every
	// write.
	DefaultExpiryDays = 7

	// MaxSelections caps combined selection slots: selected templates plus
	// one for a non-empty custom automation.
	MaxSelections = 3
)

const dayMillis = 24 * 60 * 60 * 1000

// Store persists the single onboarding record through a KV backend.
// Reads that encounter an expired, stale-versioned or unparseable record
// delete it and report absence rather than an error.
type Store struct {
	kv            storage.KV
	key           string
	expiry        time.Duration
	maxSelections int
	logger        logger.Logger
	now           func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the storage key, e.g. to scope the record per session.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithExpiryDays overrides the sliding expiry window.
func WithExpiryDays(days int) StoreOption {
	return func(s *Store) { s.expiry = time.Duration(days) * 24 * time.Hour }
}

// WithMaxSelections overrides the selection capacity.
func WithMaxSelections(n int) StoreOption {
	return func(s *Store) { s.maxSelections = n }
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(log logger.Logger) StoreOption {
	return func(s *Store) { s.logger = log }
}

// WithClock injects the time source, for expiry tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over the given KV backend.
func NewStore(kv storage.KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:            kv,
		key:           DefaultStorageKey,
		expiry:        DefaultExpiryDays * 24 * time.Hour,
		maxSelections: MaxSelections,
		logger:        logger.NewNoOpLogger(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithFields(map[string]interface{}{"component": "onboarding-store"})
	return s
}

func (s *Store) defaultData() *models.OnboardingData {
	now := s.now().UnixMilli()
	return &models.OnboardingData{
		Version:           models.OnboardingVersion,
		BusinessContext:   models.BusinessContext{Goals: []string{}, PainPoints: []string{}},
		SelectedTemplates: []string{},
		AIRecommendations: []models.Recommendation{},
		CreatedAt:         now,
		ExpiresAt:         now + int64(s.expiry/time.Millisecond),
	}
}

// Get returns the stored record, or (nil, nil) when absent. A record with a
// mismatched version, a passed expiry deadline or an unparseable body is
// deleted and treated as absent.
func (s *Store) Get(ctx context.Context) (*models.OnboardingData, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, nil
		}
		return nil, apperrors.NewStateReadFailedError(err)
	}

	var data models.OnboardingData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		s.logger.Warn("discarding unparseable onboarding record", map[string]interface{}{
			"error": err,
		})
		s.discard(ctx)
		return nil, nil
	}

	if data.Version != models.OnboardingVersion {
		s.logger.Info("discarding onboarding record with stale version", map[string]interface{}{
			"storedVersion":  data.Version,
			"currentVersion": models.OnboardingVersion,
		})
		s.discard(ctx)
		return nil, nil
	}

	if data.IsExpired(s.now()) {
		s.discard(ctx)
		return nil, nil
	}

	return &data, nil
}

// Save merges the partial update into the existing record (or a fresh
// skeleton), refreshes the sliding expiry and persists.
func (s *Store) Save(ctx context.Context, update Update) (*models.OnboardingData, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = s.defaultData()
	}

	update.apply(data)

	if err := s.persist(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Clear deletes the record unconditionally. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return apperrors.NewStateWriteFailedError(err)
	}
	return nil
}

// IsInProgress reports whether a live record holds a business prompt or at
// least one selected template.
func (s *Store) IsInProgress(ctx context.Context) bool {
	data, _ := s.Get(ctx)
	if data == nil {
		return false
	}
	return strings.TrimSpace(data.BusinessPrompt) != "" || len(data.SelectedTemplates) > 0
}

// IsComplete reports whether a live record has the minimum data to proceed
// to signup: a business prompt and either a selected template or a custom
// automation description.
func (s *Store) IsComplete(ctx context.Context) bool {
	data, _ := s.Get(ctx)
	if data == nil {
		return false
	}
	return strings.TrimSpace(data.BusinessPrompt) != "" &&
		(len(data.SelectedTemplates) > 0 || data.HasCustomAutomation())
}

// SelectedTemplates returns the selected template IDs in selection order.
func (s *Store) SelectedTemplates(ctx context.Context) []string {
	data, _ := s.Get(ctx)
	if data == nil {
		return []string{}
	}
	return data.SelectedTemplates
}

// SelectionCount returns the occupied selection slots.
func (s *Store) SelectionCount(ctx context.Context) int {
	data, _ := s.Get(ctx)
	if data == nil {
		return 0
	}
	return data.SelectionCount()
}

// CanAddMore reports whether a further selection slot is free.
func (s *Store) CanAddMore(ctx context.Context) bool {
	return s.SelectionCount(ctx) < s.maxSelections
}

// AddTemplate appends a template selection. Adding an already-selected ID is
// a no-op success. The add is refused (false, nil) when every selection slot
// is occupied; the custom automation counts as one slot.
func (s *Store) AddTemplate(ctx context.Context, id string) (bool, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if data == nil {
		data = s.defaultData()
	}

	if data.HasTemplate(id) {
		return true, nil
	}
	if data.SelectionCount() >= s.maxSelections {
		metrics.SelectionsRejected.Inc()
		s.logger.Debug("selection refused at capacity", map[string]interface{}{
			"templateId": id,
			"count":      data.SelectionCount(),
		})
		return false, nil
	}

	data.SelectedTemplates = append(data.SelectedTemplates, id)
	if err := s.persist(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveTemplate drops a template selection; absent IDs are a no-op.
func (s *Store) RemoveTemplate(ctx context.Context, id string) error {
	data, err := s.Get(ctx)
	if err != nil || data == nil {
		return err
	}

	kept := data.SelectedTemplates[:0]
	for _, sel := range data.SelectedTemplates {
		if sel != id {
			kept = append(kept, sel)
		}
	}
	data.SelectedTemplates = kept

	return s.persist(ctx, data)
}

// ToggleTemplate removes a selected ID (returning false) or delegates to
// AddTemplate (returning its result).
func (s *Store) ToggleTemplate(ctx context.Context, id string) (bool, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if data != nil && data.HasTemplate(id) {
		return false, s.RemoveTemplate(ctx, id)
	}
	return s.AddTemplate(ctx, id)
}

// SetBusinessPrompt stores the free-text business description.
func (s *Store) SetBusinessPrompt(ctx context.Context, prompt string) error {
	_, err := s.Save(ctx, Update{BusinessPrompt: &prompt})
	return err
}

// SetBusinessContext merges the structured business context.
func (s *Store) SetBusinessContext(ctx context.Context, update ContextUpdate) error {
	_, err := s.Save(ctx, Update{BusinessContext: &update})
	return err
}

// SetRecommendations caches the last computed recommendation list.
func (s *Store) SetRecommendations(ctx context.Context, recs []models.Recommendation) error {
	if recs == nil {
		recs = []models.Recommendation{}
	}
	_, err := s.Save(ctx, Update{Recommendations: recs})
	return err
}

// SetCustomAutomation stores the trimmed custom automation description
// unconditionally. Unlike AddTemplate this never refuses at capacity; the
// calling UI enforces the cap before offering the field.
func (s *Store) SetCustomAutomation(ctx context.Context, description string) error {
	trimmed := strings.TrimSpace(description)
	_, err := s.Save(ctx, Update{CustomAutomation: &trimmed})
	return err
}

// CustomAutomation returns the stored custom automation description.
func (s *Store) CustomAutomation(ctx context.Context) string {
	data, _ := s.Get(ctx)
	if data == nil {
		return ""
	}
	return data.CustomAutomation
}

// DaysUntilExpiry returns the remaining lifetime in days, rounded up, or 0
// when no live record exists.
func (s *Store) DaysUntilExpiry(ctx context.Context) int {
	data, _ := s.Get(ctx)
	if data == nil || data.ExpiresAt == 0 {
		return 0
	}
	remaining := data.ExpiresAt - s.now().UnixMilli()
	if remaining <= 0 {
		return 0
	}
	return int((remaining + dayMillis - 1) / dayMillis)
}

// persist refreshes the sliding expiry and writes the record with a
// matching storage TTL.
func (s *Store) persist(ctx context.Context, data *models.OnboardingData) error {
	now := s.now()
	if data.CreatedAt == 0 {
		data.CreatedAt = now.UnixMilli()
	}
	data.ExpiresAt = now.Add(s.expiry).UnixMilli()

	raw, err := json.Marshal(data)
	if err != nil {
		return apperrors.NewStateWriteFailedError(err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw), s.expiry); err != nil {
		return apperrors.NewStateWriteFailedError(err)
	}

	metrics.OnboardingSaves.Inc()
	return nil
}

// discard drops a record found stale or unreadable. Best-effort: a failed
// delete only means the next read repeats the cleanup.
func (s *Store) discard(ctx context.Context) {
	metrics.OnboardingExpired.Inc()
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Warn("failed to delete stale onboarding record", map[string]interface{}{
			"error": err,
		})
	}
}

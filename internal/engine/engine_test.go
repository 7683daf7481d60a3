// internal/engine/engine_test.go
package engine

import (
	"testing"

	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/models"
	"automata-onboarding/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestEngine(t *testing.T) *Engine {
	return New(catalog.Default(), WithLogger(logger.NewTestLogger(t)))
}

func recommendationIDs(recs []models.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	return ids
}

// ==========================
// Industry Detection Tests
// ==========================

func TestEngine_DetectIndustry(t *testing.T) {
	e := createTestEngine(t)

	tests := []struct {
		name     string
		prompt   string
		expected models.Industry
	}{
		{"coffee shop", "I run a small coffee shop downtown", models.IndustryFood},
		{"restaurant uppercase", "FAMILY RESTAURANT with seasonal menu", models.IndustryFood},
		{"gym", "a boutique gym for busy professionals", models.IndustryHealth},
		{"clothing boutique", "a clothing boutique for young parents", models.IndustryRetail},
		{"law firm", "a small law firm", models.IndustryService},
		{"software startup", "a software startup for landlords", models.IndustryTechnology},
		{"tutoring", "a tutoring school for exam prep", models.IndustryEducation},
		{"political campaign", "we organize to vote for change", models.IndustryPolitics},
		{"empty prompt", "", models.IndustryAgnostic},
		{"no match", "we make brass hinges", models.IndustryAgnostic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.DetectIndustry(tt.prompt))
		})
	}
}

func TestEngine_DetectIndustry_FirstMatchWins(t *testing.T) {
	e := createTestEngine(t)

	// "tech cafe" matches both the food and technology patterns; the food
	// pattern is evaluated first.
	assert.Equal(t, models.IndustryFood, e.DetectIndustry("a tech cafe for gamers"))

	// "fitness store" matches health before retail.
	assert.Equal(t, models.IndustryHealth, e.DetectIndustry("a fitness store"))
}

// ==========================
// Keyword Extraction Tests
// ==========================

func TestEngine_ExtractKeywords(t *testing.T) {
	e := createTestEngine(t)

	tests := []struct {
		name     string
		prompt   string
		expected []string
	}{
		{
			name:     "single keyword",
			prompt:   "I want a loyalty scheme",
			expected: []string{"loyalty"},
		},
		{
			name:     "multiple keywords in table order",
			prompt:   "celebrate every customer birthday",
			expected: []string{"birthday", "celebrate"},
		},
		{
			name:     "whole words only",
			prompt:   "we carter for carters",
			expected: nil,
		},
		{
			name:     "plural form does not match",
			prompt:   "celebrate customer birthdays",
			expected: []string{"celebrate"},
		},
		{
			name:     "punctuation stripped before matching",
			prompt:   "birthday! offer, and discount.",
			expected: []string{"birthday", "discount", "offer"},
		},
		{
			name:     "case insensitive",
			prompt:   "SEND A NEWSLETTER",
			expected: []string{"newsletter"},
		},
		{
			name:     "empty prompt",
			prompt:   "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.ExtractKeywords(tt.prompt))
		})
	}
}

// ==========================
// Scoring Tests
// ==========================

func TestEngine_CalculateScore(t *testing.T) {
	e := createTestEngine(t)
	cat := catalog.Default()

	birthday, ok := cat.ByID("birthday-rewards")
	require.True(t, ok)
	happyHour, ok := cat.ByID("happy-hour-alerts")
	require.True(t, ok)
	abandonedCart, ok := cat.ByID("abandoned-cart")
	require.True(t, ok)

	tests := []struct {
		name     string
		template models.Template
		industry models.Industry
		keywords []string
		expected int
	}{
		{
			// 5 universal + 10 food boost
			name:     "universal template with industry boost",
			template: birthday,
			industry: models.IndustryFood,
			expected: 15,
		},
		{
			// 5 universal + 10 boost + 10 birthday + 7 celebrate
			name:     "keyword weights are additive",
			template: birthday,
			industry: models.IndustryFood,
			keywords: []string{"birthday", "celebrate"},
			expected: 32,
		},
		{
			// 15 industry match + 10 food boost
			name:     "industry-specific template",
			template: happyHour,
			industry: models.IndustryFood,
			expected: 25,
		},
		{
			name:     "no affinity scores zero",
			template: abandonedCart,
			industry: models.IndustryFood,
			expected: 0,
		},
		{
			name:     "keyword for another template does not count",
			template: abandonedCart,
			industry: models.IndustryFood,
			keywords: []string{"birthday"},
			expected: 0,
		},
		{
			// 15 retail match + 10 retail boost + 10 cart
			name:     "retail cart recovery",
			template: abandonedCart,
			industry: models.IndustryRetail,
			keywords: []string{"cart"},
			expected: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.CalculateScore(tt.template, tt.industry, tt.keywords))
		})
	}
}

func TestEngine_CalculateScore_MonotoneInKeywords(t *testing.T) {
	e := createTestEngine(t)
	cat := catalog.Default()

	loyalty, ok := cat.ByID("loyalty-program")
	require.True(t, ok)

	base := e.CalculateScore(loyalty, models.IndustryFood, nil)
	withOne := e.CalculateScore(loyalty, models.IndustryFood, []string{"loyalty"})
	withTwo := e.CalculateScore(loyalty, models.IndustryFood, []string{"loyalty", "points"})

	assert.Greater(t, withOne, base)
	assert.Greater(t, withTwo, withOne)
}

// ==========================
// Reasoning Tests
// ==========================

func TestEngine_GenerateReasoning(t *testing.T) {
	e := createTestEngine(t)
	cat := catalog.Default()

	birthday, ok := cat.ByID("birthday-rewards")
	require.True(t, ok)

	t.Run("industry-specific sentence", func(t *testing.T) {
		got := e.GenerateReasoning(birthday, models.IndustryFood, nil)
		assert.Contains(t, got, "Restaurants")
	})

	t.Run("default sentence for uncovered industry", func(t *testing.T) {
		got := e.GenerateReasoning(birthday, models.IndustryHealth, nil)
		assert.Contains(t, got, "481%")
	})

	t.Run("generic sentence for unknown template", func(t *testing.T) {
		unknown := models.Template{ID: "mystery", Name: "Mystery", Industries: []string{"all"}}
		assert.Equal(t, GenericReasoning, e.GenerateReasoning(unknown, models.IndustryFood, nil))
	})

	t.Run("keywords never change the sentence", func(t *testing.T) {
		without := e.GenerateReasoning(birthday, models.IndustryFood, nil)
		with := e.GenerateReasoning(birthday, models.IndustryFood, []string{"birthday", "celebrate"})
		assert.Equal(t, without, with)
	})
}

// ==========================
// Recommendation Ranking Tests
// ==========================

func TestEngine_GetRecommendations_CoffeeShop(t *testing.T) {
	e := createTestEngine(t)

	recs := e.GetRecommendations("I run a coffee shop and want to celebrate every customer birthday", nil)

	require.Len(t, recs, 5)
	assert.Equal(t, []string{
		"birthday-rewards",
		"happy-hour-alerts",
		"loyalty-program",
		"monthly-newsletter",
		"post-visit-follow-up",
	}, recommendationIDs(recs))

	assert.Equal(t, 32, recs[0].Score)
	assert.Equal(t, []string{"birthday", "celebrate"}, recs[0].MatchedKeywords)
	assert.Contains(t, recs[0].Reasoning, "Restaurants")

	// Equal scores rank by name: Happy Hour Alerts before Loyalty Program.
	assert.Equal(t, recs[1].Score, recs[2].Score)
}

func TestEngine_GetRecommendations_EmptyInput(t *testing.T) {
	e := createTestEngine(t)

	for _, prompt := range []string{"", "   "} {
		recs := e.GetRecommendations(prompt, nil)

		require.Len(t, recs, 3)
		assert.Equal(t, []string{"birthday-rewards", "welcome-series", "monthly-newsletter"},
			recommendationIDs(recs))
		for _, rec := range recs {
			assert.Equal(t, BackfillScore, rec.Score)
			assert.Empty(t, rec.MatchedKeywords)
			assert.NotEmpty(t, rec.Reasoning)
		}
	}
}

func TestEngine_GetRecommendations_ContextIndustryOverride(t *testing.T) {
	e := createTestEngine(t)

	// The prompt alone detects food; the structured context wins, so the
	// food-only template scores zero and drops out while the retail-only
	// template ranks.
	recs := e.GetRecommendations("coffee shop", &models.BusinessContext{Industry: "retail"})

	ids := recommendationIDs(recs)
	assert.Contains(t, ids, "abandoned-cart")
	assert.NotContains(t, ids, "happy-hour-alerts")
}

func TestEngine_GetRecommendations_ContextKeywords(t *testing.T) {
	e := createTestEngine(t)

	bctx := &models.BusinessContext{
		Goals:      []string{"ask every customer to review us"},
		PainPoints: []string{"customers abandon their cart"},
	}
	recs := e.GetRecommendations("a small store", bctx)

	ids := recommendationIDs(recs)
	assert.Contains(t, ids, "review-request")
	assert.Contains(t, ids, "abandoned-cart")
}

func TestEngine_GetRecommendations_UnknownContextIndustry(t *testing.T) {
	e := createTestEngine(t)

	recs := e.GetRecommendations("we sell products online", &models.BusinessContext{Industry: "aerospace"})

	// Unknown industries get no template bonus but still yield a ranked list.
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.Positive(t, rec.Score)
	}
}

func TestEngine_GetRecommendations_Deterministic(t *testing.T) {
	e := createTestEngine(t)

	prompt := "a yoga studio fighting appointment noshow problems"
	first := e.GetRecommendations(prompt, nil)
	second := e.GetRecommendations(prompt, nil)

	assert.Equal(t, first, second)
}

func TestEngine_GetRecommendations_CapAndBackfill(t *testing.T) {
	e := createTestEngine(t)

	t.Run("never more than five", func(t *testing.T) {
		recs := e.GetRecommendations("loyalty birthday appointment review welcome newsletter cart", nil)
		assert.LessOrEqual(t, len(recs), MaxRecommendations)
	})

	t.Run("full catalog always yields at least three", func(t *testing.T) {
		recs := e.GetRecommendations("we make brass hinges", nil)
		assert.GreaterOrEqual(t, len(recs), MinRecommendations)
	})

	t.Run("backfill skips present and missing defaults", func(t *testing.T) {
		cat := catalog.Default()
		happyHour, _ := cat.ByID("happy-hour-alerts")
		abandonedCart, _ := cat.ByID("abandoned-cart")
		birthday, _ := cat.ByID("birthday-rewards")

		small := New([]models.Template{happyHour, abandonedCart, birthday},
			WithLogger(logger.NewTestLogger(t)))
		recs := small.GetRecommendations("a downtown coffee bar", nil)

		// Two genuine matches; birthday-rewards is already ranked and the
		// other defaults are absent from the catalog, so the list stays
		// below three without duplicates or phantom entries.
		assert.Equal(t, []string{"happy-hour-alerts", "birthday-rewards"}, recommendationIDs(recs))
	})
}

func TestEngine_GetRecommendations_EmptyCatalog(t *testing.T) {
	e := New(nil, WithLogger(logger.NewTestLogger(t)))

	assert.Empty(t, e.GetRecommendations("coffee shop", nil))
	assert.Empty(t, e.GetRecommendations("", nil))
}

// ==========================
// Industry Defaults Tests
// ==========================

func TestEngine_IndustryDefaults(t *testing.T) {
	e := createTestEngine(t)

	t.Run("food list in boost order", func(t *testing.T) {
		recs := e.IndustryDefaults(models.IndustryFood)
		require.Len(t, recs, 3)
		assert.Equal(t, []string{"happy-hour-alerts", "loyalty-program", "birthday-rewards"},
			recommendationIDs(recs))
		for _, rec := range recs {
			assert.Equal(t, IndustryDefaultScore, rec.Score)
			assert.Empty(t, rec.MatchedKeywords)
		}
	})

	t.Run("unknown industry falls back to agnostic list", func(t *testing.T) {
		recs := e.IndustryDefaults(models.Industry("aerospace"))
		assert.Equal(t, []string{"welcome-series", "birthday-rewards", "monthly-newsletter"},
			recommendationIDs(recs))
	})

	t.Run("missing catalog entries are skipped", func(t *testing.T) {
		partial := []models.Template{}
		for _, tmpl := range catalog.Default() {
			if tmpl.ID != "loyalty-program" {
				partial = append(partial, tmpl)
			}
		}
		recs := New(partial, WithLogger(logger.NewTestLogger(t))).IndustryDefaults(models.IndustryFood)
		assert.Equal(t, []string{"happy-hour-alerts", "birthday-rewards"}, recommendationIDs(recs))
	})
}

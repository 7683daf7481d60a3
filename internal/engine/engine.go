// internal/engine/engine.go
package engine

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/common/metrics"
	"automata-onboarding/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// MaxRecommendations caps the ranked list returned to the host UI.
	MaxRecommendations = 5

	// MinRecommendations is the threshold below which the list is padded
	// from BackfillDefaults.
	MinRecommendations = 3

	// BackfillScore is the forced score of a backfilled recommendation.
	BackfillScore = 1

	// IndustryDefaultScore is the forced score of entries returned by
	// IndustryDefaults.
	IndustryDefaultScore = 10

	scoreUniversal     = 5
	scoreIndustryMatch = 15
	scoreIndustryBoost = 10
)

// nonWord strips punctuation while preserving word boundaries, so
// "birthday-rewards!" normalizes to "birthday rewards ".
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Engine scores a fixed template catalog against free-text business
// descriptions. It holds no mutable state: every call re-reads the injected
// catalog and tables, and identical inputs produce identical output.
type Engine struct {
	catalog  []models.Template
	tables   *Tables
	logger   logger.Logger
	collator *collate.Collator
}

// Option configures an Engine.
type Option func(*Engine)

// WithTables replaces the default lookup tables, for tests and fixtures.
func WithTables(t *Tables) Option {
	return func(e *Engine) { e.tables = t }
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) { e.logger = log }
}

// New creates an engine over the given catalog.
func New(catalog []models.Template, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		tables:  DefaultTables(),
		logger:  logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tables.compile()
	e.collator = collate.New(language.English)
	e.logger = e.logger.WithFields(map[string]interface{}{"component": "recommendation-engine"})
	return e
}

// DetectIndustry classifies a business prompt into one of the eight industry
// tags. Patterns are tested in table order and the first match wins; an
// empty prompt or no match yields agnostic.
func (e *Engine) DetectIndustry(prompt string) models.Industry {
	if prompt == "" {
		return models.IndustryAgnostic
	}

	lower := strings.ToLower(prompt)
	for _, ip := range e.tables.IndustryPatterns {
		if ip.Pattern.MatchString(lower) {
			return ip.Industry
		}
	}

	return models.IndustryAgnostic
}

// ExtractKeywords returns the mapping keywords present in the prompt as
// whole words, in keyword-table order. The prompt is lowercased and
// punctuation is replaced with spaces before matching.
func (e *Engine) ExtractKeywords(prompt string) []string {
	if prompt == "" {
		return nil
	}

	normalized := nonWord.ReplaceAllString(strings.ToLower(prompt), " ")

	var keywords []string
	for _, km := range e.tables.Keywords {
		if km.re.MatchString(normalized) {
			keywords = append(keywords, km.Keyword)
		}
	}

	return keywords
}

// CalculateScore computes the additive relevance score of one template for
// the detected industry and extracted keyword set. All terms are
// non-negative, so the result is never below zero.
func (e *Engine) CalculateScore(t models.Template, industry models.Industry, keywords []string) int {
	score := 0

	if t.IsUniversal() {
		score += scoreUniversal
	}
	if t.HasIndustry(string(industry)) {
		score += scoreIndustryMatch
	}

	for _, boosted := range e.tables.boostsFor(industry) {
		if boosted == t.ID {
			score += scoreIndustryBoost
			break
		}
	}

	for _, kw := range keywords {
		if km, ok := e.keywordMapping(kw); ok && contains(km.Templates, t.ID) {
			score += km.Weight
		}
	}

	return score
}

// GenerateReasoning returns the one-sentence explanation for recommending a
// template. The sentence depends only on template ID and industry; the
// keyword argument is accepted for interface symmetry but never consulted.
func (e *Engine) GenerateReasoning(t models.Template, industry models.Industry, _ []string) string {
	entry, ok := e.tables.Reasoning[t.ID]
	if !ok {
		return GenericReasoning
	}
	if sentence, ok := entry.ByIndustry[industry]; ok {
		return sentence
	}
	return entry.Default
}

// GetRecommendations ranks the catalog for a business prompt and optional
// structured context, returning at most MaxRecommendations entries. The
// result is deterministic: ties are broken by collated template name, and
// backfilled defaults follow the fixed default-list order.
func (e *Engine) GetRecommendations(prompt string, bctx *models.BusinessContext) []models.Recommendation {
	start := time.Now()

	industry := e.DetectIndustry(prompt)
	contextIndustry := false
	if bctx != nil && bctx.Industry != "" {
		// Unknown industry strings are accepted verbatim; they simply
		// match no bonus or boost list.
		industry = models.Industry(bctx.Industry)
		contextIndustry = true
	}

	keywords := e.ExtractKeywords(prompt)
	if bctx != nil {
		for _, goal := range bctx.Goals {
			keywords = append(keywords, e.ExtractKeywords(goal)...)
		}
		for _, pain := range bctx.PainPoints {
			keywords = append(keywords, e.ExtractKeywords(pain)...)
		}
	}
	keywords = dedupe(keywords)

	var recommendations []models.Recommendation
	if strings.TrimSpace(prompt) == "" && !contextIndustry && len(keywords) == 0 {
		// Nothing to score on: the caller gets the popular defaults.
		recommendations = e.backfill(nil, industry)
	} else {
		scored := make([]models.Recommendation, 0, len(e.catalog))
		for _, t := range e.catalog {
			scored = append(scored, models.Recommendation{
				Template:        t,
				Score:           e.CalculateScore(t, industry, keywords),
				Reasoning:       e.GenerateReasoning(t, industry, keywords),
				MatchedKeywords: e.matchedKeywords(t, keywords),
			})
		}

		sortRecommendations(scored, e.collator)

		for _, rec := range scored {
			if rec.Score <= 0 {
				continue
			}
			recommendations = append(recommendations, rec)
			if len(recommendations) == MaxRecommendations {
				break
			}
		}

		if len(recommendations) < MinRecommendations {
			recommendations = e.backfill(recommendations, industry)
		}
	}

	metrics.RecommendationsComputed.WithLabelValues(string(industry)).Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	e.logger.Debug("recommendations computed", map[string]interface{}{
		"industry":     industry,
		"keywordCount": len(keywords),
		"resultCount":  len(recommendations),
	})

	return recommendations
}

// IndustryDefaults returns the boost-list templates for an industry (or the
// agnostic fallback list), each with a fixed score and empty-keyword
// reasoning, in boost-list order. IDs missing from the catalog are skipped.
func (e *Engine) IndustryDefaults(industry models.Industry) []models.Recommendation {
	var out []models.Recommendation
	for _, id := range e.tables.boostsFor(industry) {
		t, ok := e.findTemplate(id)
		if !ok {
			continue
		}
		out = append(out, models.Recommendation{
			Template:        t,
			Score:           IndustryDefaultScore,
			Reasoning:       e.GenerateReasoning(t, industry, nil),
			MatchedKeywords: []string{},
		})
	}
	return out
}

// backfill appends defaults not already present until MaxRecommendations
// entries exist or the default list is exhausted. The already-ranked slice
// is never re-sorted; defaults keep their fixed list order.
func (e *Engine) backfill(recommendations []models.Recommendation, industry models.Industry) []models.Recommendation {
	for _, id := range e.tables.BackfillDefaults {
		if len(recommendations) >= MaxRecommendations {
			break
		}
		if hasRecommendation(recommendations, id) {
			continue
		}
		t, ok := e.findTemplate(id)
		if !ok {
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Template:        t,
			Score:           BackfillScore,
			Reasoning:       e.GenerateReasoning(t, industry, nil),
			MatchedKeywords: []string{},
		})
	}
	return recommendations
}

func (e *Engine) matchedKeywords(t models.Template, keywords []string) []string {
	matched := []string{}
	for _, kw := range keywords {
		if km, ok := e.keywordMapping(kw); ok && contains(km.Templates, t.ID) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func (e *Engine) keywordMapping(keyword string) (KeywordMapping, bool) {
	for _, km := range e.tables.Keywords {
		if km.Keyword == keyword {
			return km, true
		}
	}
	return KeywordMapping{}, false
}

func (e *Engine) findTemplate(id string) (models.Template, bool) {
	for _, t := range e.catalog {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

func sortRecommendations(recs []models.Recommendation, c *collate.Collator) {
	// Score descending, then collated name ascending so equal scores rank
	// deterministically.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return c.CompareString(recs[i].Name, recs[j].Name) < 0
	})
}

func hasRecommendation(recs []models.Recommendation, id string) bool {
	for _, rec := range recs {
		if rec.ID == id {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func dedupe(keywords []string) []string {
	if len(keywords) == 0 {
		return keywords
	}
	seen := make(map[string]bool, len(keywords))
	out := keywords[:0]
	for _, kw := range keywords {
		if !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

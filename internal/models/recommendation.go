// internal/models/recommendation.go
package models

// Industry is the coarse business-category tag used to bias template scoring.
type Industry string

const (
	IndustryFood       Industry = "food"
	IndustryHealth     Industry = "health"
	IndustryRetail     Industry = "retail"
	IndustryService    Industry = "service"
	IndustryTechnology Industry = "technology"
	IndustryEducation  Industry = "education"
	IndustryPolitics   Industry = "politics"
	IndustryAgnostic   Industry = "agnostic"
)

// BusinessContext is the structured context collected alongside the free-text
// business prompt. Industry is a plain string on purpose: values supplied by
// the host UI are accepted verbatim and simply fail to match any
// industry-specific bonus when unknown.
type BusinessContext struct {
	Industry     string   `json:"industry"`
	Description  string   `json:"description"`
	Goals        []string `json:"goals"`
	PainPoints   []string `json:"painPoints"`
	TargetMarket string   `json:"targetMarket"`
	Location     string   `json:"location"`
}

// Recommendation is a scored catalog template with human-readable reasoning
// and the keywords that contributed to its score.
type Recommendation struct {
	Template
	Score           int      `json:"score"`
	Reasoning       string   `json:"reasoning"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// internal/models/onboarding.go
package models

import (
	"strings"
	"time"
)

// OnboardingVersion is the schema version of the persisted onboarding blob.
// A stored record with any other version is discarded on read.
const OnboardingVersion = 1

// OnboardingData is the single persisted record capturing a prospective
// user's in-progress business description and template selections before an
// account exists. Timestamps are Unix milliseconds, matching the wire format
// the browser clients wrote.
type OnboardingData struct {
	Version           int              `json:"version"`
	BusinessPrompt    string           `json:"businessPrompt"`
	BusinessContext   BusinessContext  `json:"businessContext"`
	SelectedTemplates []string         `json:"selectedTemplates"`
	CustomAutomation  string           `json:"customAutomation"`
	AIRecommendations []Recommendation `json:"aiRecommendations"`
	CreatedAt         int64            `json:"createdAt"`
	ExpiresAt         int64            `json:"expiresAt"`
}

// IsExpired reports whether the record has passed its expiry deadline.
func (d *OnboardingData) IsExpired(now time.Time) bool {
	return d.ExpiresAt > 0 && now.UnixMilli() > d.ExpiresAt
}

// HasTemplate reports whether the template ID is already selected.
func (d *OnboardingData) HasTemplate(id string) bool {
	for _, sel := range d.SelectedTemplates {
		if sel == id {
			return true
		}
	}
	return false
}

// HasCustomAutomation reports whether a non-empty custom automation
// description is present.
func (d *OnboardingData) HasCustomAutomation() bool {
	return strings.TrimSpace(d.CustomAutomation) != ""
}

// SelectionCount is the number of occupied selection slots: selected
// templates plus one if a custom automation is described.
func (d *OnboardingData) SelectionCount() int {
	count := len(d.SelectedTemplates)
	if d.HasCustomAutomation() {
		count++
	}
	return count
}

// internal/onboarding/merge.go
package onboarding

import "automata-onboarding/internal/models"

// Update is a partial write against the onboarding record. Nil fields are
// left untouched; set scalars and slices replace the stored value wholesale,
// and a set BusinessContext merges field-wise into the stored context.
type Update struct {
	BusinessPrompt    *string
	BusinessContext   *ContextUpdate
	SelectedTemplates []string
	CustomAutomation  *string
	Recommendations   []models.Recommendation
}

// ContextUpdate is a partial write against the nested business context.
type ContextUpdate struct {
	Industry     *string
	Description  *string
	Goals        []string
	PainPoints   []string
	TargetMarket *string
	Location     *string
}

// apply merges the update into the record. Each field has one explicit rule
// instead of a generic object walker, so the merge semantics stay auditable.
func (u Update) apply(d *models.OnboardingData) {
	if u.BusinessPrompt != nil {
		d.BusinessPrompt = *u.BusinessPrompt
	}
	if u.BusinessContext != nil {
		u.BusinessContext.apply(&d.BusinessContext)
	}
	if u.SelectedTemplates != nil {
		d.SelectedTemplates = u.SelectedTemplates
	}
	if u.CustomAutomation != nil {
		d.CustomAutomation = *u.CustomAutomation
	}
	if u.Recommendations != nil {
		d.AIRecommendations = u.Recommendations
	}
}

func (c ContextUpdate) apply(bc *models.BusinessContext) {
	if c.Industry != nil {
		bc.Industry = *c.Industry
	}
	if c.Description != nil {
		bc.Description = *c.Description
	}
	if c.Goals != nil {
		bc.Goals = c.Goals
	}
	if c.PainPoints != nil {
		bc.PainPoints = c.PainPoints
	}
	if c.TargetMarket != nil {
		bc.TargetMarket = *c.TargetMarket
	}
	if c.Location != nil {
		bc.Location = *c.Location
	}
}

// String is a convenience for building pointer fields in updates.
func String(s string) *string {
	return &s
}

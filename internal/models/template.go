// internal/models/template.go
package models

// IndustryAll is the sentinel tag marking a template relevant to every industry.
const IndustryAll = "all"

// Template is a catalog entry describing a prebuilt automation type.
// The recommendation engine only interprets ID, Name and Industries; the
// remaining fields are display metadata passed through unchanged.
type Template struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Icon          string                 `json:"icon,omitempty"`
	Type          string                 `json:"type,omitempty"`
	Frequency     string                 `json:"frequency,omitempty"`
	Industries    []string               `json:"industries"`
	TargetSegment string                 `json:"targetSegment,omitempty"`
	Config        map[string]interface{} `json:"config,omitempty"`
}

// HasIndustry reports whether the template carries the given industry tag.
func (t Template) HasIndustry(tag string) bool {
	for _, ind := range t.Industries {
		if ind == tag {
			return true
		}
	}
	return false
}

// IsUniversal reports whether the template is tagged for all industries.
func (t Template) IsUniversal() bool {
	return t.HasIndustry(IndustryAll)
}

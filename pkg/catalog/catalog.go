// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	apperrors "automata-onboarding/internal/common/errors"
	"automata-onboarding/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Template aliases the shared model so catalog documents unmarshal straight
// into engine-consumable records.
type Template = models.Template

// Catalog is the ordered, read-only list of automation templates the engine
// scores against. Order is the display order of the host application.
type Catalog []Template

// Load reads and validates a catalog document from disk.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(path, err)
	}
	return Parse(data)
}

// Parse validates raw catalog JSON against the embedded schema and returns
// the typed catalog.
func Parse(data []byte) (Catalog, error) {
	schemaLoader := gojsonschema.NewStringLoader(templateCatalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, apperrors.NewCatalogValidationFailedError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, apperrors.NewCatalogValidationFailedError(strings.Join(details, "; "))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewCatalogValidationFailedError(err.Error())
	}

	seen := make(map[string]bool, len(doc.Templates))
	for _, t := range doc.Templates {
		if seen[t.ID] {
			return nil, apperrors.NewCatalogValidationFailedError(
				fmt.Sprintf("duplicate template id %q", t.ID))
		}
		seen[t.ID] = true
	}

	return Catalog(doc.Templates), nil
}

// ByID returns the template with the given ID.
func (c Catalog) ByID(id string) (Template, bool) {
	for _, t := range c {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ByIndustry returns templates tagged for the industry or for all industries.
// An empty tag returns the whole catalog.
func (c Catalog) ByIndustry(tag string) Catalog {
	if tag == "" {
		return c
	}
	out := make(Catalog, 0, len(c))
	for _, t := range c {
		if t.IsUniversal() || t.HasIndustry(tag) {
			out = append(out, t)
		}
	}
	return out
}

// ByType returns templates of the given type. An empty type returns the
// whole catalog.
func (c Catalog) ByType(typ string) Catalog {
	if typ == "" {
		return c
	}
	out := make(Catalog, 0, len(c))
	for _, t := range c {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// IDs returns the template IDs in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, t := range c {
		ids[i] = t.ID
	}
	return ids
}

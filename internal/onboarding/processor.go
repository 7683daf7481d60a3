// internal/onboarding/processor.go
package onboarding

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "automata-onboarding/internal/common/errors"
	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/common/metrics"
	"automata-onboarding/internal/models"
	"automata-onboarding/pkg/catalog"
)

// ProjectRecord is the project row created from an onboarding record.
type ProjectRecord struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
}

// AutomationRecord is one automation row created from a selected template or
// the custom automation description.
type AutomationRecord struct {
	ID         string
	ProjectID  string
	TemplateID string
	Name       string
	Type       string
}

// Result reports everything Process created.
type Result struct {
	Project     ProjectRecord
	Automations []AutomationRecord
}

// Processor converts a completed onboarding record into a project with
// its selected automations. Created automations start inactive so the new
// owner reviews each one before anything sends.
type Processor struct {
	db      *sql.DB
	store   *Store
	catalog catalog.Catalog
	logger  logger.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(db *sql.DB, store *Store, cat catalog.Catalog, log logger.Logger) *Processor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Processor{
		db:      db,
		store:   store,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"component": "onboarding-processor"}),
	}
}

// HasPending reports whether a completed onboarding record is waiting.
func (p *Processor) HasPending(ctx context.Context) bool {
	return p.store.IsComplete(ctx)
}

// Pending returns the waiting record without consuming it.
func (p *Processor) Pending(ctx context.Context) (*models.OnboardingData, error) {
	return p.store.Get(ctx)
}

// Process materializes the waiting onboarding record for an organization:
// one project row plus one automation row per selected template and one for
// a non-empty custom automation description. The record is cleared on
// success. A failed project insert aborts; a failed automation insert is
// logged and skipped so one bad template does not lose the rest.
func (p *Processor) Process(ctx context.Context, organizationID string) (*Result, error) {
	data, err := p.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil || (len(data.SelectedTemplates) == 0 && !data.HasCustomAutomation()) {
		return nil, apperrors.NewNothingToProcessError()
	}

	industry := data.BusinessContext.Industry
	project := ProjectRecord{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           ProjectNameFor(industry),
		Description:    strings.TrimSpace(data.BusinessPrompt),
	}

	now := time.Now().UTC()
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO projects (id, organization_id, name, description, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		project.ID, project.OrganizationID, project.Name, project.Description, true, now)
	if err != nil {
		return nil, apperrors.NewProjectCreateFailedError(err)
	}

	p.logger.Info("project created from onboarding", map[string]interface{}{
		"projectId":      project.ID,
		"organizationId": organizationID,
		"industry":       industry,
	})

	result := &Result{Project: project}

	for _, templateID := range data.SelectedTemplates {
		t, ok := p.catalog.ByID(templateID)
		if !ok {
			p.logger.Warn("skipping selected template missing from catalog", map[string]interface{}{
				"templateId": templateID,
			})
			continue
		}

		rec := AutomationRecord{
			ID:         uuid.New().String(),
			ProjectID:  project.ID,
			TemplateID: t.ID,
			Name:       t.Name,
			Type:       t.Type,
		}
		_, err := p.db.ExecContext(ctx,
			`INSERT INTO automations (id, project_id, name, description, type, frequency, icon, template_id, is_active, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			rec.ID, rec.ProjectID, t.Name, t.Description, t.Type, t.Frequency, t.Icon, t.ID, false, now)
		if err != nil {
			p.logger.WithError(apperrors.NewAutomationCreateFailedError(t.ID, err)).
				Error("failed to create automation", nil)
			continue
		}
		result.Automations = append(result.Automations, rec)
	}

	if data.HasCustomAutomation() {
		rec := AutomationRecord{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Name:      "Custom Automation",
			Type:      "custom",
		}
		_, err := p.db.ExecContext(ctx,
			`INSERT INTO automations (id, project_id, name, description, type, frequency, icon, template_id, is_active, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			rec.ID, rec.ProjectID, rec.Name, data.CustomAutomation, rec.Type, "daily", "custom", nil, false, now)
		if err != nil {
			p.logger.WithError(err).Error("failed to create custom automation", nil)
		} else {
			result.Automations = append(result.Automations, rec)
		}
	}

	if err := p.store.Clear(ctx); err != nil {
		p.logger.WithError(err).Warn("failed to clear processed onboarding record", nil)
	}

	metrics.OnboardingProcessed.Inc()
	p.logger.Info("onboarding processed", map[string]interface{}{
		"projectId":       project.ID,
		"automationCount": len(result.Automations),
	})

	return result, nil
}

// ProjectNameFor picks the placeholder project name for a detected industry.
// Users rename the project later; the name only seeds the dashboard.
func ProjectNameFor(industry string) string {
	switch models.Industry(industry) {
	case models.IndustryFood:
		return "My Restaurant"
	case models.IndustryRetail:
		return "My Store"
	case models.IndustryHealth:
		return "My Practice"
	case models.IndustryTechnology:
		return "My Tech Company"
	case models.IndustryEducation:
		return "My School"
	default:
		return "My Business"
	}
}

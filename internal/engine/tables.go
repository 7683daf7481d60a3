// internal/engine/tables.go
package engine

import (
	"regexp"

	"automata-onboarding/internal/models"
)

// IndustryPattern pairs an industry tag with its detection pattern.
// Patterns are substring alternations, evaluated case-insensitively.
type IndustryPattern struct {
	Industry models.Industry
	Pattern  *regexp.Regexp
}

// KeywordMapping associates one normalized keyword with the templates it
// boosts and its relevance weight (1-10). Keywords are matched as whole
// words against the normalized prompt.
type KeywordMapping struct {
	Keyword   string
	Templates []string
	Weight    int

	re *regexp.Regexp
}

// ReasoningEntry holds the recommendation reasoning sentences for one
// template: one default plus optional industry-specific variants.
type ReasoningEntry struct {
	Default    string
	ByIndustry map[models.Industry]string
}

// Tables bundles every static lookup table the engine scores with, so tests
// and alternative deployments can inject fixtures.
type Tables struct {
	// IndustryPatterns is evaluated in order with first-match-wins
	// semantics. The order food, health, retail, service, technology,
	// education, politics is load-bearing: a prompt matching several
	// patterns is classified by the earliest one.
	IndustryPatterns []IndustryPattern

	// Keywords is an ordered slice rather than a map so keyword extraction
	// (and therefore matchedKeywords output) is deterministic.
	Keywords []KeywordMapping

	// IndustryBoosts lists the template IDs that receive the flat boost for
	// each industry. Industries absent from the map fall back to the
	// agnostic list.
	IndustryBoosts map[models.Industry][]string

	// Reasoning maps template ID to its reasoning sentences.
	Reasoning map[string]ReasoningEntry

	// BackfillDefaults is the ordered list of template IDs appended when
	// fewer than three genuine matches survive scoring.
	BackfillDefaults []string
}

// GenericReasoning is the fallback sentence for templates without a
// reasoning entry.
const GenericReasoning = "This automation can help grow your business and improve customer relationships."

// DefaultTables returns the production lookup tables.
func DefaultTables() *Tables {
	return &Tables{
		IndustryPatterns: []IndustryPattern{
			{models.IndustryFood, regexp.MustCompile(`(?i)restaurant|cafe|coffee|bar|food|kitchen|chef|menu|dining|bistro|bakery|catering|pizza|burger|sushi|brew|pub|grill|diner|eat|cook`)},
			{models.IndustryHealth, regexp.MustCompile(`(?i)gym|fitness|wellness|clinic|doctor|therapy|spa|yoga|medical|health|dental|chiro|physio|massage|trainer|workout|pilates|nutrition|coach`)},
			{models.IndustryRetail, regexp.MustCompile(`(?i)store|shop|ecommerce|products|inventory|boutique|fashion|clothing|retail|sell|merchandise|goods|market|buy`)},
			{models.IndustryService, regexp.MustCompile(`(?i)consulting|agency|law|accounting|professional|lawyer|accountant|advisor|coach|freelance|contractor|plumber|electrician|clean`)},
			{models.IndustryTechnology, regexp.MustCompile(`(?i)software|tech|app|saas|startup|digital|developer|it|computer|web|mobile|cloud|data|ai|platform`)},
			{models.IndustryEducation, regexp.MustCompile(`(?i)school|education|tutor|teach|learn|course|training|academy|class|lesson|student|university|college`)},
			{models.IndustryPolitics, regexp.MustCompile(`(?i)campaign|political|vote|election|candidate|advocacy|nonprofit|cause|community|organization`)},
		},

		Keywords: []KeywordMapping{
			// Loyalty & retention
			{Keyword: "loyalty", Templates: []string{"loyalty-program", "win-back-campaign"}, Weight: 10},
			{Keyword: "reward", Templates: []string{"loyalty-program", "birthday-rewards"}, Weight: 8},
			{Keyword: "points", Templates: []string{"loyalty-program"}, Weight: 9},
			{Keyword: "retention", Templates: []string{"loyalty-program", "win-back-campaign"}, Weight: 8},
			{Keyword: "vip", Templates: []string{"loyalty-program"}, Weight: 7},
			{Keyword: "member", Templates: []string{"loyalty-program", "renewal-reminder"}, Weight: 6},

			// Birthdays & celebrations
			{Keyword: "birthday", Templates: []string{"birthday-rewards"}, Weight: 10},
			{Keyword: "anniversary", Templates: []string{"birthday-rewards"}, Weight: 8},
			{Keyword: "celebrate", Templates: []string{"birthday-rewards"}, Weight: 7},
			{Keyword: "special", Templates: []string{"birthday-rewards", "thank-you-note"}, Weight: 5},

			// Appointments
			{Keyword: "appointment", Templates: []string{"appointment-reminders"}, Weight: 10},
			{Keyword: "booking", Templates: []string{"appointment-reminders"}, Weight: 9},
			{Keyword: "schedule", Templates: []string{"appointment-reminders"}, Weight: 8},
			{Keyword: "reminder", Templates: []string{"appointment-reminders", "renewal-reminder"}, Weight: 7},
			{Keyword: "noshow", Templates: []string{"appointment-reminders"}, Weight: 9},

			// Re-engagement
			{Keyword: "inactive", Templates: []string{"win-back-campaign"}, Weight: 10},
			{Keyword: "churn", Templates: []string{"win-back-campaign", "renewal-reminder"}, Weight: 9},
			{Keyword: "lapsed", Templates: []string{"win-back-campaign"}, Weight: 8},
			{Keyword: "reengage", Templates: []string{"win-back-campaign"}, Weight: 9},
			{Keyword: "comeback", Templates: []string{"win-back-campaign"}, Weight: 8},

			// Welcome & onboarding
			{Keyword: "welcome", Templates: []string{"welcome-series"}, Weight: 10},
			{Keyword: "onboard", Templates: []string{"welcome-series"}, Weight: 9},
			{Keyword: "new", Templates: []string{"welcome-series"}, Weight: 5},
			{Keyword: "introduce", Templates: []string{"welcome-series"}, Weight: 7},

			// Feedback
			{Keyword: "review", Templates: []string{"review-request"}, Weight: 10},
			{Keyword: "feedback", Templates: []string{"review-request", "post-visit-follow-up"}, Weight: 9},
			{Keyword: "rating", Templates: []string{"review-request"}, Weight: 8},
			{Keyword: "testimonial", Templates: []string{"review-request"}, Weight: 7},

			// Follow-up
			{Keyword: "followup", Templates: []string{"post-visit-follow-up"}, Weight: 10},
			{Keyword: "thankyou", Templates: []string{"thank-you-note", "post-visit-follow-up"}, Weight: 9},
			{Keyword: "thanks", Templates: []string{"thank-you-note"}, Weight: 8},
			{Keyword: "appreciate", Templates: []string{"thank-you-note"}, Weight: 7},

			// Sales & promotions
			{Keyword: "promotion", Templates: []string{"happy-hour-alerts"}, Weight: 8},
			{Keyword: "sale", Templates: []string{"happy-hour-alerts"}, Weight: 7},
			{Keyword: "discount", Templates: []string{"happy-hour-alerts", "win-back-campaign"}, Weight: 7},
			{Keyword: "deal", Templates: []string{"happy-hour-alerts"}, Weight: 6},
			{Keyword: "offer", Templates: []string{"happy-hour-alerts", "birthday-rewards"}, Weight: 5},

			// Communication
			{Keyword: "newsletter", Templates: []string{"monthly-newsletter"}, Weight: 10},
			{Keyword: "update", Templates: []string{"monthly-newsletter"}, Weight: 6},
			{Keyword: "news", Templates: []string{"monthly-newsletter"}, Weight: 7},
			{Keyword: "inform", Templates: []string{"monthly-newsletter"}, Weight: 5},

			// Subscriptions
			{Keyword: "subscription", Templates: []string{"renewal-reminder"}, Weight: 10},
			{Keyword: "renewal", Templates: []string{"renewal-reminder"}, Weight: 10},
			{Keyword: "expire", Templates: []string{"renewal-reminder"}, Weight: 9},
			{Keyword: "renew", Templates: []string{"renewal-reminder"}, Weight: 9},

			// Ecommerce
			{Keyword: "cart", Templates: []string{"abandoned-cart"}, Weight: 10},
			{Keyword: "abandon", Templates: []string{"abandoned-cart"}, Weight: 10},
			{Keyword: "checkout", Templates: []string{"abandoned-cart"}, Weight: 8},
			{Keyword: "purchase", Templates: []string{"abandoned-cart", "thank-you-note"}, Weight: 6},
		},

		IndustryBoosts: map[models.Industry][]string{
			models.IndustryFood:     {"happy-hour-alerts", "loyalty-program", "birthday-rewards"},
			models.IndustryHealth:   {"appointment-reminders", "renewal-reminder", "post-visit-follow-up"},
			models.IndustryRetail:   {"abandoned-cart", "loyalty-program", "review-request"},
			models.IndustryService:  {"appointment-reminders", "renewal-reminder", "post-visit-follow-up"},
			models.IndustryAgnostic: {"welcome-series", "birthday-rewards", "monthly-newsletter"},
		},

		Reasoning: map[string]ReasoningEntry{
			"birthday-rewards": {
				Default: "Birthday campaigns have 481% higher transaction rates than standard emails.",
				ByIndustry: map[models.Industry]string{
					models.IndustryFood:   "Restaurants see 25% higher redemption rates on birthday offers, often bringing groups.",
					models.IndustryRetail: "Birthday offers drive repeat purchases and create emotional brand connections.",
				},
			},
			"loyalty-program": {
				Default: "Loyalty program members spend 67% more than non-members.",
				ByIndustry: map[models.Industry]string{
					models.IndustryFood:   "Food businesses with loyalty programs see 20% higher visit frequency.",
					models.IndustryRetail: "Loyalty programs increase customer lifetime value by up to 30%.",
				},
			},
			"happy-hour-alerts": {
				Default: "Timely promotions drive same-day foot traffic and increase average order value.",
				ByIndustry: map[models.Industry]string{
					models.IndustryFood: "Location-based alerts can increase slow-period traffic by 15-25%.",
				},
			},
			"appointment-reminders": {
				Default: "Automated reminders reduce no-shows by up to 38%.",
				ByIndustry: map[models.Industry]string{
					models.IndustryHealth:  "Healthcare practices save $150+ per prevented no-show.",
					models.IndustryService: "Service businesses recover 10-15 hours weekly by reducing scheduling gaps.",
				},
			},
			"post-visit-follow-up": {
				Default: "Follow-up messages increase repeat visits by 20% and generate referrals.",
				ByIndustry: map[models.Industry]string{
					models.IndustryHealth: "Post-visit follow-ups improve patient satisfaction scores by 25%.",
				},
			},
			"win-back-campaign": {
				Default: "Acquiring new customers costs 5-7x more than retaining existing ones.",
				ByIndustry: map[models.Industry]string{
					models.IndustryRetail: "Win-back campaigns typically recover 5-10% of churned customers.",
				},
			},
			"welcome-series": {
				Default: "Welcome emails see 4x higher open rates and set the tone for engagement.",
				ByIndustry: map[models.Industry]string{
					models.IndustryRetail: "Welcome series subscribers have 33% higher long-term engagement.",
				},
			},
			"monthly-newsletter": {
				Default: "Regular newsletters keep your brand top-of-mind and drive 2x more referrals.",
				ByIndustry: map[models.Industry]string{
					models.IndustryService: "Professional services with newsletters see 20% higher client retention.",
				},
			},
			"review-request": {
				Default: "93% of consumers read reviews before purchasing. More reviews = more trust.",
				ByIndustry: map[models.Industry]string{
					models.IndustryRetail: "Products with reviews see 270% higher conversion rates.",
				},
			},
			"renewal-reminder": {
				Default: "Proactive renewal outreach improves retention by 20%.",
				ByIndustry: map[models.Industry]string{
					models.IndustryService: "Timely renewal reminders prevent involuntary churn from forgotten payments.",
				},
			},
			"abandoned-cart": {
				Default: "Cart recovery emails have 45% open rates and recover 5-15% of lost sales.",
				ByIndustry: map[models.Industry]string{
					models.IndustryRetail: "The average cart abandonment rate is 70% - huge recovery opportunity.",
				},
			},
			"thank-you-note": {
				Default: "Thank you messages increase repeat purchase likelihood by 25%.",
				ByIndustry: map[models.Industry]string{
					models.IndustryService: "Appreciation messages generate 3x more referrals than generic follow-ups.",
				},
			},
		},

		BackfillDefaults: []string{"birthday-rewards", "welcome-series", "monthly-newsletter"},
	}
}

// compile precompiles the whole-word matcher for every keyword. Called once
// by the engine constructor so injected fixture tables work too.
func (t *Tables) compile() {
	for i := range t.Keywords {
		if t.Keywords[i].re == nil {
			t.Keywords[i].re = regexp.MustCompile(`\b` + regexp.QuoteMeta(t.Keywords[i].Keyword) + `\b`)
		}
	}
}

// boostsFor returns the boost list for the industry, falling back to the
// agnostic list.
func (t *Tables) boostsFor(industry models.Industry) []string {
	if boosts, ok := t.IndustryBoosts[industry]; ok {
		return boosts
	}
	return t.IndustryBoosts[models.IndustryAgnostic]
}

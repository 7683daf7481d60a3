// pkg/catalog/defaults.go
package catalog

// Default returns the built-in 12-template library. The host application may
// override it with a JSON catalog via Load; IDs and industry tags here are
// part of the recommendation contract (boost lists and keyword mappings
// reference them).
func Default() Catalog {
	return Catalog{
		{
			ID:            "birthday-rewards",
			Name:          "Birthday Rewards",
			Description:   "Automatically send personalized birthday greetings with special offers to celebrate your customers on their special day.",
			Icon:          "birthday",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"all"},
			TargetSegment: "all",
			Config: map[string]interface{}{
				"triggerField":      "birthday",
				"daysBeforeOrAfter": 0,
			},
		},
		{
			ID:            "loyalty-program",
			Name:          "Loyalty Program",
			Description:   "Reward your best customers with exclusive perks, points updates, and VIP offers to increase retention.",
			Icon:          "loyalty",
			Type:          "workflow",
			Frequency:     "weekly",
			Industries:    []string{"retail", "food"},
			TargetSegment: "tag:vip",
			Config: map[string]interface{}{
				"pointsThreshold": 100,
			},
		},
		{
			ID:            "happy-hour-alerts",
			Name:          "Happy Hour Alerts",
			Description:   "Send timely notifications about happy hour specials, daily deals, and limited-time offers.",
			Icon:          "promotion",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"food"},
			TargetSegment: "all",
			Config: map[string]interface{}{
				"sendTime": "15:00",
			},
		},
		{
			ID:            "appointment-reminders",
			Name:          "Appointment Reminders",
			Description:   "Reduce no-shows with automated reminders sent before scheduled appointments.",
			Icon:          "appointment",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"health", "service"},
			TargetSegment: "project",
			Config: map[string]interface{}{
				"reminderDays": []interface{}{1, 7},
			},
		},
		{
			ID:            "post-visit-follow-up",
			Name:          "Post-Visit Follow-up",
			Description:   "Engage customers after their visit with thank you messages and requests for feedback.",
			Icon:          "follow_up",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"all"},
			TargetSegment: "project",
			Config: map[string]interface{}{
				"daysAfterVisit": 1,
			},
		},
		{
			ID:            "win-back-campaign",
			Name:          "Win-Back Campaign",
			Description:   "Re-engage inactive customers with personalized offers to bring them back.",
			Icon:          "win_back",
			Type:          "email",
			Frequency:     "weekly",
			Industries:    []string{"all"},
			TargetSegment: "tag:inactive",
			Config: map[string]interface{}{
				"inactiveDays": 30,
			},
		},
		{
			ID:            "welcome-series",
			Name:          "Welcome Series",
			Description:   "Onboard new customers with a warm welcome sequence introducing your brand and offerings.",
			Icon:          "welcome",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"all"},
			TargetSegment: "tag:new",
			Config: map[string]interface{}{
				"emailCount":  3,
				"daysBetween": 2,
			},
		},
		{
			ID:            "monthly-newsletter",
			Name:          "Monthly Newsletter",
			Description:   "Keep customers informed with monthly updates, news, and curated content.",
			Icon:          "newsletter",
			Type:          "email",
			Frequency:     "monthly",
			Industries:    []string{"all"},
			TargetSegment: "all",
			Config: map[string]interface{}{
				"sendDay": 1,
			},
		},
		{
			ID:            "review-request",
			Name:          "Review Request",
			Description:   "Collect valuable feedback by asking satisfied customers for reviews and ratings.",
			Icon:          "feedback",
			Type:          "email",
			Frequency:     "weekly",
			Industries:    []string{"all"},
			TargetSegment: "project",
			Config: map[string]interface{}{
				"daysAfterPurchase": 7,
			},
		},
		{
			ID:            "renewal-reminder",
			Name:          "Renewal Reminder",
			Description:   "Prevent churn by reminding customers when their subscription or membership is about to expire.",
			Icon:          "renewal",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"service"},
			TargetSegment: "project",
			Config: map[string]interface{}{
				"reminderDays": []interface{}{30, 7, 1},
			},
		},
		{
			ID:            "abandoned-cart",
			Name:          "Abandoned Cart",
			Description:   "Recover lost sales by reminding customers about items left in their shopping cart.",
			Icon:          "cart",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"retail"},
			TargetSegment: "all",
			Config: map[string]interface{}{
				"hoursAfterAbandon": 24,
			},
		},
		{
			ID:            "thank-you-note",
			Name:          "Thank You Note",
			Description:   "Show appreciation with personalized thank you messages after purchases or interactions.",
			Icon:          "thank_you",
			Type:          "email",
			Frequency:     "daily",
			Industries:    []string{"all"},
			TargetSegment: "project",
			Config: map[string]interface{}{
				"triggerEvent": "purchase",
			},
		},
	}
}

package insights

// DefaultPayload is the static fallback shown before the first successful
// fetch, or when a fetch fails with nothing cached.
func DefaultPayload() Payload {
	return Payload{
		WeeklySummary: "Keep logging your tasks and your weekly summary will appear here.",
		Insights: []Insight{
			{
				Icon:        "target",
				Title:       "Break goals into small tasks",
				Description: "Goals with tasks under 30 minutes get completed twice as often.",
				Color:       "blue",
			},
			{
				Icon:        "calendar",
				Title:       "Schedule your tasks",
				Description: "Tasks with a planned date are far more likely to get done.",
				Color:       "green",
			},
			{
				Icon:        "flame",
				Title:       "Protect your streak",
				Description: "Completing even one small task a day keeps the habit alive.",
				Color:       "orange",
			},
		},
		Tips: []string{
			"Start the day with your highest-priority task.",
			"Review your goals every Sunday evening.",
			"Archive goals that no longer matter to you.",
		},
		Motivation: "Small steps every day add up to big results.",
	}
}

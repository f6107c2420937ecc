package insights

import "github.com/nosmoke-health/nosmoke/internal/domain"

// Built-in content. Insight text is produced upstream and shipped as an
// opaque catalog; premium flags decide gating, nothing else.

var catalog = []domain.Insight{
	{
		ID:       "1",
		Title:    "Your Most Vulnerable Time",
		Content:  "Based on your logging patterns, you experience the most cravings in the afternoon between 2-4 PM. Consider scheduling a short walk or activity during this time.",
		Category: domain.InsightPattern,
	},
	{
		ID:       "2",
		Title:    "Stress is Your Top Trigger",
		Content:  "70% of your logged triggers are stress-related. Try deep breathing exercises or the 4-7-8 technique when feeling stressed.",
		Category: domain.InsightTrigger,
	},
	{
		ID:       "3",
		Title:    "You're Getting Stronger",
		Content:  "Your resistance rate has improved by 15% this week compared to last week. Keep up the great work!",
		Category: domain.InsightMotivation,
	},
	{
		ID:       "4",
		Title:    "Advanced Craving Analysis",
		Content:  "Your cravings peak on Mondays and decrease through the week. This pattern suggests work-related stress. Consider implementing Monday morning rituals.",
		Category: domain.InsightAnalysis,
		Premium:  true,
	},
	{
		ID:       "5",
		Title:    "Personalized Quit Strategy",
		Content:  "Based on your data, a gradual reduction approach might work better for you. We recommend reducing by 2 cigarettes per week.",
		Category: domain.InsightStrategy,
		Premium:  true,
	},
}

var tips = []string{
	"Drink a glass of water when you feel an urge - it helps reduce cravings",
	"Take 5 deep breaths: inhale for 4 seconds, hold for 4, exhale for 4",
	"Chew sugar-free gum or eat a healthy snack to keep your mouth busy",
	"Call or text a supportive friend when cravings hit",
	"Remember: cravings typically last only 3-5 minutes",
	"Go for a short walk - physical activity reduces cravings",
	"Brush your teeth when you feel the urge to smoke",
}

var articles = []domain.Article{
	{
		ID:       "1",
		Title:    "Why Nicotine is Addictive",
		Summary:  "Nicotine activates reward pathways in your brain, creating a cycle of craving and relief.",
		ReadTime: "3 min",
	},
	{
		ID:       "2",
		Title:    "Health Benefits Timeline",
		Summary:  "Your body starts healing within 20 minutes of your last cigarette.",
		ReadTime: "4 min",
	},
	{
		ID:       "3",
		Title:    "Managing Withdrawal",
		Summary:  "Learn strategies to cope with common withdrawal symptoms.",
		ReadTime: "5 min",
	},
}

var milestones = []domain.Milestone{
	{Time: "20 min", Benefit: "Heart rate drops to normal"},
	{Time: "12 hours", Benefit: "Carbon monoxide levels normalize"},
	{Time: "24 hours", Benefit: "Anxiety peaks then decreases"},
	{Time: "48 hours", Benefit: "Taste and smell improve"},
	{Time: "72 hours", Benefit: "Breathing becomes easier"},
	{Time: "1 week", Benefit: "Risk of heart attack decreases"},
	{Time: "2 weeks", Benefit: "Circulation improves"},
	{Time: "1 month", Benefit: "Lung function improves up to 30%"},
	{Time: "1 year", Benefit: "Heart disease risk drops by 50%"},
}

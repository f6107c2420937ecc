package domain

// InsightCategory groups insight cards on the client.
type InsightCategory string

const (
	InsightPattern    InsightCategory = "pattern"
	InsightTrigger    InsightCategory = "trigger"
	InsightMotivation InsightCategory = "motivation"
	InsightAnalysis   InsightCategory = "analysis"
	InsightStrategy   InsightCategory = "strategy"
)

// Insight is an opaque piece of generated advice. The engine never
// fabricates or rewrites the content; it only tags premium items as
// locked for free-tier viewers so a later upgrade reveals them as-is.
type Insight struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Category InsightCategory `json:"category"`
	Premium  bool            `json:"premium"`
}

// Article is a static educational piece about quitting.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ReadTime string `json:"read_time"`
}

// Milestone maps elapsed smoke-free time to a health benefit.
type Milestone struct {
	Time    string `json:"time"`
	Benefit string `json:"benefit"`
}

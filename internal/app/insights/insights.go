// Package insights serves the advice feed. The subscription gate is the
// single place the free/premium access rule lives: content is marked
// locked for free-tier viewers, never filtered or rewritten, so an
// upgrade reveals it without recomputation.
package insights

import (
	"time"

	"github.com/nosmoke-health/nosmoke/internal/app/progress"
	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// Visible reports whether an insight is readable at the given tier.
// Pure and stateless.
func Visible(item domain.Insight, tier domain.SubscriptionTier) bool {
	return tier == domain.TierPremium || !item.Premium
}

// GatedInsight is an insight plus its lock state for the viewer.
type GatedInsight struct {
	domain.Insight
	Locked bool `json:"locked"`
}

// Feed is the full insights response for one viewer.
type Feed struct {
	Insights  []GatedInsight `json:"insights"`
	DailyTip  string         `json:"daily_tip"`
	IsPremium bool           `json:"is_premium"`
}

// Service assembles the feed from a fixed catalog. Insight text is an
// opaque input (generated upstream); the service only applies gating.
type Service struct {
	catalog []domain.Insight
	tips    []string
}

// NewService returns a service backed by the built-in catalog.
func NewService() *Service {
	return &Service{catalog: catalog, tips: tips}
}

// Feed returns every catalog insight with its lock flag for the tier,
// plus the tip of the day.
func (s *Service) Feed(tier domain.SubscriptionTier, now time.Time) Feed {
	feed := Feed{
		Insights:  make([]GatedInsight, 0, len(s.catalog)),
		DailyTip:  s.TipOfDay(now),
		IsPremium: tier == domain.TierPremium,
	}
	for _, item := range s.catalog {
		feed.Insights = append(feed.Insights, GatedInsight{
			Insight: item,
			Locked:  !Visible(item, tier),
		})
	}
	return feed
}

// TipOfDay picks a tip deterministically from the UTC day ordinal, so
// repeated reads on the same day return the same tip.
func (s *Service) TipOfDay(now time.Time) string {
	if len(s.tips) == 0 {
		return ""
	}
	day := int(progress.DayStart(now).Unix() / 86400)
	return s.tips[day%len(s.tips)]
}

// Education returns the static articles and health-benefit milestones.
// Not gated: educational content is free for everyone.
func (s *Service) Education() ([]domain.Article, []domain.Milestone) {
	return articles, milestones
}

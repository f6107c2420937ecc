// Package patterns analyzes the trigger log: frequency per trigger type,
// the most common type, and a full ranking. Pure functions over a
// snapshot — callers bound the window at the store read if they want one;
// by default the whole log is analyzed.
package patterns

import (
	"sort"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// RankedTrigger is one entry of the frequency ranking.
type RankedTrigger struct {
	Type  domain.TriggerType `json:"type"`
	Count int                `json:"count"`
}

// Result summarizes trigger patterns for a user.
type Result struct {
	TotalTriggers int                        `json:"total_triggers"`
	ByType        map[domain.TriggerType]int `json:"by_type"`
	MostCommon    *domain.TriggerType        `json:"most_common"`
	TopTriggers   []RankedTrigger            `json:"top_triggers"`
}

// Analyze ranks trigger types by frequency. Ties break toward the type
// whose latest occurrence is most recent — a fresh pattern is more
// actionable than an old one. TopTriggers carries the full ranking;
// display surfaces truncate as they see fit.
func Analyze(triggers []domain.Trigger) Result {
	res := Result{
		ByType:      make(map[domain.TriggerType]int),
		TopTriggers: []RankedTrigger{},
	}
	if len(triggers) == 0 {
		return res
	}

	latest := make(map[domain.TriggerType]time.Time)
	for _, t := range triggers {
		res.TotalTriggers++
		res.ByType[t.Type]++
		ts := t.CreatedAt.UTC()
		if !ts.Before(latest[t.Type]) {
			latest[t.Type] = ts
		}
	}

	for typ, count := range res.ByType {
		res.TopTriggers = append(res.TopTriggers, RankedTrigger{Type: typ, Count: count})
	}
	sort.SliceStable(res.TopTriggers, func(i, j int) bool {
		a, b := res.TopTriggers[i], res.TopTriggers[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return latest[a.Type].After(latest[b.Type])
	})

	top := res.TopTriggers[0].Type
	res.MostCommon = &top
	return res
}

package patterns_test

import (
	"testing"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/app/patterns"
	"github.com/nosmoke-health/nosmoke/internal/domain"
)

func trigger(typ domain.TriggerType, at time.Time) domain.Trigger {
	return domain.Trigger{ID: "t", UserID: "u1", Type: typ, CreatedAt: at}
}

func TestAnalyze_Empty(t *testing.T) {
	res := patterns.Analyze(nil)

	if res.TotalTriggers != 0 {
		t.Errorf("total: expected 0, got %d", res.TotalTriggers)
	}
	if res.MostCommon != nil {
		t.Errorf("most common: expected nil, got %v", *res.MostCommon)
	}
	if len(res.TopTriggers) != 0 {
		t.Errorf("top triggers: expected empty, got %v", res.TopTriggers)
	}
}

func TestAnalyze_FrequencyRanking(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	triggers := []domain.Trigger{
		trigger(domain.TriggerStress, base),
		trigger(domain.TriggerStress, base.Add(1*time.Hour)),
		trigger(domain.TriggerBoredom, base.Add(2*time.Hour)),
		trigger(domain.TriggerStress, base.Add(3*time.Hour)),
	}

	res := patterns.Analyze(triggers)
	if res.TotalTriggers != 4 {
		t.Errorf("total: expected 4, got %d", res.TotalTriggers)
	}
	if res.MostCommon == nil || *res.MostCommon != domain.TriggerStress {
		t.Errorf("most common: expected stress, got %v", res.MostCommon)
	}
	if len(res.TopTriggers) != 2 {
		t.Fatalf("expected 2 ranked types, got %d", len(res.TopTriggers))
	}
	if res.TopTriggers[0].Type != domain.TriggerStress || res.TopTriggers[0].Count != 3 {
		t.Errorf("rank 1: expected (stress,3), got %+v", res.TopTriggers[0])
	}
	if res.TopTriggers[1].Type != domain.TriggerBoredom || res.TopTriggers[1].Count != 1 {
		t.Errorf("rank 2: expected (boredom,1), got %+v", res.TopTriggers[1])
	}
}

func TestAnalyze_TieBreaksByRecency(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	triggers := []domain.Trigger{
		trigger(domain.TriggerSocial, base),
		trigger(domain.TriggerHabit, base.Add(1*time.Hour)),
		trigger(domain.TriggerSocial, base.Add(2*time.Hour)),
		trigger(domain.TriggerHabit, base.Add(3*time.Hour)), // habit seen last
	}

	res := patterns.Analyze(triggers)
	if res.MostCommon == nil || *res.MostCommon != domain.TriggerHabit {
		t.Errorf("most common: expected habit (more recent tie), got %v", res.MostCommon)
	}
	if res.TopTriggers[0].Type != domain.TriggerHabit {
		t.Errorf("rank 1: expected habit, got %v", res.TopTriggers[0].Type)
	}
	if res.TopTriggers[1].Type != domain.TriggerSocial {
		t.Errorf("rank 2: expected social, got %v", res.TopTriggers[1].Type)
	}
}

func TestAnalyze_ByTypeCounts(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	triggers := []domain.Trigger{
		trigger(domain.TriggerEmotional, base),
		trigger(domain.TriggerEmotional, base.Add(time.Minute)),
		trigger(domain.TriggerOther, base.Add(2*time.Minute)),
	}

	res := patterns.Analyze(triggers)
	if res.ByType[domain.TriggerEmotional] != 2 || res.ByType[domain.TriggerOther] != 1 {
		t.Errorf("by_type counts wrong: %v", res.ByType)
	}
}

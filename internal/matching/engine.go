package matching

import (
	"math"
	"sort"

	"github.com/citycat/adoption-engine/internal/domain"
)

// Reason keys handed to the i18n layer. Positive/negative variants are
// separate keys so the wizard can phrase them independently.
const (
	ReasonAloneTimeOk         = "aloneTimeOk"
	ReasonAloneTooLong        = "aloneTooLong"
	ReasonAloneUnknown        = "aloneUnknown"
	ReasonGoodWithChildren    = "goodWithChildren"
	ReasonNotGoodWithChildren = "notGoodWithChildren"
	ReasonChildrenUntested    = "childrenUntested"
	ReasonGoodWithCats        = "goodWithCats"
	ReasonNotGoodWithCats     = "notGoodWithCats"
	ReasonPrefersOnlyCat      = "prefersOnlyCat"
	ReasonGoodWithDogs        = "goodWithDogs"
	ReasonNotGoodWithDogs     = "notGoodWithDogs"
	ReasonEnergyMatch         = "energyMatch"
	ReasonEnergyMismatch      = "energyMismatch"
	ReasonSmallSpaceActive    = "smallSpaceActiveCat"
	ReasonLargeSpaceActive    = "largeSpaceActiveCat"
	ReasonExpertComplexCat    = "expertForComplexCat"
	ReasonFirstTimerComplex   = "complexCatFirstTimer"
	ReasonEasyFirstCat        = "easyFirstCat"
	ReasonChronicLowBudget    = "chronicCareLowBudget"
	ReasonChronicHighBudget   = "chronicCareCovered"
	ReasonTooVocal            = "tooVocal"
	ReasonQuietMatch          = "quietMatch"
	ReasonCalmForPregnancy    = "calmForPregnancy"
	ReasonGoodForElderly      = "goodForElderly"
	ReasonSeeksAffection      = "seeksAffection"
)

const (
	scoreBase  = 50.0
	scoreFloor = 5.0
	scoreCeil  = 98.0
	maxReasons = 5
)

// Engine computes lifestyle compatibility between an adopter questionnaire
// and a cat profile. Pure and deterministic; a missing behavioral profile
// skips the profile-dependent rules instead of failing.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// MatchAll scores every cat currently offered for adoption and returns the
// results sorted by descending score.
func (e *Engine) MatchAll(answers domain.LifestyleAnswers, cats []domain.CatProfile) []domain.MatchResult {
	var out []domain.MatchResult
	for _, cat := range cats {
		if cat.Status != domain.StatusAdoption {
			continue
		}
		out = append(out, e.Match(answers, cat))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Match scores one adopter/cat pair. The score starts neutral at 50, each
// triggered rule shifts it, and the result is clamped to [5,98] so the wizard
// never shows absolute certainty in either direction. Only the five heaviest
// reasons are kept.
func (e *Engine) Match(answers domain.LifestyleAnswers, cat domain.CatProfile) domain.MatchResult {
	m := &matcher{score: scoreBase}
	bp := cat.Behavioral

	m.applyAloneTime(answers, bp)
	m.applyChildren(answers, cat, bp)
	m.applyOtherCats(answers, bp)
	m.applyOtherDogs(answers, cat, bp)
	m.applyEnergy(answers, bp)
	m.applySpace(answers, bp)
	m.applyExperience(answers, cat, bp)
	m.applyBudget(answers, cat)
	m.applyNoise(answers, bp)
	m.applySituation(answers, cat, bp)
	if bp != nil && bp.AffectionStyle == domain.AffectionSeeks {
		m.adjust(ReasonSeeksAffection, 3)
	}

	return domain.MatchResult{
		Cat:     cat,
		Score:   clamp(m.score, scoreFloor, scoreCeil),
		Reasons: topReasons(m.reasons, maxReasons),
	}
}

type matcher struct {
	score   float64
	reasons []domain.MatchReason
}

func (m *matcher) adjust(key string, delta float64) {
	if delta == 0 {
		return
	}
	m.score += delta
	m.reasons = append(m.reasons, domain.MatchReason{
		Key:      key,
		Positive: delta > 0,
		Weight:   math.Abs(delta),
	})
}

func (m *matcher) applyAloneTime(a domain.LifestyleAnswers, bp *domain.BehavioralProfile) {
	if bp == nil {
		if a.HoursAway > 8 {
			m.adjust(ReasonAloneUnknown, -5)
		}
		return
	}
	if a.HoursAway <= bp.AloneToleranceHours {
		m.adjust(ReasonAloneTimeOk, math.Min(15, (bp.AloneToleranceHours-a.HoursAway)*3))
	} else {
		m.adjust(ReasonAloneTooLong, -math.Min(20, (a.HoursAway-bp.AloneToleranceHours)*5))
	}
}

func (m *matcher) applyChildren(a domain.LifestyleAnswers, cat domain.CatProfile, bp *domain.BehavioralProfile) {
	if !a.HasChildren {
		return
	}
	if (bp != nil && bp.SociabilityChildren == domain.TriYes) || cat.CompatibleWith("children") {
		m.adjust(ReasonGoodWithChildren, 12)
		return
	}
	if bp == nil {
		return
	}
	if bp.SociabilityChildren == domain.TriNo {
		m.adjust(ReasonNotGoodWithChildren, -18)
	} else {
		m.adjust(ReasonChildrenUntested, -5)
	}
}

func (m *matcher) applyOtherCats(a domain.LifestyleAnswers, bp *domain.BehavioralProfile) {
	// sociability 0 means the scale was never recorded
	if bp == nil || bp.SociabilityCats == 0 {
		return
	}
	if a.HasOtherCats {
		if bp.SociabilityCats >= 4 {
			m.adjust(ReasonGoodWithCats, 10)
		} else if bp.SociabilityCats <= 2 {
			m.adjust(ReasonNotGoodWithCats, -15)
		}
		return
	}
	if bp.SociabilityCats <= 2 {
		m.adjust(ReasonPrefersOnlyCat, 8)
	}
}

func (m *matcher) applyOtherDogs(a domain.LifestyleAnswers, cat domain.CatProfile, bp *domain.BehavioralProfile) {
	if !a.HasOtherDogs {
		return
	}
	if (bp != nil && bp.SociabilityDogs == domain.TriYes) || cat.CompatibleWith("dogs") {
		m.adjust(ReasonGoodWithDogs, 10)
		return
	}
	if bp != nil && bp.SociabilityDogs == domain.TriNo {
		m.adjust(ReasonNotGoodWithDogs, -15)
	}
}

func (m *matcher) applyEnergy(a domain.LifestyleAnswers, bp *domain.BehavioralProfile) {
	if bp == nil || bp.EnergyLevel == 0 {
		return
	}
	preferred, ok := preferredEnergy(a.EnergyPreference)
	if !ok {
		return
	}
	diff := math.Abs(float64(bp.EnergyLevel) - preferred)
	if diff <= 1 {
		m.adjust(ReasonEnergyMatch, 10)
	} else if diff >= 3 {
		m.adjust(ReasonEnergyMismatch, -10)
	}
}

func (m *matcher) applySpace(a domain.LifestyleAnswers, bp *domain.BehavioralProfile) {
	if bp == nil || bp.EnergyLevel < 4 {
		return
	}
	switch a.LivingSpace {
	case domain.SpaceSmall:
		m.adjust(ReasonSmallSpaceActive, -8)
	case domain.SpaceLarge:
		m.adjust(ReasonLargeSpaceActive, 6)
	}
}

func (m *matcher) applyExperience(a domain.LifestyleAnswers, cat domain.CatProfile, bp *domain.BehavioralProfile) {
	if isComplexCat(cat) {
		switch a.Experience {
		case domain.LevelExpert:
			m.adjust(ReasonExpertComplexCat, 10)
		case domain.LevelFirst:
			m.adjust(ReasonFirstTimerComplex, -12)
		}
		return
	}
	if a.Experience == domain.LevelFirst && bp != nil &&
		bp.SociabilityHumans >= 4 && cat.HealthStatus == domain.HealthHealthy {
		m.adjust(ReasonEasyFirstCat, 8)
	}
}

func (m *matcher) applyBudget(a domain.LifestyleAnswers, cat domain.CatProfile) {
	if cat.HealthStatus != domain.HealthChronic {
		return
	}
	switch a.Budget {
	case domain.BudgetLow:
		m.adjust(ReasonChronicLowBudget, -10)
	case domain.BudgetHigh:
		m.adjust(ReasonChronicHighBudget, 5)
	}
}

func (m *matcher) applyNoise(a domain.LifestyleAnswers, bp *domain.BehavioralProfile) {
	if bp == nil || a.NoisePreference != domain.NoiseSilent {
		return
	}
	switch bp.Vocality {
	case domain.VocalityVocal:
		m.adjust(ReasonTooVocal, -8)
	case domain.VocalitySilent:
		m.adjust(ReasonQuietMatch, 6)
	}
}

func (m *matcher) applySituation(a domain.LifestyleAnswers, cat domain.CatProfile, bp *domain.BehavioralProfile) {
	calm := bp != nil && bp.EnergyLevel >= 1 && bp.EnergyLevel <= 2
	switch a.Situation {
	case domain.SituationPregnancy:
		if calm {
			m.adjust(ReasonCalmForPregnancy, 5)
		}
	case domain.SituationElderly:
		if cat.CompatibleWith("elderly") || calm {
			m.adjust(ReasonGoodForElderly, 10)
		}
	}
}

// isComplexCat marks cats needing extra competence from the adopter.
func isComplexCat(cat domain.CatProfile) bool {
	if cat.HealthStatus == domain.HealthChronic {
		return true
	}
	return cat.HeartAdoption != nil && cat.HeartAdoption.IsHeartAdoption
}

func preferredEnergy(p domain.EnergyPreference) (float64, bool) {
	switch p {
	case domain.EnergyCalm:
		return 1.5, true
	case domain.EnergyModerate:
		return 3, true
	case domain.EnergyActive:
		return 4.5, true
	default:
		return 0, false
	}
}

func topReasons(reasons []domain.MatchReason, max int) []domain.MatchReason {
	sort.SliceStable(reasons, func(i, j int) bool { return reasons[i].Weight > reasons[j].Weight })
	if len(reasons) > max {
		reasons = reasons[:max]
	}
	return reasons
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

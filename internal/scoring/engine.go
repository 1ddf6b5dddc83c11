package scoring

import (
	"math"
	"strings"

	"github.com/citycat/adoption-engine/internal/domain"
)

type CriterionID string

const (
	CriterionHousing    CriterionID = "housing"
	CriterionExperience CriterionID = "experience"
	CriterionAbsence    CriterionID = "absence"
	CriterionLifestyle  CriterionID = "lifestyle"
	CriterionMotivation CriterionID = "motivation"
)

// Criterion is one scored dimension of an application. Score is the raw
// sub-score (0..100); WeightedScore is round(Score * Weight / 100).
type Criterion struct {
	ID            CriterionID `json:"id"`
	Weight        int         `json:"weight"`
	Score         int         `json:"score"`
	WeightedScore int         `json:"weighted_score"`
}

// Result is the full breakdown shown on shelter review screens. With the
// default weights Total is bounded to 0..100.
type Result struct {
	Total    int         `json:"total"`
	Criteria []Criterion `json:"criteria"`
}

// Tier buckets a total score for presentation (badge color tiers).
type Tier string

const (
	TierGood   Tier = "good"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ScoreTier classifies a total: >=75 good, >=50 medium, else low.
func ScoreTier(total int) Tier {
	switch {
	case total >= 75:
		return TierGood
	case total >= 50:
		return TierMedium
	default:
		return TierLow
	}
}

type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// Score evaluates a submitted application. Pure and total: unknown enum
// values fall through to base branches, nothing is mutated, no error paths.
func (e *Engine) Score(app domain.AdoptionApplication) Result {
	criteria := []Criterion{
		weighted(CriterionHousing, e.weights.Housing, housingScore(app)),
		weighted(CriterionExperience, e.weights.Experience, experienceScore(app)),
		weighted(CriterionAbsence, e.weights.Absence, absenceScore(app.AbsenceHours)),
		weighted(CriterionLifestyle, e.weights.Lifestyle, lifestyleScore(app)),
		weighted(CriterionMotivation, e.weights.Motivation, motivationScore(app.Motivation)),
	}

	total := 0
	for _, c := range criteria {
		total += c.WeightedScore
	}
	return Result{Total: total, Criteria: criteria}
}

func weighted(id CriterionID, weight, score int) Criterion {
	return Criterion{
		ID:            id,
		Weight:        weight,
		Score:         score,
		WeightedScore: int(math.Round(float64(score*weight) / 100)),
	}
}

func housingScore(app domain.AdoptionApplication) int {
	score := 50
	switch app.HousingType {
	case domain.HousingHouseGarden:
		score = 100
	case domain.HousingHouse:
		score = 80
	case domain.HousingApartment:
		score = 60
	}
	if app.HasGarden {
		score = capAt100(score + 15)
	}
	switch app.HousingArea {
	case domain.AreaMedium:
		score += 5
	case domain.AreaLarge:
		score += 10
	}
	return capAt100(score)
}

func experienceScore(app domain.AdoptionApplication) int {
	score := 30
	switch app.CatExperience {
	case domain.ExperienceFostered:
		score = 100
	case domain.ExperienceHaveCats:
		score = 85
	case domain.ExperienceHadCats:
		score = 65
	}
	if app.PreviousAdoptions {
		score = capAt100(score + 15)
	}
	return score
}

// absenceScore is a step function over daily hours away from home.
func absenceScore(hours float64) int {
	switch {
	case hours <= 4:
		return 100
	case hours <= 6:
		return 80
	case hours <= 8:
		return 60
	case hours <= 10:
		return 40
	default:
		return 20
	}
}

func lifestyleScore(app domain.AdoptionApplication) int {
	score := 60
	if app.AdultsCount >= 2 {
		score += 10
	}
	switch app.OtherAnimals {
	case domain.OtherAnimalsNone:
		score += 15
	case domain.OtherAnimalsCats:
		score += 10
	}
	if strings.TrimSpace(app.ChildrenAges) == "" {
		score += 10
	}
	return capAt100(score)
}

// motivationScore rewards effort put into the free-text motivation field.
func motivationScore(text string) int {
	switch n := len(text); {
	case n >= 200:
		return 100
	case n >= 100:
		return 75
	case n >= 50:
		return 50
	default:
		return 25
	}
}

func capAt100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

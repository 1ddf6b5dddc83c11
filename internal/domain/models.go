package domain

import "time"

// HousingType describes the adopter's home as reported on the application form.
type HousingType string

const (
	HousingApartment   HousingType = "apartment"
	HousingHouse       HousingType = "house"
	HousingHouseGarden HousingType = "houseGarden"
)

// HousingArea is the self-reported size bracket in square meters.
type HousingArea string

const (
	AreaSmall  HousingArea = "<80"
	AreaMedium HousingArea = "80-120"
	AreaLarge  HousingArea = ">120"
)

// CatExperience ranks prior experience with cats.
type CatExperience string

const (
	ExperienceNone     CatExperience = "none"
	ExperienceHadCats  CatExperience = "hadCats"
	ExperienceHaveCats CatExperience = "haveCats"
	ExperienceFostered CatExperience = "fostered"
)

type OtherAnimals string

const (
	OtherAnimalsNone  OtherAnimals = "none"
	OtherAnimalsCats  OtherAnimals = "cats"
	OtherAnimalsDogs  OtherAnimals = "dogs"
	OtherAnimalsMixed OtherAnimals = "mixed"
)

// AdoptionApplication is a snapshot of one submitted adoption form. The engine
// only reads it; unrecognized enum values fall through to base scoring branches
// instead of failing.
type AdoptionApplication struct {
	ID                string        `json:"id"`
	ApplicantEmail    string        `json:"applicant_email"`
	HousingType       HousingType   `json:"housing_type"`
	HousingArea       HousingArea   `json:"housing_area"`
	HasGarden         bool          `json:"has_garden"`
	Floor             int           `json:"floor"`
	AdultsCount       int           `json:"adults_count"`
	ChildrenAges      string        `json:"children_ages,omitempty"`
	OtherAnimals      OtherAnimals  `json:"other_animals"`
	AbsenceHours      float64       `json:"absence_hours"`
	CatExperience     CatExperience `json:"cat_experience"`
	PreviousAdoptions bool          `json:"previous_adoptions"`
	Motivation        string        `json:"motivation"`
	Notes             string        `json:"notes,omitempty"`
	SubmittedAt       time.Time     `json:"submitted_at"`
}

// LivingSpace is the questionnaire's living-space size category.
type LivingSpace string

const (
	SpaceSmall  LivingSpace = "small"
	SpaceMedium LivingSpace = "medium"
	SpaceLarge  LivingSpace = "large"
)

type EnergyPreference string

const (
	EnergyCalm     EnergyPreference = "calm"
	EnergyModerate EnergyPreference = "moderate"
	EnergyActive   EnergyPreference = "active"
)

type ExperienceLevel string

const (
	LevelFirst  ExperienceLevel = "first"
	LevelSome   ExperienceLevel = "some"
	LevelExpert ExperienceLevel = "expert"
)

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

type SpecialSituation string

const (
	SituationNone       SpecialSituation = "none"
	SituationPregnancy  SpecialSituation = "pregnancy"
	SituationElderly    SpecialSituation = "elderly"
	SituationDisability SpecialSituation = "disability"
)

type NoisePreference string

const (
	NoiseSilent   NoisePreference = "silent"
	NoiseNormal   NoisePreference = "normal"
	NoiseNoMatter NoisePreference = "noMatter"
)

// LifestyleAnswers is the adopter questionnaire consumed by the matching engine.
type LifestyleAnswers struct {
	HoursAway        float64          `json:"hours_away"`
	HasChildren      bool             `json:"has_children"`
	HasOtherCats     bool             `json:"has_other_cats"`
	HasOtherDogs     bool             `json:"has_other_dogs"`
	LivingSpace      LivingSpace      `json:"living_space"`
	EnergyPreference EnergyPreference `json:"energy_preference"`
	Experience       ExperienceLevel  `json:"experience"`
	Budget           BudgetTier       `json:"budget"`
	Situation        SpecialSituation `json:"situation"`
	NoisePreference  NoisePreference  `json:"noise_preference"`
}

type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
	HealthChronic HealthStatus = "chronic"
	HealthTreated HealthStatus = "treated"
)

// CatStatus tracks where a cat is in the adoption pipeline. Only cats with
// StatusAdoption are offered by the matching engine.
type CatStatus string

const (
	StatusAdoption CatStatus = "adoption"
	StatusReserved CatStatus = "reserved"
	StatusAdopted  CatStatus = "adopted"
	StatusShelter  CatStatus = "shelter"
)

// TriState covers sociability questions that may simply never have been tested.
type TriState string

const (
	TriYes      TriState = "yes"
	TriNo       TriState = "no"
	TriUntested TriState = "untested"
)

type Vocality string

const (
	VocalitySilent Vocality = "silent"
	VocalityNormal Vocality = "normal"
	VocalityVocal  Vocality = "vocal"
)

type AffectionStyle string

const (
	AffectionAvoids  AffectionStyle = "avoids"
	AffectionAccepts AffectionStyle = "accepts"
	AffectionSeeks   AffectionStyle = "seeks"
)

// Special behavior flags recorded by shelter volunteers.
const (
	BehaviorFearsLoudNoises = "fears_loud_noises"
	BehaviorFearsStrangers  = "fears_strangers"
	BehaviorHidesFromGuests = "hides_from_guests"
	BehaviorNightActive     = "night_active"
)

// BehavioralProfile is an optional assessment filled in by shelter staff.
// Sociability scales run 1..5; AloneToleranceHours runs 0..10.
type BehavioralProfile struct {
	SociabilityHumans   int            `json:"sociability_humans"`
	SociabilityCats     int            `json:"sociability_cats"`
	SociabilityChildren TriState       `json:"sociability_children"`
	SociabilityDogs     TriState       `json:"sociability_dogs"`
	EnergyLevel         int            `json:"energy_level"`
	AloneToleranceHours float64        `json:"alone_tolerance_hours"`
	Vocality            Vocality       `json:"vocality"`
	AffectionStyle      AffectionStyle `json:"affection_style"`
	SpecialBehaviors    []string       `json:"special_behaviors,omitempty"`
}

// HeartAdoptionData is the manually confirmed heart-adoption flag plus the
// narrative shown to adopters. Auto-detected trigger codes are derived, not
// stored here.
type HeartAdoptionData struct {
	IsHeartAdoption bool   `json:"is_heart_adoption"`
	Story           string `json:"story,omitempty"`
	CareNotes       string `json:"care_notes,omitempty"`
}

type CatProfile struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Age           int                `json:"age"`
	HealthStatus  HealthStatus       `json:"health_status"`
	HealthNotes   string             `json:"health_notes,omitempty"`
	Status        CatStatus          `json:"status"`
	ArrivalDate   *time.Time         `json:"arrival_date,omitempty"`
	Compatibility []string           `json:"compatibility,omitempty"`
	Behavioral    *BehavioralProfile `json:"behavioral,omitempty"`
	HeartAdoption *HeartAdoptionData `json:"heart_adoption,omitempty"`
}

// CompatibleWith reports whether the cat carries the given compatibility tag
// (e.g. "children", "dogs", "elderly").
func (c CatProfile) CompatibleWith(tag string) bool {
	for _, t := range c.Compatibility {
		if t == tag {
			return true
		}
	}
	return false
}

type MatchReason struct {
	Key      string  `json:"key"`
	Positive bool    `json:"positive"`
	Weight   float64 `json:"weight"`
}

type MatchResult struct {
	Cat     CatProfile    `json:"cat"`
	Score   float64       `json:"score"`
	Reasons []MatchReason `json:"reasons"`
}

// Package heart flags cats whose age, health, or behavior calls for a
// patient, informed adopter ("heart adoption").
package heart

import (
	"strings"
	"time"

	"github.com/citycat/adoption-engine/internal/domain"
)

// Trigger reason codes, emitted in check order. They double as i18n keys.
const (
	TriggerElderly  = "elderly"
	TriggerChronic  = "chronic"
	TriggerFIV      = "fiv"
	TriggerLongStay = "longStay"
	TriggerShy      = "shy"
	TriggerFearful  = "fearful"
)

const (
	elderlyAgeYears = 8
	longStayMonths  = 6
)

// DetectTriggers inspects a cat profile for hardship signals using the
// current wall clock for the long-stay check.
func DetectTriggers(cat domain.CatProfile) []string {
	return DetectTriggersAt(cat, time.Now())
}

// DetectTriggersAt is DetectTriggers with an injected clock. Checks are
// independent; the returned codes keep check order and may be empty.
func DetectTriggersAt(cat domain.CatProfile, now time.Time) []string {
	var triggers []string

	if cat.Age >= elderlyAgeYears {
		triggers = append(triggers, TriggerElderly)
	}
	if cat.HealthStatus == domain.HealthChronic {
		triggers = append(triggers, TriggerChronic)
	}
	if notes := strings.ToLower(cat.HealthNotes); strings.Contains(notes, "fiv") ||
		strings.Contains(notes, "felv") || strings.Contains(notes, "fip") {
		triggers = append(triggers, TriggerFIV)
	}
	if cat.ArrivalDate != nil && monthsBetween(*cat.ArrivalDate, now) >= longStayMonths {
		triggers = append(triggers, TriggerLongStay)
	}
	if bp := cat.Behavioral; bp != nil {
		if bp.SociabilityHumans <= 2 {
			triggers = append(triggers, TriggerShy)
		}
		if hasBehavior(bp, domain.BehaviorFearsLoudNoises) && hasBehavior(bp, domain.BehaviorFearsStrangers) {
			triggers = append(triggers, TriggerFearful)
		}
	}

	return triggers
}

// IsHeartAdoption reports the manually confirmed flag, independent of
// whatever the detector would suggest.
func IsHeartAdoption(cat domain.CatProfile) bool {
	return cat.HeartAdoption != nil && cat.HeartAdoption.IsHeartAdoption
}

// monthsBetween counts calendar months (year*12+month difference), ignoring
// day-of-month, matching how shelter stay length is reported.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func hasBehavior(bp *domain.BehavioralProfile, flag string) bool {
	for _, b := range bp.SpecialBehaviors {
		if b == flag {
			return true
		}
	}
	return false
}

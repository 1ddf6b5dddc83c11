package heart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/citycat/adoption-engine/internal/domain"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestDetectTriggers_HardshipCat(t *testing.T) {
	arrival := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := domain.CatProfile{
		Age:          11,
		HealthStatus: domain.HealthChronic,
		HealthNotes:  "FIV positive",
		ArrivalDate:  &arrival,
	}

	triggers := DetectTriggersAt(cat, testNow)
	assert.Equal(t, []string{TriggerElderly, TriggerChronic, TriggerFIV, TriggerLongStay}, triggers)
}

func TestDetectTriggers_HealthyYoungCat(t *testing.T) {
	arrival := testNow.AddDate(0, -1, 0)
	cat := domain.CatProfile{
		Age:          2,
		HealthStatus: domain.HealthHealthy,
		ArrivalDate:  &arrival,
	}
	assert.Empty(t, DetectTriggersAt(cat, testNow))
}

func TestDetectTriggers_HealthNotesCaseInsensitive(t *testing.T) {
	for _, notes := range []string{"fiv carrier", "Tested FeLV", "suspected FIP, monitoring"} {
		cat := domain.CatProfile{Age: 1, HealthNotes: notes}
		assert.Equal(t, []string{TriggerFIV}, DetectTriggersAt(cat, testNow), "notes=%q", notes)
	}
}

func TestDetectTriggers_LongStayCalendarMonths(t *testing.T) {
	// 6 calendar months by year*12+month difference, day-of-month ignored
	arrival := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
	cat := domain.CatProfile{Age: 1, ArrivalDate: &arrival}
	assert.Equal(t, []string{TriggerLongStay}, DetectTriggersAt(cat, testNow))

	recent := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	cat.ArrivalDate = &recent
	assert.Empty(t, DetectTriggersAt(cat, testNow))
}

func TestDetectTriggers_NoArrivalDateSkipsLongStay(t *testing.T) {
	cat := domain.CatProfile{Age: 1}
	assert.Empty(t, DetectTriggersAt(cat, testNow))
}

func TestDetectTriggers_BehavioralSignals(t *testing.T) {
	cat := domain.CatProfile{
		Age: 1,
		Behavioral: &domain.BehavioralProfile{
			SociabilityHumans: 2,
			SpecialBehaviors:  []string{domain.BehaviorFearsLoudNoises, domain.BehaviorFearsStrangers},
		},
	}
	assert.Equal(t, []string{TriggerShy, TriggerFearful}, DetectTriggersAt(cat, testNow))
}

func TestDetectTriggers_FearfulNeedsBothFlags(t *testing.T) {
	cat := domain.CatProfile{
		Age: 1,
		Behavioral: &domain.BehavioralProfile{
			SociabilityHumans: 4,
			SpecialBehaviors:  []string{domain.BehaviorFearsLoudNoises},
		},
	}
	assert.Empty(t, DetectTriggersAt(cat, testNow))
}

func TestDetectTriggers_Idempotent(t *testing.T) {
	arrival := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cat := domain.CatProfile{
		Age:          9,
		HealthStatus: domain.HealthChronic,
		ArrivalDate:  &arrival,
		Behavioral:   &domain.BehavioralProfile{SociabilityHumans: 1},
	}
	first := DetectTriggersAt(cat, testNow)
	second := DetectTriggersAt(cat, testNow)
	assert.Equal(t, first, second)
}

func TestIsHeartAdoption(t *testing.T) {
	assert.False(t, IsHeartAdoption(domain.CatProfile{}))
	assert.False(t, IsHeartAdoption(domain.CatProfile{HeartAdoption: &domain.HeartAdoptionData{}}))
	assert.True(t, IsHeartAdoption(domain.CatProfile{HeartAdoption: &domain.HeartAdoptionData{IsHeartAdoption: true}}))
}

package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights defines the contribution of each criterion to the total score.
// The defaults sum to 100 so the total lands on a 0..100 scale. Callers may
// override them (shelters tune review priorities); weights that do not sum to
// 100 are accepted and simply produce a total off the 0..100 scale — that is
// the caller's responsibility, not validated here.
type Weights struct {
	Housing    int `json:"housing"`
	Experience int `json:"experience"`
	Absence    int `json:"absence"`
	Lifestyle  int `json:"lifestyle"`
	Motivation int `json:"motivation"`
}

// DefaultWeights returns the platform baseline used by shelter review screens.
func DefaultWeights() Weights {
	return Weights{
		Housing:    25,
		Experience: 25,
		Absence:    20,
		Lifestyle:  15,
		Motivation: 15,
	}
}

// LoadWeightsFromFile loads weights from a JSON file, falling back to defaults on read errors.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}

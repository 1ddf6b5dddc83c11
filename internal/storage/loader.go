package storage

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/citycat/adoption-engine/internal/domain"
)

// LoadCatsFromFile reads the cat fixture set from a JSON file.
func LoadCatsFromFile(path string) ([]domain.CatProfile, error) {
	var cats []domain.CatProfile
	if err := loadJSON(path, &cats); err != nil {
		return nil, errors.Wrap(err, "load cats")
	}
	return cats, nil
}

// LoadFlagsFromFile reads per-role feature flags from a JSON file.
func LoadFlagsFromFile(path string) ([]domain.FeatureFlag, error) {
	var flags []domain.FeatureFlag
	if err := loadJSON(path, &flags); err != nil {
		return nil, errors.Wrap(err, "load feature flags")
	}
	return flags, nil
}

// LoadAffiliationsFromFile reads delegation records from a JSON file.
func LoadAffiliationsFromFile(path string) ([]domain.Affiliation, error) {
	var affs []domain.Affiliation
	if err := loadJSON(path, &affs); err != nil {
		return nil, errors.Wrap(err, "load affiliations")
	}
	return affs, nil
}

func loadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read file")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	return nil
}

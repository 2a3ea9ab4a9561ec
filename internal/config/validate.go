package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. The place search API key is
// not required here; commands that call the provider check for it themselves.
func (c *Config) Validate() error {
	if err := c.validatePlaces(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlaces() error {
	if c.Places.TimeoutSeconds <= 0 {
		return errors.New("places.timeout_seconds must be positive")
	}
	if c.Places.NearbyRadiusMeters <= 0 {
		return errors.New("places.nearby_radius_meters must be positive")
	}
	if c.Places.MaxResults <= 0 || c.Places.MaxResults > 50 {
		return errors.New("places.max_results must be between 1 and 50")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.EpsilonDegrees <= 0 || m.EpsilonDegrees > 1 {
		return errors.New("matching.epsilon_degrees must be between 0 and 1")
	}
	for name, value := range map[string]float64{
		"matching.name_weight":     m.NameWeight,
		"matching.distance_weight": m.DistanceWeight,
		"matching.category_weight": m.CategoryWeight,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if m.NameWeight+m.DistanceWeight+m.CategoryWeight <= 0 {
		return errors.New("matching weights must not all be zero")
	}
	if m.ReviewThreshold < 0 || m.ReviewThreshold > 100 {
		return errors.New("matching.review_threshold must be between 0 and 100")
	}
	if m.AutoApplyThreshold < 0 || m.AutoApplyThreshold > 100 {
		return errors.New("matching.auto_apply_threshold must be between 0 and 100")
	}
	if m.AutoApplyThreshold < m.ReviewThreshold {
		return errors.New("matching.auto_apply_threshold must not be below matching.review_threshold")
	}
	if m.DistanceDecayMeters <= 0 {
		return errors.New("matching.distance_decay_meters must be positive")
	}
	if m.MaxCandidates <= 0 {
		return errors.New("matching.max_candidates must be positive")
	}
	return nil
}

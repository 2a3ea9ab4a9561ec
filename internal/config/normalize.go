package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlaces()
	c.normalizeMatching()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizePlaces() {
	c.Places.APIKey = strings.TrimSpace(c.Places.APIKey)
	if c.Places.APIKey == "" {
		if value, ok := os.LookupEnv("LEVOYAGEUR_PLACES_API_KEY"); ok {
			c.Places.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("PLACES_API_KEY"); ok {
			c.Places.APIKey = strings.TrimSpace(value)
		}
	}
	c.Places.BaseURL = strings.TrimSpace(strings.TrimSuffix(c.Places.BaseURL, "/"))
	if c.Places.BaseURL == "" {
		c.Places.BaseURL = defaultPlacesBaseURL
	}
	if c.Places.TimeoutSeconds <= 0 {
		c.Places.TimeoutSeconds = defaultPlacesTimeoutSeconds
	}
	if c.Places.NearbyRadiusMeters <= 0 {
		c.Places.NearbyRadiusMeters = defaultPlacesNearbyRadiusMeters
	}
	if c.Places.MaxResults <= 0 {
		c.Places.MaxResults = defaultPlacesMaxResults
	}
}

func (c *Config) normalizeMatching() {
	m := &c.Matching
	if m.EpsilonDegrees <= 0 {
		m.EpsilonDegrees = defaultEpsilonDegrees
	}
	if m.NameWeight < 0 {
		m.NameWeight = 0
	}
	if m.DistanceWeight < 0 {
		m.DistanceWeight = 0
	}
	if m.CategoryWeight < 0 {
		m.CategoryWeight = 0
	}
	if m.NameWeight+m.DistanceWeight+m.CategoryWeight == 0 {
		m.NameWeight = defaultNameWeight
		m.DistanceWeight = defaultDistanceWeight
		m.CategoryWeight = defaultCategoryWeight
	}
	if m.DistanceDecayMeters <= 0 {
		m.DistanceDecayMeters = defaultDistanceDecayMeters
	}
	if m.ReviewThreshold <= 0 {
		m.ReviewThreshold = defaultReviewThreshold
	}
	if m.AutoApplyThreshold <= 0 {
		m.AutoApplyThreshold = defaultAutoApplyThreshold
	}
	if m.MaxCandidates <= 0 {
		m.MaxCandidates = defaultMaxCandidates
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

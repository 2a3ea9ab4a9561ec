package config

const (
	defaultDataDir = "~/.local/share/levoyageur"
	defaultLogDir  = "~/.local/share/levoyageur/logs"

	defaultPlacesBaseURL            = "https://places.googleapis.com/v1"
	defaultPlacesTimeoutSeconds     = 10
	defaultPlacesNearbyRadiusMeters = 500
	defaultPlacesMaxResults         = 10

	defaultEpsilonDegrees      = 0.001
	defaultNameWeight          = 0.55
	defaultDistanceWeight      = 0.30
	defaultCategoryWeight      = 0.15
	defaultDistanceDecayMeters = 250
	defaultReviewThreshold     = 70
	defaultAutoApplyThreshold  = 90
	defaultMaxCandidates       = 5

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Places: Places{
			BaseURL:            defaultPlacesBaseURL,
			TimeoutSeconds:     defaultPlacesTimeoutSeconds,
			NearbyRadiusMeters: defaultPlacesNearbyRadiusMeters,
			MaxResults:         defaultPlacesMaxResults,
		},
		Matching: Matching{
			EpsilonDegrees:      defaultEpsilonDegrees,
			NameWeight:          defaultNameWeight,
			DistanceWeight:      defaultDistanceWeight,
			CategoryWeight:      defaultCategoryWeight,
			DistanceDecayMeters: defaultDistanceDecayMeters,
			ReviewThreshold:     defaultReviewThreshold,
			AutoApplyThreshold:  defaultAutoApplyThreshold,
			MaxCandidates:       defaultMaxCandidates,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

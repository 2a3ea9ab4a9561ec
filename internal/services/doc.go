// Package services defines shared utilities for external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag provider
//     failures for consistent handling (configuration vs transient vs
//     missing data).
//   - Classification of HTTP responses so callers can decide between
//     retrying, surfacing a config problem, or treating the result as
//     empty.
package services

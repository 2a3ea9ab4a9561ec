// Package marker derives the map markers for a view: one marker per distinct
// physical place, folded from the curated, award, and personal want-to-go
// source lists in a fixed pass order.
//
// Markers are view-derived values. They are rebuilt from scratch on every
// relevant state change and carry no identity across recompositions; nothing
// here is persisted.
package marker

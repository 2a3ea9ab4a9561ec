package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gitxyzlabs/levoyageur/internal/marker"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

func formatAward(a place.Award) string {
	var parts []string
	switch a.Distinction {
	case place.DistinctionStars:
		parts = append(parts, strings.Repeat("*", max(a.Stars, 1)))
	case place.DistinctionBibGourmand:
		parts = append(parts, "bib")
	case place.DistinctionPlate:
		parts = append(parts, "plate")
	}
	if a.GreenStar {
		parts = append(parts, "green")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

func formatRating(rating *float64) string {
	if rating == nil {
		return "-"
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', 5, 64)
}

func categoryLabel(c marker.Category) string {
	switch c {
	case marker.CategoryLV:
		return "LV"
	case marker.CategoryAward:
		return "award"
	case marker.CategoryFavorite:
		return "favorite"
	case marker.CategoryWantToGo:
		return "want to go"
	default:
		return "-"
	}
}

// markerView is the JSON shape for one composed marker.
type markerView struct {
	Category       string   `json:"category,omitempty"`
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Rating         *float64 `json:"rating,omitempty"`
	Award          string   `json:"award,omitempty"`
	SourceRecordID string   `json:"sourceRecordId"`
	CrossRef       string   `json:"crossRef,omitempty"`
	FavoritesCount int      `json:"favoritesCount,omitempty"`
	WantToGoCount  int      `json:"wantToGoCount,omitempty"`
}

func markerViews(markers []marker.Marker) []markerView {
	views := make([]markerView, 0, len(markers))
	for _, m := range markers {
		award := ""
		if m.Award.Rated() || m.Award.GreenStar {
			award = formatAward(m.Award)
		}
		views = append(views, markerView{
			Category:       string(m.Category),
			Name:           m.Name,
			Lat:            m.Position.Lat,
			Lng:            m.Position.Lng,
			Rating:         m.Rating,
			Award:          award,
			SourceRecordID: m.SourceRecordID,
			CrossRef:       m.CrossRef,
			FavoritesCount: m.FavoritesCount,
			WantToGoCount:  m.WantToGoCount,
		})
	}
	return views
}

func markerRows(markers []marker.Marker) [][]string {
	rows := make([][]string, 0, len(markers))
	for _, m := range markers {
		rows = append(rows, []string{
			categoryLabel(m.Category),
			m.Name,
			formatRating(m.Rating),
			formatAward(m.Award),
			strconv.Itoa(m.FavoritesCount),
			strconv.Itoa(m.WantToGoCount),
			fmt.Sprintf("%s, %s", formatCoord(m.Position.Lat), formatCoord(m.Position.Lng)),
		})
	}
	return rows
}

var markerHeaders = []string{"CATEGORY", "NAME", "RATING", "AWARD", "FAV", "WTG", "POSITION"}

var markerAligns = []columnAlignment{
	alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft,
}

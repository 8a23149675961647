package handler

import (
	"sort"
	"strings"

	"github.com/honeyflow/hive-api/internal/model"
)

// unknownLocation is the bucket that absorbs hives with a null or blank
// location in the top-locations ranking.
const unknownLocation = "unknown"

// topLocationCount caps the ranking returned in the stats view.
const topLocationCount = 5

// LocationCount is one entry of the top-locations ranking.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// HiveStats is the aggregate view served to ASSOCIATION_REP in place of raw
// hive records. AvgStrength is null when no hive has a recorded strength.
type HiveStats struct {
	Total        int             `json:"total"`
	Active       int             `json:"active"`
	Inactive     int             `json:"inactive"`
	Unknown      int             `json:"unknown"`
	AvgStrength  *float64        `json:"avgStrength"`
	TopLocations []LocationCount `json:"topLocations"`
}

// buildHiveStats derives the aggregate statistics from the full hive
// collection. Status counting recognizes ACTIVE and INACTIVE; everything
// else (including absent status) lands in the unknown count. The location
// ranking is ordered by count descending with ties kept in first-seen
// order, which matches the stable ordering of the underlying listing.
func buildHiveStats(hives []*model.Hive) HiveStats {
	stats := HiveStats{
		Total:        len(hives),
		TopLocations: []LocationCount{},
	}

	var strengthSum, strengthN int
	counts := map[string]int{}
	var order []string

	for _, h := range hives {
		switch {
		case h.Status != nil && *h.Status == model.StatusActive:
			stats.Active++
		case h.Status != nil && *h.Status == model.StatusInactive:
			stats.Inactive++
		}
		if h.Strength != nil {
			strengthSum += *h.Strength
			strengthN++
		}
		loc := unknownLocation
		if h.Location != nil && strings.TrimSpace(*h.Location) != "" {
			loc = strings.TrimSpace(*h.Location)
		}
		if _, seen := counts[loc]; !seen {
			order = append(order, loc)
		}
		counts[loc]++
	}
	stats.Unknown = stats.Total - stats.Active - stats.Inactive

	if strengthN > 0 {
		avg := float64(strengthSum) / float64(strengthN)
		stats.AvgStrength = &avg
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	for _, loc := range order {
		if len(stats.TopLocations) == topLocationCount {
			break
		}
		stats.TopLocations = append(stats.TopLocations, LocationCount{Location: loc, Count: counts[loc]})
	}
	return stats
}

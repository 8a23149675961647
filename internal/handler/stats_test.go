package handler

import (
	"testing"

	"github.com/honeyflow/hive-api/internal/model"
)

func statsHive(name string, status *string, strength *int, location *string) *model.Hive {
	return &model.Hive{Name: name, Status: status, Strength: strength, Location: location}
}

func TestBuildHiveStats_Empty(t *testing.T) {
	got := buildHiveStats(nil)
	if got.Total != 0 || got.Active != 0 || got.Inactive != 0 || got.Unknown != 0 {
		t.Errorf("counts = %+v, want all zero", got)
	}
	if got.AvgStrength != nil {
		t.Errorf("avgStrength = %v, want nil when no hive has a strength", *got.AvgStrength)
	}
	if got.TopLocations == nil || len(got.TopLocations) != 0 {
		t.Errorf("topLocations = %v, want empty non-nil slice", got.TopLocations)
	}
}

func TestBuildHiveStats_Counts(t *testing.T) {
	active, inactive := model.StatusActive, model.StatusInactive
	swarmed := "SWARMED"
	hives := []*model.Hive{
		statsHive("a", &active, nil, nil),
		statsHive("b", &active, nil, nil),
		statsHive("c", &inactive, nil, nil),
		statsHive("d", nil, nil, nil),
		statsHive("e", &swarmed, nil, nil), // unrecognized status counts as unknown
	}
	got := buildHiveStats(hives)
	if got.Total != 5 || got.Active != 2 || got.Inactive != 1 || got.Unknown != 2 {
		t.Errorf("counts = total %d active %d inactive %d unknown %d, want 5/2/1/2",
			got.Total, got.Active, got.Inactive, got.Unknown)
	}
}

func TestBuildHiveStats_AvgStrengthIgnoresMissing(t *testing.T) {
	hives := []*model.Hive{
		statsHive("a", nil, intPtr(4), nil),
		statsHive("b", nil, intPtr(7), nil),
		statsHive("c", nil, nil, nil),
	}
	got := buildHiveStats(hives)
	if got.AvgStrength == nil {
		t.Fatal("avgStrength = nil, want 5.5")
	}
	if *got.AvgStrength != 5.5 {
		t.Errorf("avgStrength = %v, want 5.5", *got.AvgStrength)
	}
}

func TestBuildHiveStats_TopLocations(t *testing.T) {
	blank := "   "
	hives := []*model.Hive{
		statsHive("a", nil, nil, strPtr("Novi Sad")),
		statsHive("b", nil, nil, strPtr("Novi Sad")),
		statsHive("c", nil, nil, strPtr("Subotica")),
		statsHive("d", nil, nil, nil),
		statsHive("e", nil, nil, &blank),
		statsHive("f", nil, nil, strPtr("  Novi Sad  ")), // trimmed into the same bucket
	}
	got := buildHiveStats(hives)
	want := []LocationCount{
		{Location: "Novi Sad", Count: 3},
		{Location: unknownLocation, Count: 2},
		{Location: "Subotica", Count: 1},
	}
	if len(got.TopLocations) != len(want) {
		t.Fatalf("topLocations = %v, want %v", got.TopLocations, want)
	}
	for i := range want {
		if got.TopLocations[i] != want[i] {
			t.Errorf("topLocations[%d] = %v, want %v", i, got.TopLocations[i], want[i])
		}
	}
}

func TestBuildHiveStats_TopLocationsCapAndTieOrder(t *testing.T) {
	var hives []*model.Hive
	for _, loc := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		hives = append(hives, statsHive(loc, nil, nil, strPtr(loc)))
	}
	got := buildHiveStats(hives)
	if len(got.TopLocations) != topLocationCount {
		t.Fatalf("len(topLocations) = %d, want %d", len(got.TopLocations), topLocationCount)
	}
	// All counts tie at 1, so first-seen order wins.
	for i, loc := range []string{"A", "B", "C", "D", "E"} {
		if got.TopLocations[i].Location != loc {
			t.Errorf("topLocations[%d] = %v, want %s", i, got.TopLocations[i], loc)
		}
	}
}

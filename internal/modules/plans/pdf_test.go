package plans

import (
	"strings"
	"testing"
)

func fixturePlan() *Plan {
	p := &Plan{
		Destination: "Kyoto, Japan",
		Origin:      "Taipei",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-12",
		Days:        2,
		Season:      "spring",
		BudgetLevel: "mid-range",
		Travelers:   2,
		Preferences: []string{"Culture", "Food"},
		Itinerary: []ItineraryDay{
			{
				Day:       1,
				Date:      "2026-04-10",
				DayOfWeek: "Friday",
				Title:     "Temples & Tea",
				Morning: []Activity{
					{Time: "9:00 AM", Activity: "Fushimi Inari", Description: "Walk the gates early.", Duration: "2 hours", Cost: 0, Location: "Fushimi", Tips: "Go before the crowds"},
				},
				Afternoon: []Activity{
					{Time: "1:00 PM", Activity: "Nishiki Market lunch", Cost: 15},
				},
				Evening: []Activity{
					{Time: "7:00 PM", Activity: "Gion stroll", Cost: 0},
				},
				Transportation: "Keihan line, then walking",
				TotalCost:      15,
			},
			{Day: 2, Date: "2026-04-11", DayOfWeek: "Saturday", Title: "Arashiyama"},
		},
		Packing: PackingList{
			"clothing":  {"Light jacket - evenings are cool"},
			"documents": {"Passport"},
		},
		Warnings: []string{"budget section unavailable"},
	}
	p.Budget = &BudgetBreakdown{}
	p.Budget.Accommodation.Total = 240
	p.Budget.Accommodation.Notes = "3-star hotel"
	p.Budget.Food.TripTotal = 120
	p.Budget.TotalPerPerson = 420
	p.Budget.TotalAllTravelers = 840
	p.Budget.DailyAverage = 210
	p.Budget.SavingsTips = []string{"Buy a day pass"}
	return p
}

func TestBuildPDF(t *testing.T) {
	data, filename, err := BuildPDF(fixturePlan())
	if err != nil {
		t.Fatalf("BuildPDF returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("BuildPDF returned empty data")
	}
	if filename != "wayfarer-kyoto-japan-2026-04-10.pdf" {
		t.Errorf("unexpected filename %q", filename)
	}
}

func TestBuildPDF_RawItineraryFallback(t *testing.T) {
	p := &Plan{
		Destination:  "Lisbon",
		StartDate:    "2026-06-01",
		EndDate:      "2026-06-03",
		Days:         2,
		Season:       "summer",
		BudgetLevel:  "budget",
		Travelers:    1,
		RawItinerary: "Day 1: wander Alfama. Day 2: tram 28 and Belem.",
	}
	data, _, err := BuildPDF(p)
	if err != nil {
		t.Fatalf("BuildPDF returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("BuildPDF returned empty data for raw itinerary plan")
	}
}

func TestPackingCategories_Order(t *testing.T) {
	packing := PackingList{
		"zz_custom": {"thing"},
		"clothing":  {"shirt"},
		"documents": {"passport"},
		"optional":  {"book"},
	}
	got := packingCategories(packing)
	want := []string{"documents", "clothing", "optional", "zz_custom"}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kyoto, Japan", "kyoto-japan"},
		{"  New York City  ", "new-york-city"},
		{"Zürich", "z-rich"},
		{"", "trip"},
		{"!!!", "trip"},
		{strings.Repeat("a", 60), strings.Repeat("a", 40)},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Errorf("clip should keep short strings, got %q", got)
	}
	if got := clip("abcdefghij", 8); got != "abcde..." {
		t.Errorf("clip = %q, want %q", got, "abcde...")
	}
}

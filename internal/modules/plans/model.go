// README: Plan document model and not-found sentinel.
package plans

import (
	"encoding/json"
	"errors"
	"time"

	"wayfarer/internal/maps"
)

// ErrPlanNotFound is returned when no stored plan matches the given id.
var ErrPlanNotFound = errors.New("plan not found")

// Activity is one scheduled item inside a day block.
type Activity struct {
	Time        string  `json:"time"`
	Activity    string  `json:"activity"`
	Description string  `json:"description,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Cost        float64 `json:"cost,omitempty"`
	Location    string  `json:"location,omitempty"`
	Tips        string  `json:"tips,omitempty"`
}

// ItineraryDay is one day of the trip. Date and DayOfWeek are normalized
// after generation so day N always falls on start date + N-1.
type ItineraryDay struct {
	Day             int        `json:"day"`
	Date            string     `json:"date"`
	DayOfWeek       string     `json:"day_of_week,omitempty"`
	Title           string     `json:"title,omitempty"`
	Morning         []Activity `json:"morning,omitempty"`
	Afternoon       []Activity `json:"afternoon,omitempty"`
	Evening         []Activity `json:"evening,omitempty"`
	Transportation  string     `json:"transportation,omitempty"`
	TotalCost       float64    `json:"total_cost,omitempty"`
	EnergyLevel     string     `json:"energy_level,omitempty"`
	Weather         string     `json:"weather_considerations,omitempty"`
	FlexibilityNote string     `json:"flexibility_note,omitempty"`
}

// BudgetBreakdown mirrors the cost estimation response shape.
type BudgetBreakdown struct {
	Accommodation struct {
		PerNight    float64 `json:"per_night"`
		TotalNights int     `json:"total_nights"`
		Total       float64 `json:"total"`
		Notes       string  `json:"notes,omitempty"`
	} `json:"accommodation"`
	Food struct {
		BreakfastAvg float64 `json:"breakfast_avg"`
		LunchAvg     float64 `json:"lunch_avg"`
		DinnerAvg    float64 `json:"dinner_avg"`
		DailyTotal   float64 `json:"daily_total"`
		TripTotal    float64 `json:"trip_total"`
	} `json:"food"`
	Transportation struct {
		AirportTransfer float64 `json:"airport_transfer"`
		DailyLocal      float64 `json:"daily_local"`
		Total           float64 `json:"total"`
		Notes           string  `json:"notes,omitempty"`
	} `json:"transportation"`
	Activities struct {
		DailyAvg float64 `json:"daily_avg"`
		Total    float64 `json:"total"`
		Notes    string  `json:"notes,omitempty"`
	} `json:"activities"`
	Shopping struct {
		Budget float64 `json:"budget"`
		Notes  string  `json:"notes,omitempty"`
	} `json:"shopping"`
	EmergencyFund     float64  `json:"emergency_fund"`
	TotalPerPerson    float64  `json:"total_per_person"`
	TotalAllTravelers float64  `json:"total_all_travelers"`
	DailyAverage      float64  `json:"daily_average"`
	SavingsTips       []string `json:"savings_tips,omitempty"`
}

// PackingList maps a category (clothing, documents, ...) to its items.
type PackingList map[string][]string

// Plan is the full generated travel plan document. Insights stay raw so the
// API returns exactly what the model produced for that section.
type Plan struct {
	ID          string              `json:"id,omitempty"`
	UID         string              `json:"uid,omitempty"`
	Origin      string              `json:"origin,omitempty"`
	Destination string              `json:"destination"`
	Resolved    *maps.ResolvedPlace `json:"resolved_place,omitempty"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Days        int                 `json:"days"`
	Season      string              `json:"season"`
	BudgetLevel string              `json:"budget_level"`
	Travelers   int                 `json:"travelers"`
	Preferences []string            `json:"preferences,omitempty"`
	Insights    json.RawMessage     `json:"insights,omitempty"`
	Itinerary   []ItineraryDay      `json:"itinerary,omitempty"`
	// RawItinerary keeps the provider text when the itinerary JSON could
	// not be decoded, so the response is never silently lost.
	RawItinerary string           `json:"raw_itinerary,omitempty"`
	Budget       *BudgetBreakdown `json:"budget,omitempty"`
	Packing      PackingList      `json:"packing,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
	CreatedAt    time.Time        `json:"created_at,omitzero"`
}

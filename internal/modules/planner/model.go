// README: Trip request model, validation, and locally derived trip facts.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wayfarer/internal/types"
)

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

const (
	defaultTravelers = 2
	maxTravelers     = 10
	maxPreferences   = 10
	maxPreferenceLen = 64

	// longTripDays is advisory only. Longer trips still generate.
	longTripDays = 14
)

var (
	// ErrInvalidInput marks malformed trip parameters. It is always returned
	// before any provider call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable marks a completion backend that failed, timed
	// out, or is fenced off by an open circuit breaker.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Budget levels accepted on a request and echoed into prompts.
const (
	LevelBudget   = "budget"
	LevelMidRange = "mid-range"
	LevelLuxury   = "luxury"
)

// DefaultPreferences seeds the interest tags when the caller sends none.
var DefaultPreferences = []string{"Culture"}

// TripRequest carries the user-supplied parameters for one trip.
type TripRequest struct {
	Destination string       `json:"destination"`
	Origin      string       `json:"origin,omitempty"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Travelers   int          `json:"travelers,omitempty"`
	Budget      *types.Money `json:"budget,omitempty"`
	BudgetLevel string       `json:"budget_level,omitempty"`
	Preferences []string     `json:"preferences,omitempty"`
}

// Normalize trims free-text fields, drops blank preference tags, and fills
// defaults. Call it before Validate.
func (r *TripRequest) Normalize() {
	r.Destination = strings.TrimSpace(r.Destination)
	r.Origin = strings.TrimSpace(r.Origin)
	r.BudgetLevel = strings.ToLower(strings.TrimSpace(r.BudgetLevel))

	var prefs []string
	for _, p := range r.Preferences {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}
	if len(prefs) == 0 {
		prefs = append(prefs, DefaultPreferences...)
	}
	r.Preferences = prefs

	if r.Travelers == 0 {
		r.Travelers = defaultTravelers
	}
}

// Validate reports the first constraint violation wrapped in ErrInvalidInput.
func (r TripRequest) Validate() error {
	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidInput)
	}
	start, end, err := r.parseDates()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, r.EndDate, r.StartDate)
	}
	if r.Travelers < 1 || r.Travelers > maxTravelers {
		return fmt.Errorf("%w: travelers must be between 1 and %d", ErrInvalidInput, maxTravelers)
	}
	if r.Budget != nil && r.Budget.Amount < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidInput)
	}
	switch r.BudgetLevel {
	case "", LevelBudget, LevelMidRange, LevelLuxury:
	default:
		return fmt.Errorf("%w: unknown budget level %q", ErrInvalidInput, r.BudgetLevel)
	}
	if len(r.Preferences) > maxPreferences {
		return fmt.Errorf("%w: at most %d preferences", ErrInvalidInput, maxPreferences)
	}
	for _, p := range r.Preferences {
		if len(p) > maxPreferenceLen {
			return fmt.Errorf("%w: preference %q exceeds %d characters", ErrInvalidInput, p, maxPreferenceLen)
		}
	}
	return nil
}

func (r TripRequest) parseDates() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("%w: start date %q is not a YYYY-MM-DD date", ErrInvalidInput, r.StartDate)
	}
	end, err = time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("%w: end date %q is not a YYYY-MM-DD date", ErrInvalidInput, r.EndDate)
	}
	return start, end, nil
}

// facts are the trip attributes computed locally. The model is never asked
// for any of these.
type facts struct {
	Start  time.Time
	End    time.Time
	Days   int
	Season string
	Level  string
}

// deriveFacts assumes a normalized, validated request.
func deriveFacts(r TripRequest) facts {
	start, end, _ := r.parseDates()
	days := int(end.Sub(start) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return facts{
		Start:  start,
		End:    end,
		Days:   days,
		Season: seasonOf(start),
		Level:  budgetLevelFor(r, days),
	}
}

// seasonOf buckets a date into a northern-hemisphere season by month.
func seasonOf(t time.Time) string {
	seasons := [...]string{"winter", "spring", "summer", "fall"}
	return seasons[(int(t.Month())%12)/3]
}

// budgetLevelFor resolves the effective level: an explicit level wins, then
// one derived from the total budget spread over the trip, then mid-range.
func budgetLevelFor(r TripRequest, days int) string {
	if r.BudgetLevel != "" {
		return r.BudgetLevel
	}
	if r.Budget != nil && !r.Budget.IsZero() {
		perDay := r.Budget.Major() / float64(days)
		switch {
		case perDay <= 100:
			return LevelBudget
		case perDay <= 300:
			return LevelMidRange
		default:
			return LevelLuxury
		}
	}
	return LevelMidRange
}

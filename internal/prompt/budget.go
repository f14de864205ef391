package prompt

import "fmt"

const budgetFormat = `Create detailed budget breakdown for %d traveler(s) in %s for %d days (%s level).

JSON format:
{
  "accommodation": {
    "per_night": 0,
    "total_nights": %d,
    "total": 0,
    "notes": "type of accommodation"
  },
  "food": {
    "breakfast_avg": 0,
    "lunch_avg": 0,
    "dinner_avg": 0,
    "daily_total": 0,
    "trip_total": 0
  },
  "transportation": {
    "airport_transfer": 0,
    "daily_local": 0,
    "total": 0,
    "notes": "what's included"
  },
  "activities": {
    "daily_avg": 0,
    "total": 0,
    "notes": "typical costs"
  },
  "shopping": {
    "budget": 0,
    "notes": "souvenirs and extras"
  },
  "emergency_fund": 0,
  "total_per_person": 0,
  "total_all_travelers": 0,
  "daily_average": 0,
  "savings_tips": ["tip 1", "tip 2"]
}

Provide realistic estimates with context.`

// Budget builds the trip cost estimation prompt.
func Budget(destination string, days, travelers int, budgetLevel string) string {
	return fmt.Sprintf(budgetFormat, travelers, destination, days, budgetLevel, days)
}

package prompt

import "fmt"

// InsightsSystem primes the model for destination research.
const InsightsSystem = "You are an expert travel guide providing detailed, accurate information."

const insightsFormat = `Provide detailed travel insights for %s as JSON:

{
  "description": "2-3 sentence overview of what makes this destination special",
  "best_time_to_visit": "detailed explanation with months and reasons",
  "average_daily_budget": {
    "budget": 60,
    "mid_range": 150,
    "luxury": 400
  },
  "top_attractions": [
    {"name": "attraction", "description": "why visit", "time_needed": "2-3 hours", "cost": 15},
    {"name": "attraction2", "description": "why visit", "time_needed": "half day", "cost": 0}
  ],
  "local_cuisine": [
    {"dish": "name", "description": "brief", "where": "type of place"},
    {"dish": "name2", "description": "brief", "where": "type of place"}
  ],
  "cultural_tips": [
    "important cultural insight 1",
    "important cultural insight 2",
    "important cultural insight 3"
  ],
  "safety_info": {"rating": 8, "notes": "specific safety tips"},
  "weather_by_season": {"spring": "...", "summer": "...", "fall": "...", "winter": "..."},
  "transportation": {"getting_around": "detailed transit info", "from_airport": "how to get from airport to city"},
  "language_tips": ["useful phrase 1", "useful phrase 2"],
  "currency": "currency name and exchange tips",
  "neighborhoods": [
    {"name": "neighborhood", "vibe": "description", "best_for": "what to do here"}
  ]
}

Be thorough and practical.`

// Insights builds the destination research prompt.
func Insights(destination string) string {
	return fmt.Sprintf(insightsFormat, destination)
}

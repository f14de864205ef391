// Package prompt builds the completion prompts for trip planning. Builders
// are pure functions of their inputs: the same trip parameters always
// produce byte-identical prompts.
package prompt

import (
	"fmt"
	"strings"
)

// ItinerarySystem primes the model for day-by-day planning.
const ItinerarySystem = "You are a professional travel planner creating detailed, realistic itineraries with specific recommendations."

const itineraryFormat = `
For EACH day provide detailed JSON:
[{
  "day": 1,
  "date": "%s",
  "title": "Descriptive day theme (e.g., Historic Heart & Local Flavors)",
  "morning": [
    {
      "time": "8:00 AM",
      "activity": "Breakfast at...",
      "description": "Why this is great, what to expect (2-3 sentences)",
      "duration": "1 hour",
      "cost": 15,
      "location": "neighborhood/address",
      "tips": "insider tip"
    },
    {
      "time": "9:30 AM",
      "activity": "Visit Main Attraction",
      "description": "Detailed explanation of what you'll see and experience",
      "duration": "2-3 hours",
      "cost": 25,
      "location": "specific area",
      "tips": "best time to visit, what to bring"
    }
  ],
  "afternoon": [
    {
      "time": "1:00 PM",
      "activity": "Lunch suggestion",
      "description": "What to try, atmosphere",
      "duration": "1.5 hours",
      "cost": 20,
      "location": "area",
      "tips": "reservation tips"
    },
    {
      "time": "3:00 PM",
      "activity": "Afternoon activity",
      "description": "Full experience description",
      "duration": "2 hours",
      "cost": 30,
      "location": "where",
      "tips": "practical advice"
    }
  ],
  "evening": [
    {
      "time": "7:00 PM",
      "activity": "Dinner & evening plans",
      "description": "Evening experience details",
      "duration": "2-3 hours",
      "cost": 50,
      "location": "area",
      "tips": "what to wear, reservations"
    }
  ],
  "transportation": "How to get around this day (metro lines, walking routes, etc)",
  "total_cost": 140,
  "energy_level": "moderate",
  "weather_considerations": "what to prepare for",
  "flexibility_note": "optional activities if time permits"
}]

Make it realistic with proper timing, real locations, and practical advice.`

// Itinerary builds the day-by-day itinerary prompt. Origin is optional;
// when present the first and last days get arrival and departure context.
func Itinerary(destination, origin string, days int, preferences []string, budgetLevel, startDate string) string {
	prefs := strings.Join(preferences, ", ")
	if prefs == "" {
		prefs = "general sightseeing"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %d-day itinerary for %s.\n\n", days, destination)
	b.WriteString("Trip details:\n")
	if origin != "" {
		fmt.Fprintf(&b, "- Starting from: %s\n", origin)
	}
	fmt.Fprintf(&b, "- Preferences: %s\n", prefs)
	fmt.Fprintf(&b, "- Budget: %s\n", budgetLevel)
	fmt.Fprintf(&b, "- Start date: %s\n", startDate)
	fmt.Fprintf(&b, itineraryFormat, startDate)
	b.WriteString("\n")
	if origin != "" {
		fmt.Fprintf(&b, "Day 1 should include arrival from %s.\n", origin)
	} else {
		b.WriteString("Day 1 should include arrival logistics.\n")
	}
	b.WriteString("Last day should account for departure logistics.\n")
	b.WriteString("Each activity should have meaningful descriptions, not generic statements.")
	return b.String()
}

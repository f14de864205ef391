package prompt

import (
	"fmt"
	"strings"
)

const packingFormat = `Create comprehensive packing list for %s in %s, %d days.
Activities: %s

JSON format:
{
  "documents": ["item with reason"],
  "clothing": ["specific items for weather/activities"],
  "footwear": ["what shoes and why"],
  "toiletries": ["essentials"],
  "electronics": ["device + accessories"],
  "medications": ["health items"],
  "accessories": ["bags, sunglasses, etc"],
  "activity_specific": ["gear for activities"],
  "optional": ["nice to have items"]
}

Be specific about quantities and reasons (e.g., "Light rain jacket - afternoon showers common")`

// Packing builds the packing checklist prompt. Activities steer the
// activity_specific section.
func Packing(destination string, days int, season string, activities []string) string {
	return fmt.Sprintf(packingFormat, destination, season, days, strings.Join(activities, ", "))
}

package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	defaultTheme    = "general sightseeing"
	defaultLanguage = "English"
	minStopsPerDay  = 2
	maxStopsPerDay  = 4
)

const selectionSchemaExample = `{
  "overview": {
    "title": "short title that captures the whole trip (string)",
    "summary": "3 to 5 sentence summary of the whole itinerary (string)",
    "highlights": ["highlight 1", "highlight 2"]
  },
  "daily_plan": [
    {
      "day": 1,
      "title": "one-line title for day 1",
      "reason": "why the day is laid out this way",
      "landmarks": [
        {
          "landmark_id": 123,
          "name": "exact name of the selected landmark",
          "order": 1,
          "reason": "why this stop is here",
          "is_user_selected": true
        },
        {
          "name": "a place you recommend",
          "order": 2,
          "reason": "why this stop is here",
          "is_user_selected": false
        }
      ]
    }
  ],
  "tips": {
    "packing": ["packing tip 1", "packing tip 2"],
    "local": ["local tip 1", "local tip 2"]
  }
}`

const freeSchemaExample = `{
  "overview": {
    "title": "short title that captures the whole trip (string)",
    "summary": "3 to 5 sentence summary of the whole itinerary (string)",
    "highlights": ["highlight 1", "highlight 2"]
  },
  "daily_plan": [
    {
      "day": 1,
      "title": "one-line title for day 1",
      "reason": "why the day is laid out this way",
      "landmarks": [
        {
          "name": "a place you recommend",
          "order": 1,
          "reason": "why this stop is here",
          "is_user_selected": false
        }
      ]
    }
  ],
  "tips": {
    "packing": ["packing tip 1", "packing tip 2"],
    "local": ["local tip 1", "local tip 2"]
  }
}`

// BuildPrompt renders the generation prompt for a trip. The output depends
// only on its arguments. req.DayCount must be at least 1; callers validate it.
func BuildPrompt(req types.TripRequest, landmarks []types.LandmarkRef) string {
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = defaultTheme
	}
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = defaultLanguage
	}
	selection := len(req.SelectedLandmarkIDs) > 0

	var b strings.Builder
	b.WriteString("You are a travel itinerary planner.\n")
	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary for the trip below. Write every text value in %s.\n\n", req.DayCount, language)

	b.WriteString("[Trip conditions]\n")
	fmt.Fprintf(&b, "- Country code: %s\n", req.CountryCode)
	fmt.Fprintf(&b, "- Region code: %s\n", req.RegionCode)
	fmt.Fprintf(&b, "- Number of days: %d\n", req.DayCount)
	fmt.Fprintf(&b, "- Theme: %s\n\n", theme)

	b.WriteString("[Landmarks the traveller selected]\n")
	b.WriteString(landmarkList(req.SelectedLandmarkIDs, landmarks))
	b.WriteString("\n\n")

	b.WriteString("[Response format]\n")
	b.WriteString("Follow this JSON structure exactly. \"landmark_id\" is an integer and \"is_user_selected\" is a boolean.\n")
	if selection {
		b.WriteString(selectionSchemaExample)
	} else {
		b.WriteString(freeSchemaExample)
	}
	b.WriteString("\n\n")

	b.WriteString("[Rules]\n")
	rules := []string{
		"Respond with the single JSON object described above and nothing else: no markdown, no prose, no comments, no ``` code fences.",
		fmt.Sprintf("daily_plan must contain exactly %d entries whose \"day\" values run from 1 to %d without gaps.", req.DayCount, req.DayCount),
		fmt.Sprintf("Each day lists between %d and %d entries in \"landmarks\"; \"order\" starts at 1 and is unique within the day.", minStopsPerDay, maxStopsPerDay),
	}
	if selection {
		rules = append(rules,
			"Every landmark id listed under [Landmarks the traveller selected] must appear at least once as \"landmark_id\" of an entry with \"is_user_selected\": true.",
			"Places you add yourself must omit \"landmark_id\" and set \"is_user_selected\": false.",
		)
	} else {
		rules = append(rules,
			"The traveller selected no landmarks: never output \"landmark_id\" and set \"is_user_selected\": false on every entry.",
		)
	}
	rules = append(rules, "Order the stops of each day so the route between them is efficient.")
	for i, rule := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}

	return b.String()
}

// landmarkList lists the selected ids in request order, named from the catalog.
func landmarkList(selectedIDs []int64, landmarks []types.LandmarkRef) string {
	if len(selectedIDs) == 0 {
		return "(none selected, choose the places yourself)"
	}
	names := landmarkNames(landmarks)
	lines := make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		name, ok := names[id]
		if !ok {
			lines = append(lines, fmt.Sprintf("- id: %d", id))
			continue
		}
		lines = append(lines, fmt.Sprintf(`- id: %d, name: "%s"`, id, strings.ReplaceAll(name, `"`, `'`)))
	}
	return strings.Join(lines, "\n")
}

func landmarkNames(landmarks []types.LandmarkRef) map[int64]string {
	names := make(map[int64]string, len(landmarks))
	for _, lm := range landmarks {
		names[lm.ID] = lm.Name
	}
	return names
}

package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestBuildPrompt_SelectionMode(t *testing.T) {
	req := types.TripRequest{
		CountryCode:         "JP",
		RegionCode:          "tokyo",
		DayCount:            2,
		Theme:               "food",
		SelectedLandmarkIDs: []int64{101, 102},
	}
	landmarks := []types.LandmarkRef{{ID: 102, Name: `The "Sky" Tree`}, {ID: 101, Name: "Tokyo Tower"}}

	prompt := BuildPrompt(req, landmarks)

	assert.Contains(t, prompt, "- Country code: JP")
	assert.Contains(t, prompt, "- Region code: tokyo")
	assert.Contains(t, prompt, "- Number of days: 2")
	assert.Contains(t, prompt, "- Theme: food")
	assert.Contains(t, prompt, `- id: 101, name: "Tokyo Tower"`+"\n"+`- id: 102, name: "The 'Sky' Tree"`)
	assert.Contains(t, prompt, `"landmark_id": 123`)
	assert.Contains(t, prompt, `run from 1 to 2 without gaps`)
	assert.Contains(t, prompt, `between 2 and 4 entries`)
	assert.Contains(t, prompt, `must appear at least once as "landmark_id" of an entry with "is_user_selected": true`)
	assert.Contains(t, prompt, "no ``` code fences")
	assert.NotContains(t, prompt, "never output \"landmark_id\"")
}

func TestBuildPrompt_FreeMode(t *testing.T) {
	req := types.TripRequest{CountryCode: "TH", RegionCode: "bangkok", DayCount: 3}

	prompt := BuildPrompt(req, nil)

	assert.Contains(t, prompt, "(none selected, choose the places yourself)")
	assert.Contains(t, prompt, "- Theme: "+defaultTheme)
	assert.Contains(t, prompt, "Write every text value in English.")
	assert.Contains(t, prompt, `never output "landmark_id" and set "is_user_selected": false on every entry`)
	assert.Contains(t, prompt, `run from 1 to 3 without gaps`)
	assert.NotContains(t, prompt, `"landmark_id": 123`)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := types.TripRequest{
		CountryCode:         "UK",
		RegionCode:          "london",
		DayCount:            4,
		Language:            "Korean",
		SelectedLandmarkIDs: []int64{7},
	}
	landmarks := []types.LandmarkRef{{ID: 7, Name: "British Museum"}}

	first := BuildPrompt(req, landmarks)
	assert.Equal(t, first, BuildPrompt(req, landmarks))
	assert.Contains(t, first, "Write every text value in Korean.")
}

func TestBuildPrompt_UnknownSelectedIDListedWithoutName(t *testing.T) {
	req := types.TripRequest{CountryCode: "JP", RegionCode: "osaka", DayCount: 1, SelectedLandmarkIDs: []int64{9}}

	assert.Contains(t, BuildPrompt(req, nil), "- id: 9\n")
}

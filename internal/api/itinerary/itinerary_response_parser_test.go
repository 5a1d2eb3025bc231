package itinerary

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// tokyoModelOutput is a two-day plan that never mentions landmark 101.
const tokyoModelOutput = `{
  "overview": {"title": "  Tokyo in Two Days ", "summary": "Temples and towers.", "highlights": ["Senso-ji"]},
  "daily_plan": [
    {"day": 1, "title": "Old Tokyo", "reason": "Start east", "landmarks": [
      {"name": "Senso-ji", "order": 1, "reason": "Oldest temple", "is_user_selected": false},
      {"name": "Ueno Park", "order": 2, "reason": "Walkable", "is_user_selected": false}
    ]},
    {"day": 2, "title": "New Tokyo", "reason": "Head west", "landmarks": [
      {"name": "Shibuya Crossing", "order": 1, "reason": "Iconic", "is_user_selected": false},
      {"name": "Meiji Shrine", "order": 2, "reason": "Calm", "is_user_selected": false}
    ]}
  ],
  "tips": {"packing": ["Comfortable shoes"], "local": ["Get a Suica card"]}
}`

func tokyoRequest(selected ...int64) types.TripRequest {
	return types.TripRequest{CountryCode: "JP", RegionCode: "tokyo", DayCount: 2, SelectedLandmarkIDs: selected}
}

func decode(t *testing.T, canonical string) types.ItineraryDetail {
	t.Helper()
	var d types.ItineraryDetail
	require.NoError(t, json.Unmarshal([]byte(canonical), &d))
	return d
}

func assertInvariants(t *testing.T, d types.ItineraryDetail, req types.TripRequest) {
	t.Helper()

	days := make([]int, 0, len(d.DailyPlan))
	covered := map[int64]bool{}
	for _, day := range d.DailyPlan {
		days = append(days, day.Day)
		orders := map[int]bool{}
		for _, lm := range day.Landmarks {
			assert.Equal(t, lm.IsUserSelected, lm.LandmarkID != nil, "tag consistency for %q", lm.Name)
			assert.False(t, orders[lm.Order], "duplicate order %d on day %d", lm.Order, day.Day)
			orders[lm.Order] = true
			if lm.IsUserSelected {
				covered[*lm.LandmarkID] = true
			}
		}
	}
	sort.Ints(days)
	want := make([]int, req.DayCount)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, days, "day contiguity")
	for _, id := range req.SelectedLandmarkIDs {
		assert.True(t, covered[id], "selected landmark %d not covered", id)
	}
}

func TestExtractJSONText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain object", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "surrounding whitespace", raw: "  \n{\"a\":1}\n ", want: `{"a":1}`},
		{name: "fenced with json tag", raw: "Here:\n```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "upper-case tag", raw: "```JSON\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "untagged fence", raw: "```\n{\"a\":1}\n```\nthanks", want: `{"a":1}`},
		{name: "tag on same line", raw: "```json {\"a\":1}```", want: `{"a":1}`},
		{name: "first qualifying block wins", raw: "```text\nnothing\n```\n```json\n{\"b\":2}\n```\n```json\n{\"c\":3}\n```", want: `{"b":2}`},
		{name: "unclosed fence", raw: "```json\n{\"a\":1}", want: `{"a":1}`},
		{name: "no qualifying block", raw: "  ```\nno braces here\n```  ", want: "```\nno braces here\n```"},
		{name: "prose only", raw: "sorry, error", want: "sorry, error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONText(tt.raw))
		})
	}
}

func TestParseAndRepair_InsertsMissingSelectedLandmark(t *testing.T) {
	req := tokyoRequest(101)
	selected := []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}}

	title, canonical, err := ParseAndRepair(tokyoModelOutput, req, selected)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo in Two Days", title)

	d := decode(t, canonical)
	require.Len(t, d.DailyPlan, 2)
	day1 := d.DailyPlan[0].Landmarks
	require.Len(t, day1, 3)
	added := day1[2]
	assert.Equal(t, "Tokyo Tower", added.Name)
	assert.Equal(t, 3, added.Order)
	assert.True(t, added.IsUserSelected)
	require.NotNil(t, added.LandmarkID)
	assert.Equal(t, int64(101), *added.LandmarkID)
	assert.Equal(t, RepairReason, added.Reason)
	assert.Len(t, d.DailyPlan[1].Landmarks, 2)

	assertInvariants(t, d, req)
}

func TestParseAndRepair_RoundRobinAcrossDays(t *testing.T) {
	req := tokyoRequest(101, 202, 303)
	selected := []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}, {ID: 202, Name: "Skytree"}}

	_, canonical, err := ParseAndRepair(tokyoModelOutput, req, selected)
	require.NoError(t, err)

	d := decode(t, canonical)
	day1, day2 := d.DailyPlan[0].Landmarks, d.DailyPlan[1].Landmarks
	require.Len(t, day1, 4)
	require.Len(t, day2, 3)

	assert.Equal(t, int64(101), *day1[2].LandmarkID)
	assert.Equal(t, 3, day1[2].Order)
	assert.Equal(t, int64(202), *day2[2].LandmarkID)
	assert.Equal(t, "Skytree", day2[2].Name)
	assert.Equal(t, int64(303), *day1[3].LandmarkID)
	assert.Equal(t, 4, day1[3].Order)
	assert.Equal(t, "Landmark #303", day1[3].Name)

	assertInvariants(t, d, req)
}

func TestParseAndRepair_KeepsModelCoverage(t *testing.T) {
	output := `{"overview":{"title":"T"},"daily_plan":[
		{"day":2,"landmarks":[{"landmark_id":101,"name":"Tokyo Tower","order":5,"is_user_selected":true}]},
		{"day":1,"landmarks":[]}
	]}`
	req := tokyoRequest(101, 101)

	_, canonical, err := ParseAndRepair(output, req, []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}})
	require.NoError(t, err)

	d := decode(t, canonical)
	assert.Len(t, d.DailyPlan[0].Landmarks, 1)
	assert.Empty(t, d.DailyPlan[1].Landmarks)
	assertInvariants(t, d, req)
}

func TestParseAndRepair_EmptyDayGetsOrderOne(t *testing.T) {
	output := `{"overview":{"title":"T"},"daily_plan":[{"day":1,"landmarks":[]}]}`
	req := types.TripRequest{CountryCode: "UK", RegionCode: "london", DayCount: 1, SelectedLandmarkIDs: []int64{4}}

	_, canonical, err := ParseAndRepair(output, req, []types.LandmarkRef{{ID: 4, Name: "Big Ben"}})
	require.NoError(t, err)

	d := decode(t, canonical)
	require.Len(t, d.DailyPlan[0].Landmarks, 1)
	assert.Equal(t, 1, d.DailyPlan[0].Landmarks[0].Order)
}

func TestParseAndRepair_Idempotent(t *testing.T) {
	req := tokyoRequest(101, 202)
	selected := []types.LandmarkRef{{ID: 101, Name: "Tokyo Tower"}, {ID: 202, Name: "Skytree"}}

	title1, first, err := ParseAndRepair(tokyoModelOutput, req, selected)
	require.NoError(t, err)
	title2, second, err := ParseAndRepair(first, req, selected)
	require.NoError(t, err)

	assert.Equal(t, title1, title2)
	assert.Equal(t, first, second)
}

func TestParseAndRepair_CanonicalKeyOrderAndDefaults(t *testing.T) {
	output := `{"tips":{"local":["x"]},"daily_plan":[{"landmarks":[{"is_user_selected":false,"order":1,"name":"A"}],"day":1}],"overview":{"title":"   "}}`
	req := types.TripRequest{CountryCode: "TH", RegionCode: "phuket", DayCount: 1}

	title, canonical, err := ParseAndRepair(output, req, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, title)
	assert.Equal(t,
		`{"overview":{"title":"   ","summary":"","highlights":[]},"daily_plan":[{"day":1,"title":"","reason":"","landmarks":[{"name":"A","order":1,"reason":"","is_user_selected":false}]}],"tips":{"packing":[],"local":["x"]}}`,
		canonical)
}

func TestParseAndRepair_Failures(t *testing.T) {
	req := tokyoRequest()
	day := func(n int) string {
		return `{"day":` + string(rune('0'+n)) + `,"landmarks":[{"name":"A","order":1,"is_user_selected":false}]}`
	}

	tests := []struct {
		name string
		text string
		kind ParseFailureKind
	}{
		{name: "prose", text: "sorry, error", kind: InvalidJSON},
		{name: "empty", text: "", kind: InvalidJSON},
		{name: "truncated", text: `{"overview":{"title":"x"`, kind: InvalidJSON},
		{name: "top-level array", text: `[1,2]`, kind: SchemaMismatch},
		{name: "missing daily_plan", text: `{"overview":{"title":"x"}}`, kind: SchemaMismatch},
		{name: "missing overview", text: `{"daily_plan":[` + day(1) + `,` + day(2) + `]}`, kind: SchemaMismatch},
		{name: "title not a string", text: `{"overview":{"title":5},"daily_plan":[` + day(1) + `,` + day(2) + `]}`, kind: SchemaMismatch},
		{name: "too few days", text: `{"overview":{},"daily_plan":[` + day(1) + `]}`, kind: SchemaMismatch},
		{name: "repeated day", text: `{"overview":{},"daily_plan":[` + day(1) + `,` + day(1) + `]}`, kind: SchemaMismatch},
		{name: "day out of range", text: `{"overview":{},"daily_plan":[` + day(1) + `,` + day(3) + `]}`, kind: SchemaMismatch},
		{name: "landmark without name", text: `{"overview":{},"daily_plan":[{"day":1,"landmarks":[{"order":1,"is_user_selected":false}]},` + day(2) + `]}`, kind: SchemaMismatch},
		{name: "duplicate order", text: `{"overview":{},"daily_plan":[{"day":1,"landmarks":[{"name":"A","order":1,"is_user_selected":false},{"name":"B","order":1,"is_user_selected":false}]},` + day(2) + `]}`, kind: SchemaMismatch},
		{name: "id without selection tag", text: `{"overview":{},"daily_plan":[{"day":1,"landmarks":[{"landmark_id":3,"name":"A","order":1,"is_user_selected":false}]},` + day(2) + `]}`, kind: SchemaMismatch},
		{name: "selection tag without id", text: `{"overview":{},"daily_plan":[{"day":1,"landmarks":[{"name":"A","order":1,"is_user_selected":true}]},` + day(2) + `]}`, kind: SchemaMismatch},
		{name: "fractional day", text: `{"overview":{},"daily_plan":[{"day":1.5,"landmarks":[]},` + day(2) + `]}`, kind: SchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseAndRepair(tt.text, req, nil)
			require.Error(t, err)

			var pf *ParseFailure
			require.True(t, errors.As(err, &pf), "want *ParseFailure, got %T", err)
			assert.Equal(t, tt.kind, pf.Kind)
		})
	}
}

func TestParseAndRepair_NonPositiveDayCountNeverValidates(t *testing.T) {
	req := types.TripRequest{CountryCode: "JP", RegionCode: "tokyo", DayCount: 0}

	_, _, err := ParseAndRepair(tokyoModelOutput, req, nil)

	kind, ok := FailureKind(err)
	require.True(t, ok)
	assert.Equal(t, SchemaMismatch, kind)
}

func TestDecodeStoredDetail(t *testing.T) {
	_, canonical, err := ParseAndRepair(tokyoModelOutput, tokyoRequest(), nil)
	require.NoError(t, err)

	d, err := DecodeStoredDetail(canonical)
	require.NoError(t, err)
	assert.Equal(t, "  Tokyo in Two Days ", d.Overview.Title)
	assert.Len(t, d.DailyPlan, 2)

	_, err = DecodeStoredDetail("  ")
	assert.ErrorIs(t, err, api.ErrMissingDetail)

	_, err = DecodeStoredDetail("sorry, error")
	assert.ErrorIs(t, err, api.ErrStoredDetailCorrupt)
}

func TestRepairSelection_NoDaysIsNoop(t *testing.T) {
	d := types.ItineraryDetail{}
	assert.Equal(t, 0, RepairSelection(&d, []int64{1}, nil))
	assert.Empty(t, d.DailyPlan)
}

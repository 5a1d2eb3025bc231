package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandmarkIDs_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		ids    []int64
		stored string
	}{
		{name: "empty", ids: []int64{}, stored: ""},
		{name: "single", ids: []int64{101}, stored: "101"},
		{name: "ordered", ids: []int64{7, 101, 3}, stored: "7,101,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stored, JoinLandmarkIDs(tt.ids))

			parsed, err := ParseLandmarkIDs(tt.stored)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, parsed)
		})
	}
}

func TestParseLandmarkIDs_SkipsBlanksAndRejectsGarbage(t *testing.T) {
	ids, err := ParseLandmarkIDs("1,,2, 3 ,")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = ParseLandmarkIDs("1,abc")
	assert.Error(t, err)
}

func TestItineraryDetail_NormalizeSerializesEmptyArrays(t *testing.T) {
	d := ItineraryDetail{DailyPlan: []DayPlan{{Day: 1}}}
	d.Normalize()

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"overview": {"title": "", "summary": "", "highlights": []},
		"daily_plan": [{"day": 1, "title": "", "reason": "", "landmarks": []}],
		"tips": {"packing": [], "local": []}
	}`, string(raw))
}

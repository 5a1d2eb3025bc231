package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TripRequest is what a user submits to get an itinerary generated.
type TripRequest struct {
	CountryCode         string  `json:"country_code"`
	RegionCode          string  `json:"region_code"`
	DayCount            int     `json:"days"`
	Theme               string  `json:"theme,omitempty"`
	SelectedLandmarkIDs []int64 `json:"selected_landmark_ids"`
	StartDate           string  `json:"start_date,omitempty"` // YYYY-MM-DD, optional
	Language            string  `json:"language,omitempty"`
}

// LandmarkRef is the slice of a catalog landmark the planner needs.
type LandmarkRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItineraryDetail is the structured itinerary produced by the model.
// Field order is the canonical key order of the stored JSON.
type ItineraryDetail struct {
	Overview  Overview  `json:"overview"`
	DailyPlan []DayPlan `json:"daily_plan"`
	Tips      Tips      `json:"tips"`
}

type Overview struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

type DayPlan struct {
	Day       int           `json:"day"`
	Title     string        `json:"title"`
	Reason    string        `json:"reason"`
	Landmarks []DayLandmark `json:"landmarks"`
}

// DayLandmark is one stop of a day. LandmarkID is set only for stops the
// user picked from the catalog.
type DayLandmark struct {
	LandmarkID     *int64 `json:"landmark_id,omitempty"`
	Name           string `json:"name"`
	Order          int    `json:"order"`
	Reason         string `json:"reason"`
	IsUserSelected bool   `json:"is_user_selected"`
}

type Tips struct {
	Packing []string `json:"packing"`
	Local   []string `json:"local"`
}

// Normalize replaces nil collections with empty ones so the detail always
// serializes the same way.
func (d *ItineraryDetail) Normalize() {
	if d.Overview.Highlights == nil {
		d.Overview.Highlights = []string{}
	}
	if d.DailyPlan == nil {
		d.DailyPlan = []DayPlan{}
	}
	for i := range d.DailyPlan {
		if d.DailyPlan[i].Landmarks == nil {
			d.DailyPlan[i].Landmarks = []DayLandmark{}
		}
	}
	if d.Tips.Packing == nil {
		d.Tips.Packing = []string{}
	}
	if d.Tips.Local == nil {
		d.Tips.Local = []string{}
	}
}

// Itinerary is a persisted, generated itinerary.
type Itinerary struct {
	ID                  int64     `json:"id"`
	CountryCode         string    `json:"country_code"`
	RegionCode          string    `json:"region_code"`
	Days                int       `json:"days"`
	StartDate           string    `json:"start_date"`
	Theme               string    `json:"theme"`
	SelectedLandmarkIDs []int64   `json:"selected_landmark_ids"`
	Title               string    `json:"title"`
	AISummary           string    `json:"ai_summary"`
	CreatedAt           time.Time `json:"created_at"`
}

// ItineraryReport is everything the report page shows for one itinerary.
type ItineraryReport struct {
	Itinerary   Itinerary          `json:"itinerary"`
	Detail      ItineraryDetail    `json:"detail"`
	Restaurants []JapanRestaurant  `json:"restaurants"`
	Activities  []ThailandActivity `json:"activities"`
	Museums     []UKMuseum         `json:"museums"`
	Forecast    *WeatherForecast   `json:"forecast,omitempty"`
}

// ItineraryFilter narrows itinerary listings; empty fields match anything.
type ItineraryFilter struct {
	CountryCode string
	RegionCode  string
	Limit       int
}

// JoinLandmarkIDs stores selected ids as comma-joined text.
func JoinLandmarkIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// ParseLandmarkIDs reverses JoinLandmarkIDs. Empty segments are skipped.
func ParseLandmarkIDs(s string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid landmark id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

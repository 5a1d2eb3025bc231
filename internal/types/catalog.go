package types

import "time"

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Region struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ChecklistItem is a static packing/preparation reminder. Category is a
// country code or ChecklistCategoryCommon.
type ChecklistItem struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

const ChecklistCategoryCommon = "COMMON"

type Landmark struct {
	ID          int64     `json:"id"`
	CountryCode string    `json:"country_code"`
	RegionCode  string    `json:"region_code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`
	ImageURL    string    `json:"image_url"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lng"`
	CreatedAt   time.Time `json:"created_at"`
}

type LandmarkCreate struct {
	CountryCode string  `json:"country_code"`
	RegionCode  string  `json:"region_code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Theme       string  `json:"theme"`
	ImageURL    string  `json:"image_url"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
}

// LandmarkUpdate is a partial update; nil fields are left untouched.
type LandmarkUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Theme       *string  `json:"theme,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Latitude    *float64 `json:"lat,omitempty"`
	Longitude   *float64 `json:"lng,omitempty"`
}

type LandmarkFilter struct {
	CountryCode string
	RegionCode  string
}

type JapanRestaurant struct {
	ID            int64   `json:"id"`
	RegionCode    string  `json:"region"`
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lng"`
	SignatureMenu string  `json:"signature_menu"`
	OpeningHours  string  `json:"opening_hours"`
}

type ThailandActivity struct {
	ID          int64  `json:"id"`
	RegionCode  string `json:"region"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UKMuseum struct {
	ID          int64  `json:"id"`
	RegionCode  string `json:"region"`
	Name        string `json:"name"`
	OpeningInfo string `json:"opening_info"`
	Description string `json:"description"`
}

// CountryExtras holds the country-specific recommendations of a region.
// Only the list matching the country is ever filled.
type CountryExtras struct {
	Restaurants []JapanRestaurant  `json:"restaurants"`
	Activities  []ThailandActivity `json:"activities"`
	Museums     []UKMuseum         `json:"museums"`
}

type TravelOverview struct {
	CountryCode string     `json:"country_code"`
	RegionCode  string     `json:"region_code"`
	Landmarks   []Landmark `json:"landmarks"`
	CountryExtras
}

package catalog

import (
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var countries = []types.Country{
	{Code: "JP", Name: "Japan"},
	{Code: "TH", Name: "Thailand"},
	{Code: "UK", Name: "United Kingdom"},
}

var regionsByCountry = map[string][]types.Region{
	"JP": {
		{Code: "tokyo", Name: "Tokyo", CountryCode: "JP", Lat: 35.6764225, Lon: 139.650027},
		{Code: "osaka", Name: "Osaka", CountryCode: "JP", Lat: 34.6937249, Lon: 135.5022535},
		{Code: "fukuoka", Name: "Fukuoka", CountryCode: "JP", Lat: 33.5901838, Lon: 130.4016888},
	},
	"TH": {
		{Code: "bangkok", Name: "Bangkok", CountryCode: "TH", Lat: 13.7563309, Lon: 100.5017651},
		{Code: "phuket", Name: "Phuket", CountryCode: "TH", Lat: 7.9843109, Lon: 98.3307468},
		{Code: "chiangmai", Name: "Chiang Mai", CountryCode: "TH", Lat: 18.7883439, Lon: 98.9853008},
	},
	"UK": {
		{Code: "london", Name: "London", CountryCode: "UK", Lat: 51.5072178, Lon: -0.1275862},
		{Code: "manchester", Name: "Manchester", CountryCode: "UK", Lat: 53.4807593, Lon: -2.2426305},
		{Code: "liverpool", Name: "Liverpool", CountryCode: "UK", Lat: 53.4083714, Lon: -2.9915726},
	},
}

var checklistItems = []types.ChecklistItem{
	{ID: 1, Text: "Check your passport expiry date", Category: types.ChecklistCategoryCommon},
	{ID: 2, Text: "Prepare flight and accommodation vouchers", Category: types.ChecklistCategoryCommon},
	{ID: 3, Text: "Arrange a local SIM or eSIM", Category: types.ChecklistCategoryCommon},
	{ID: 101, Text: "Check JR Pass or IC transit card", Category: "JP"},
	{ID: 102, Text: "Bring a towel and slippers for onsen visits", Category: "JP"},
	{ID: 201, Text: "Keep spare cash for night markets", Category: "TH"},
	{ID: 202, Text: "Temple dress code: long trousers and covered shoulders", Category: "TH"},
	{ID: 301, Text: "Pack a UK three-pin plug adapter", Category: "UK"},
	{ID: 302, Text: "Bring an umbrella or waterproof jacket", Category: "UK"},
}

// Countries returns the supported destination countries.
func Countries() []types.Country {
	out := make([]types.Country, len(countries))
	copy(out, countries)
	return out
}

// Regions returns the regions of a country, or false when it is unsupported.
func Regions(countryCode string) ([]types.Region, bool) {
	regions, ok := regionsByCountry[strings.ToUpper(countryCode)]
	if !ok {
		return nil, false
	}
	out := make([]types.Region, len(regions))
	copy(out, regions)
	return out, true
}

// FindRegion looks up one region of one country.
func FindRegion(countryCode, regionCode string) (types.Region, bool) {
	regions, ok := regionsByCountry[strings.ToUpper(countryCode)]
	if !ok {
		return types.Region{}, false
	}
	for _, r := range regions {
		if strings.EqualFold(r.Code, regionCode) {
			return r, true
		}
	}
	return types.Region{}, false
}

// Checklist returns the common items plus those of countryCode. An empty
// countryCode returns every item.
func Checklist(countryCode string) []types.ChecklistItem {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	out := []types.ChecklistItem{}
	for _, item := range checklistItems {
		if countryCode == "" || item.Category == types.ChecklistCategoryCommon || item.Category == countryCode {
			out = append(out, item)
		}
	}
	return out
}

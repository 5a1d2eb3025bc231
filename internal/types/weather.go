package types

// WeatherCondition is the coarse bucket a WMO weather code falls into.
type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherFoggy  WeatherCondition = "foggy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherSnowy  WeatherCondition = "snowy"
	WeatherStormy WeatherCondition = "stormy"
)

type CurrentWeather struct {
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	Temperature float64          `json:"temperature"`
	WindSpeed   float64          `json:"windspeed"`
	WeatherCode int              `json:"weathercode"`
	Condition   WeatherCondition `json:"condition"`
	Description string           `json:"description"`
	ObservedAt  string           `json:"observed_at"`
}

type DailyForecast struct {
	Date        string           `json:"date"`
	WeatherCode int              `json:"weathercode"`
	Condition   WeatherCondition `json:"condition"`
	Description string           `json:"description"`
	TempMax     float64          `json:"temp_max"`
	TempMin     float64          `json:"temp_min"`
}

type WeatherForecast struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Days      []DailyForecast `json:"days"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteDistance is the driving distance between two coordinates.
type RouteDistance struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

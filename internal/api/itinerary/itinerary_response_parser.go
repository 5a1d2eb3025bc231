package itinerary

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/xeipuuv/gojsonschema"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	// DefaultTitle is used whenever the model output has no usable title.
	DefaultTitle = "Travel Itinerary"
	// RepairReason is the reason given to selected landmarks the model left out.
	RepairReason = "Included because you selected this landmark."

	codeFence = "```"
)

//go:embed itinerary_schema.json
var itinerarySchemaJSON string

var loadItinerarySchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(itinerarySchemaJSON))
})

// ParseFailureKind classifies why model output could not be used.
type ParseFailureKind string

const (
	InvalidJSON    ParseFailureKind = "invalid-json"
	SchemaMismatch ParseFailureKind = "schema-mismatch"
)

// ParseFailure is returned when text cannot become an ItineraryDetail.
type ParseFailure struct {
	Kind   ParseFailureKind
	Reason string
	Err    error
}

func (e *ParseFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

func invalidJSON(reason string, err error) *ParseFailure {
	return &ParseFailure{Kind: InvalidJSON, Reason: reason, Err: err}
}

func schemaMismatch(format string, args ...any) *ParseFailure {
	return &ParseFailure{Kind: SchemaMismatch, Reason: fmt.Sprintf(format, args...)}
}

// ExtractJSONText strips markdown code fences the model may wrap its answer
// in. Without fences the trimmed text is returned. With fences, the first
// fenced block holding both braces is returned minus its language tag. When
// no block qualifies the trimmed text is returned as is.
func ExtractJSONText(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.Contains(text, codeFence) {
		return text
	}
	segments := strings.Split(text, codeFence)
	// odd segments are the fence interiors
	for i := 1; i < len(segments); i += 2 {
		block := strings.TrimSpace(segments[i])
		if strings.Contains(block, "{") && strings.Contains(block, "}") {
			return stripLanguageTag(block)
		}
	}
	return text
}

// stripLanguageTag drops a leading info-string such as "json" or "JSON".
func stripLanguageTag(block string) string {
	if strings.HasPrefix(block, "{") || strings.HasPrefix(block, "[") {
		return block
	}
	end := strings.IndexFunc(block, func(r rune) bool {
		return unicode.IsSpace(r) || r == '{' || r == '['
	})
	if end <= 0 {
		return block
	}
	for _, r := range block[:end] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return block
		}
	}
	return strings.TrimSpace(block[end:])
}

// ParseAndRepair validates jsonText as an itinerary for req, inserts any
// selected landmark the model left out and returns the title together with
// the canonical JSON. Errors are always *ParseFailure.
func ParseAndRepair(jsonText string, req types.TripRequest, selected []types.LandmarkRef) (string, string, error) {
	out, err := parseAndRepair(jsonText, req, selected)
	if err != nil {
		return "", "", err
	}
	return out.title, out.canonical, nil
}

type repairOutcome struct {
	title     string
	canonical string
	inserted  int
}

func parseAndRepair(jsonText string, req types.TripRequest, selected []types.LandmarkRef) (repairOutcome, error) {
	detail, err := parseDetail(jsonText, req.DayCount)
	if err != nil {
		return repairOutcome{}, err
	}

	inserted := RepairSelection(&detail, req.SelectedLandmarkIDs, selected)

	canonical, err := json.Marshal(detail)
	if err != nil {
		return repairOutcome{}, fmt.Errorf("encoding itinerary detail: %w", err)
	}
	return repairOutcome{
		title:     TitleOf(detail),
		canonical: string(canonical),
		inserted:  inserted,
	}, nil
}

// parseDetail is the strict path: syntax, then structure, then the rules the
// schema language cannot express.
func parseDetail(jsonText string, dayCount int) (types.ItineraryDetail, error) {
	var detail types.ItineraryDetail
	if !json.Valid([]byte(jsonText)) {
		var probe any
		return detail, invalidJSON("text is not valid JSON", json.Unmarshal([]byte(jsonText), &probe))
	}

	schema, err := loadItinerarySchema()
	if err != nil {
		return detail, fmt.Errorf("loading itinerary schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return detail, invalidJSON("document could not be loaded", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return detail, schemaMismatch("%s", strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal([]byte(jsonText), &detail); err != nil {
		return detail, &ParseFailure{Kind: SchemaMismatch, Reason: "document does not fit the itinerary shape", Err: err}
	}
	detail.Normalize()

	if err := validateDetail(detail, dayCount); err != nil {
		return detail, err
	}
	return detail, nil
}

func validateDetail(detail types.ItineraryDetail, dayCount int) error {
	if len(detail.DailyPlan) != dayCount {
		return schemaMismatch("daily_plan has %d days, want %d", len(detail.DailyPlan), dayCount)
	}
	seenDays := make(map[int]bool, len(detail.DailyPlan))
	for _, day := range detail.DailyPlan {
		if day.Day < 1 || day.Day > dayCount || seenDays[day.Day] {
			return schemaMismatch("day values must be exactly 1..%d, found %d", dayCount, day.Day)
		}
		seenDays[day.Day] = true

		seenOrders := make(map[int]bool, len(day.Landmarks))
		for _, lm := range day.Landmarks {
			if seenOrders[lm.Order] {
				return schemaMismatch("day %d repeats order %d", day.Day, lm.Order)
			}
			seenOrders[lm.Order] = true
			if lm.IsUserSelected != (lm.LandmarkID != nil) {
				return schemaMismatch("day %d entry %q: landmark_id must be present exactly when is_user_selected is true", day.Day, lm.Name)
			}
		}
	}
	return nil
}

// RepairSelection appends every selected landmark that no user-selected entry
// references yet. Missing landmarks are spread round-robin over the days in
// list order and get the next free order of their day. Running it again on
// its own output changes nothing. It returns the number of entries added.
func RepairSelection(detail *types.ItineraryDetail, selectedIDs []int64, selected []types.LandmarkRef) int {
	if len(selectedIDs) == 0 || len(detail.DailyPlan) == 0 {
		return 0
	}

	present := make(map[int64]bool)
	for _, day := range detail.DailyPlan {
		for _, lm := range day.Landmarks {
			if lm.IsUserSelected && lm.LandmarkID != nil {
				present[*lm.LandmarkID] = true
			}
		}
	}

	names := landmarkNames(selected)
	inserted := 0
	for _, id := range selectedIDs {
		if present[id] {
			continue
		}
		present[id] = true

		day := &detail.DailyPlan[inserted%len(detail.DailyPlan)]
		landmarkID := id
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("Landmark #%d", id)
		}
		day.Landmarks = append(day.Landmarks, types.DayLandmark{
			LandmarkID:     &landmarkID,
			Name:           name,
			Order:          nextOrder(day.Landmarks),
			Reason:         RepairReason,
			IsUserSelected: true,
		})
		inserted++
	}
	return inserted
}

func nextOrder(landmarks []types.DayLandmark) int {
	highest := 0
	for _, lm := range landmarks {
		if lm.Order > highest {
			highest = lm.Order
		}
	}
	return highest + 1
}

// TitleOf returns the trimmed overview title, or DefaultTitle when blank.
func TitleOf(detail types.ItineraryDetail) string {
	if title := strings.TrimSpace(detail.Overview.Title); title != "" {
		return title
	}
	return DefaultTitle
}

// DecodeStoredDetail re-parses the JSON stored with an itinerary.
func DecodeStoredDetail(stored string) (types.ItineraryDetail, error) {
	var detail types.ItineraryDetail
	if strings.TrimSpace(stored) == "" {
		return detail, api.ErrMissingDetail
	}
	if err := json.Unmarshal([]byte(stored), &detail); err != nil {
		return detail, fmt.Errorf("%w: %w", api.ErrStoredDetailCorrupt, err)
	}
	detail.Normalize()
	return detail, nil
}

// FailureKind extracts the parse failure kind from err, if any.
func FailureKind(err error) (ParseFailureKind, bool) {
	var pf *ParseFailure
	if errors.As(err, &pf) {
		return pf.Kind, true
	}
	return "", false
}

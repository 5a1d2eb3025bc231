package itinerary

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var csvHeader = []string{"section", "sub_section", "day", "name", "type", "description", "extra"}

// WriteReportCSV flattens a report into one CSV table: meta, overview,
// daily plan, tips, then the country extras.
func WriteReportCSV(w io.Writer, report types.ItineraryReport) error {
	cw := csv.NewWriter(w)
	it := report.Itinerary
	d := report.Detail

	rows := [][]string{csvHeader}

	title := it.Title
	if title == "" {
		title = DefaultTitle
	}
	meta := fmt.Sprintf("%d days, theme: %s", it.Days, it.Theme)
	if it.StartDate != "" {
		meta = fmt.Sprintf("from %s for %s", it.StartDate, meta)
	}
	rows = append(rows, []string{"meta", "basic", "", title, "", meta,
		fmt.Sprintf("country=%s, region=%s", it.CountryCode, it.RegionCode)})

	rows = append(rows, []string{"overview", "summary", "", d.Overview.Title, "", d.Overview.Summary, ""})
	for i, h := range d.Overview.Highlights {
		rows = append(rows, []string{"overview", "highlight", "", fmt.Sprintf("Highlight %d", i+1), "", h, ""})
	}

	for _, day := range d.DailyPlan {
		dayNo := strconv.Itoa(day.Day)
		rows = append(rows, []string{"daily", "day", dayNo, day.Title, "", day.Reason, ""})
		for _, lm := range day.Landmarks {
			kind, extra := "recommended place", ""
			if lm.IsUserSelected {
				kind = "selected landmark"
			}
			if lm.LandmarkID != nil {
				extra = fmt.Sprintf("landmark_id=%d", *lm.LandmarkID)
			}
			rows = append(rows, []string{"daily", "landmark", dayNo, lm.Name, kind, lm.Reason, extra})
		}
	}

	for _, tip := range d.Tips.Packing {
		rows = append(rows, []string{"tips", "packing", "", "Packing", "", tip, ""})
	}
	for _, tip := range d.Tips.Local {
		rows = append(rows, []string{"tips", "local", "", "Local tips", "", tip, ""})
	}

	for _, r := range report.Restaurants {
		var extra []string
		if r.SignatureMenu != "" {
			extra = append(extra, "signature menu: "+r.SignatureMenu)
		}
		if r.OpeningHours != "" {
			extra = append(extra, "opening hours: "+r.OpeningHours)
		}
		kind := "restaurant"
		if r.Rating > 0 {
			kind = fmt.Sprintf("restaurant (rating %.1f)", r.Rating)
		}
		rows = append(rows, []string{"extra", "restaurant", "", r.Name, kind, "", strings.Join(extra, " / ")})
	}
	for _, a := range report.Activities {
		rows = append(rows, []string{"extra", "activity", "", a.Name, "activity", a.Description, a.RegionCode})
	}
	for _, m := range report.Museums {
		extra := ""
		if m.OpeningInfo != "" {
			extra = "opening hours & closures: " + m.OpeningInfo
		}
		rows = append(rows, []string{"extra", "museum", "", m.Name, "museum", m.Description, extra})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing itinerary csv: %w", err)
	}
	return nil
}

package client

import (
	"context"
	"sort"
	"strconv"
	"time"
)

// GetReadinessData returns one ReadinessRecord per day in the range, built
// from watch_score events only. Metric values arrive as strings with the
// literal "255" meaning no data (an 8-bit sentinel). When several items land
// on the same date the most complete one wins; ties keep the first seen.
func (c *Client) GetReadinessData(ctx context.Context, start, end time.Time) ([]ReadinessRecord, error) {
	items, err := c.getEvents(ctx, "readiness", start, end, "readiness", nil)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]ReadinessRecord)
	for _, item := range items {
		if subType, _ := item.Str("subType"); subType != "watch_score" {
			continue
		}

		date := dateKey(item.Float("timestamp"))
		rec := ReadinessRecord{
			Date:               date,
			ReadinessScore:     sentinelInt(item["rdnsScore"]),
			ReadinessInsight:   sentinelInt(item["rdnsInsight"]),
			RHRScore:           sentinelInt(item["rhrScore"]),
			RHRBaseline:        sentinelInt(item["rhrBaseline"]),
			SleepRHR:           sentinelInt(item["sleepRHR"]),
			HRVScore:           sentinelInt(item["hrvScore"]),
			HRVBaseline:        sentinelInt(item["hrvBaseline"]),
			SleepHRV:           sentinelInt(item["sleepHRV"]),
			SkinTempScore:      sentinelInt(item["skinTempScore"]),
			SkinTempBaseline:   sentinelFloat(item["skinTempBaseLine"]),
			SkinTempCalibrated: sentinelFloat(item["skinTempCalibrated"]),
			MentalScore:        sentinelInt(item["mentScore"]),
			MentalBaseline:     sentinelInt(item["mentBaseLine"]),
			PhysicalScore:      sentinelInt(item["phyScore"]),
			PhysicalBaseline:   sentinelInt(item["phyBaseline"]),
			AHIScore:           sentinelInt(item["ahiScore"]),
			AHIBaseline:        sentinelFloat(item["ahiBaseline"]),
			AFibScore:          sentinelInt(item["afibScore"]),
			AFibBaseline:       sentinelInt(item["afibBaseLine"]),
		}

		existing, ok := byDate[date]
		if !ok || rec.completeness() > existing.completeness() {
			byDate[date] = rec
		}
	}

	records := make([]ReadinessRecord, 0, len(byDate))
	for _, rec := range byDate {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records, nil
}

// completeness counts non-absent metric fields, used for most-complete-wins
// joins of same-date items.
func (r ReadinessRecord) completeness() int {
	n := 0
	for _, p := range []*int{
		r.ReadinessScore, r.ReadinessInsight, r.RHRScore, r.RHRBaseline,
		r.SleepRHR, r.HRVScore, r.HRVBaseline, r.SleepHRV, r.SkinTempScore,
		r.MentalScore, r.MentalBaseline, r.PhysicalScore, r.PhysicalBaseline,
		r.AHIScore, r.AFibScore, r.AFibBaseline,
	} {
		if p != nil {
			n++
		}
	}
	for _, p := range []*float64{r.SkinTempBaseline, r.SkinTempCalibrated, r.AHIBaseline} {
		if p != nil {
			n++
		}
	}
	return n
}

// sentinelInt parses a readiness metric that arrives as a string or number.
// Empty, "255" and unparseable values are absent.
func sentinelInt(v any) *int {
	s := metricString(v)
	if s == "" || s == "255" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return intPtr(int(f))
}

// sentinelFloat parses a readiness metric without the 255 rule (baselines are
// genuine floats where 255 never occurs).
func sentinelFloat(v any) *float64 {
	s := metricString(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return floatPtr(f)
}

func metricString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

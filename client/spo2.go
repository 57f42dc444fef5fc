package client

import (
	"context"
	"net/url"
	"time"
)

// GetSpO2Data returns one SpO2Record per day in the range. Three event
// subtypes share the same date-keyed accumulator: odi sets the desaturation
// index fields, click appends a discrete reading, osa_event appends an apnea
// episode. A day's record is created lazily on first reference from any
// subtype; output preserves first-reference order.
func (c *Client) GetSpO2Data(ctx context.Context, start, end time.Time) ([]SpO2Record, error) {
	extra := url.Values{}
	extra.Set("timeZone", c.timeZone)

	items, err := c.getEvents(ctx, "blood_oxygen", start, end, "SpO2", extra)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*SpO2Record)
	var order []string
	dayFor := func(date string) *SpO2Record {
		if rec, ok := byDate[date]; ok {
			return rec
		}
		rec := &SpO2Record{Date: date}
		byDate[date] = rec
		order = append(order, date)
		return rec
	}

	for _, item := range items {
		subType, _ := item.Str("subType")
		switch subType {
		case "odi":
			rec := dayFor(dateKey(item.Float("timestamp")))
			rec.ODI = floatPtr(item.Float("odi"))
			rec.ODICount = item.Int("odiNum")
			if score := item.Int("score"); score > 0 {
				rec.SleepScore = intPtr(score)
			}

		case "click":
			extra := item.JSONDoc("extra")

			// Reading value priority: top-level spo2, generic value, the
			// extra payload, then the last non-null spo2History entry.
			spo2 := item.Int("spo2")
			if spo2 == 0 {
				spo2 = item.Int("value")
			}
			if spo2 == 0 {
				spo2 = extra.Int("spo2")
			}
			if spo2 == 0 {
				if history, ok := extra.List("spo2History"); ok {
					for i := len(history) - 1; i >= 0; i-- {
						if v, ok := history[i].(float64); ok && v != 0 {
							spo2 = int(v)
							break
						}
					}
				}
			}

			ts := extra.Float("timestamp")
			if ts == 0 {
				ts = item.Float("timestamp")
			}
			ts = normalizeEpoch(ts)

			rec := dayFor(dateKey(ts))
			if spo2 != 0 {
				readingType := "manual"
				if isAuto, ok := extra["isAuto"].(bool); ok && isAuto {
					readingType = "auto"
				}
				rec.Readings = append(rec.Readings, SpO2Reading{
					Timestamp: time.Unix(int64(ts), 0),
					SpO2:      spo2,
					Type:      readingType,
				})
			}

		case "osa_event":
			extra := item.JSONDoc("extra")

			ts := extra.Float("timestamp")
			if ts == 0 {
				ts = item.Float("timestamp")
			}
			ts = normalizeEpoch(ts)

			rec := dayFor(dateKey(ts))
			event := OSAEvent{
				Timestamp:   time.Unix(int64(ts), 0),
				SpO2Samples: intSamples(extra["spo2"]),
				HRSamples:   intSamples(extra["hr"]),
			}
			if v, ok := extra.Num("spo2_decrease"); ok {
				event.SpO2Decrease = intPtr(int(v))
			}
			rec.OSAEvents = append(rec.OSAEvents, event)
		}
	}

	records := make([]SpO2Record, 0, len(order))
	for _, date := range order {
		records = append(records, *byDate[date])
	}
	return records, nil
}

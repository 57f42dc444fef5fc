package client

import (
	"context"
	"time"
)

// GetStressData returns one StressRecord per day in the range. The intraday
// reading series is embedded in each item as a JSON string; a malformed
// series degrades to an empty one, it does not fail the fetch.
func (c *Client) GetStressData(ctx context.Context, start, end time.Time) ([]StressRecord, error) {
	items, err := c.getEvents(ctx, "all_day_stress", start, end, "stress", nil)
	if err != nil {
		return nil, err
	}

	records := make([]StressRecord, 0, len(items))
	for _, item := range items {
		rec := StressRecord{
			Date:             dateKey(item.Float("timestamp")),
			MinStress:        item.Int("minStress"),
			MaxStress:        item.Int("maxStress"),
			AvgStress:        item.Int("avgStress"),
			RelaxProportion:  item.Int("relaxProportion"),
			NormalProportion: item.Int("normalProportion"),
			MediumProportion: item.Int("mediumProportion"),
			HighProportion:   item.Int("highProportion"),
		}

		for _, raw := range item.JSONList("data") {
			point, ok := asDoc(raw)
			if !ok {
				continue
			}
			rec.Readings = append(rec.Readings, StressReading{
				Timestamp: timeFromEpoch(point.Float("time")),
				Value:     point.Int("value"),
			})
		}

		records = append(records, rec)
	}
	return records, nil
}

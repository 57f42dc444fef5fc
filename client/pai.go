package client

import (
	"context"
	"time"
)

// GetPAIData returns one PAIRecord per day in the range. Identity fields
// (age, gender, zone limits, HR bounds) treat zero as the feed's no-data
// sentinel; score fields keep genuine zeroes.
func (c *Client) GetPAIData(ctx context.Context, start, end time.Time) ([]PAIRecord, error) {
	items, err := c.getEvents(ctx, "PaiHealthInfo", start, end, "PAI", nil)
	if err != nil {
		return nil, err
	}

	records := make([]PAIRecord, 0, len(items))
	for _, item := range items {
		rec := PAIRecord{
			Date:               dateKey(item.Float("timestamp")),
			TotalPAI:           item.Float("totalPai"),
			DailyPAI:           item.Float("dailyPai"),
			LowZoneMinutes:     item.Int("lowZoneMinutes"),
			MediumZoneMinutes:  item.Int("mediumZoneMinutes"),
			HighZoneMinutes:    item.Int("highZoneMinutes"),
			LowZonePAI:         item.Float("lowZonePai"),
			MediumZonePAI:      item.Float("mediumZonePai"),
			HighZonePAI:        item.Float("highZonePai"),
			ActivityScores:     floatList(item["activityScores"]),
			NextActivityScores: floatList(item["nextActivityScores"]),
		}

		if v := item.Int("restHr"); v != 0 {
			rec.RestingHR = intPtr(v)
		}
		if v := item.Int("maxHr"); v != 0 {
			rec.MaxHR = intPtr(v)
		}
		if v := item.Int("lowZoneLowerLimit"); v != 0 {
			rec.LowZoneLimit = intPtr(v)
		}
		if v := item.Int("mediumZoneLowerLimit"); v != 0 {
			rec.MediumZoneLimit = intPtr(v)
		}
		if v := item.Int("highZoneLowerLimit"); v != 0 {
			rec.HighZoneLimit = intPtr(v)
		}
		if v := item.Int("age"); v != 0 {
			rec.UserAge = intPtr(v)
		}
		if v, ok := item.Num("gender"); ok {
			rec.UserGender = intPtr(int(v))
		}

		records = append(records, rec)
	}
	return records, nil
}

package client

import (
	"context"
	"math"
	"time"
)

// GetSummary returns one DailySummary per band-data day, date-ascending as
// served by the band-data endpoint.
func (c *Client) GetSummary(ctx context.Context, start, end time.Time) ([]DailySummary, error) {
	days, err := c.GetDailyData(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summaries := make([]DailySummary, 0, len(days))
	for _, day := range days {
		s := DailySummary{Date: day.Date}

		if day.Steps != nil {
			s.TotalSteps = day.Steps.Steps
			s.TotalDistanceMeters = day.Steps.DistanceMeters
			s.TotalCalories = day.Steps.Calories
		}
		if day.Sleep != nil {
			s.SleepMinutes = day.Sleep.TotalMinutes
			s.DeepSleepMinutes = day.Sleep.DeepSleepMinutes
			s.LightSleepMinutes = day.Sleep.LightSleepMinutes
			s.REMSleepMinutes = day.Sleep.REMSleepMinutes
		}

		for _, hr := range day.HeartRates {
			switch hr.Tag {
			case "resting":
				s.RestingHeartRate = intPtr(hr.BPM)
			case "max":
				s.MaxHeartRate = intPtr(hr.BPM)
			}
		}
		if s.RestingHeartRate == nil && day.Sleep != nil {
			s.RestingHeartRate = day.Sleep.RestingHeartRate
		}
		// The feed has no explicit minimum; resting is the best stand-in.
		s.MinHeartRate = s.RestingHeartRate

		summaries = append(summaries, s)
	}
	return summaries, nil
}

// GetAggregateSummary joins the core summary with the stress, SpO2 and PAI
// collections by date key. Dates absent from a secondary collection leave the
// corresponding field nil; output order follows the core summary.
func (c *Client) GetAggregateSummary(ctx context.Context, start, end time.Time) ([]DailySummary, error) {
	summaries, err := c.GetSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stress, err := c.GetStressData(ctx, start, end)
	if err != nil {
		return nil, err
	}
	spo2, err := c.GetSpO2Data(ctx, start, end)
	if err != nil {
		return nil, err
	}
	pai, err := c.GetPAIData(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stressByDate := make(map[string]StressRecord, len(stress))
	for _, rec := range stress {
		stressByDate[rec.Date] = rec
	}
	spo2ByDate := make(map[string]SpO2Record, len(spo2))
	for _, rec := range spo2 {
		spo2ByDate[rec.Date] = rec
	}
	paiByDate := make(map[string]PAIRecord, len(pai))
	for _, rec := range pai {
		paiByDate[rec.Date] = rec
	}

	for i := range summaries {
		date := summaries[i].Date

		if rec, ok := stressByDate[date]; ok {
			summaries[i].AvgStress = intPtr(rec.AvgStress)
		}
		if rec, ok := spo2ByDate[date]; ok && len(rec.Readings) > 0 {
			sum := 0
			for _, reading := range rec.Readings {
				sum += reading.SpO2
			}
			mean := float64(sum) / float64(len(rec.Readings))
			summaries[i].AvgSpO2 = intPtr(int(math.Round(mean)))
		}
		if rec, ok := paiByDate[date]; ok {
			summaries[i].TotalPAI = floatPtr(rec.TotalPAI)
		}
	}

	return summaries, nil
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// activityModes maps band activity stage codes to readable names. Unknown
// codes get a synthetic unknown_<code> label instead of failing the day.
var activityModes = map[int]string{
	1:  "slow_walking",
	3:  "fast_walking",
	4:  "light_sleep",
	5:  "deep_sleep",
	6:  "running",
	7:  "normal_activity",
	9:  "cycling",
	11: "rem_sleep",
	80: "outdoor_running",
	81: "walking",
	82: "hiking",
	83: "treadmill",
	84: "cycling",
	85: "stationary_bike",
}

type bandDataResponse struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    []Document `json:"data"`
}

// GetBandData returns the raw band-data entries for a date range. Most
// callers want GetDailyData instead.
func (c *Client) GetBandData(ctx context.Context, start, end time.Time) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.ensureAuthenticated(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query_type", "summary")
	params.Set("device_type", "ios_phone")
	params.Set("userid", c.creds.UserID)
	params.Set("from_date", start.Format("2006-01-02"))
	params.Set("to_date", end.Format("2006-01-02"))

	resp, err := c.get(ctx, c.bandDataURL, params)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	observeRequest("band_data", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil, &APIStatusError{Label: "band", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result bandDataResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.Code != 1 {
		return nil, &APICodeError{Label: "band", Code: result.Code, Message: result.Message}
	}
	return result.Data, nil
}

// GetDailyData returns one parsed ActivityDay per band-data entry in the
// range. Days whose summary blob cannot be decoded come back with the date
// set and everything else absent.
func (c *Client) GetDailyData(ctx context.Context, start, end time.Time) ([]ActivityDay, error) {
	raw, err := c.GetBandData(ctx, start, end)
	if err != nil {
		return nil, err
	}
	days := make([]ActivityDay, 0, len(raw))
	for _, entry := range raw {
		days = append(days, parseDayData(entry))
	}
	return days, nil
}

func parseDayData(raw Document) ActivityDay {
	date, ok := raw.Str("date_time")
	if !ok {
		date, _ = raw.Str("dateTime")
	}

	day := ActivityDay{Date: date}

	b64, _ := raw.Str("summary")
	if b64 == "" {
		return day
	}
	summary := decodeSummary(b64)
	if summary == nil {
		return day
	}

	day.Steps = parseStepSummary(summary, date)
	day.Sleep = parseSleepFromSummary(summary, date)
	day.Activities = parseActivitiesFromSummary(summary, date)
	day.HeartRates = parseHeartRateFromSummary(summary, date)
	return day
}

// parseStepSummary reads the step totals from the stp sub-document, falling
// back to the flatter legacy layout when stp is a bare scalar. Missing
// numeric fields default to 0.
func parseStepSummary(summary Document, date string) *StepRecord {
	if stp, ok := summary.Doc("stp"); ok || summary["stp"] == nil {
		return &StepRecord{
			Date:              date,
			Steps:             stp.Int("ttl"),
			DistanceMeters:    stp.Int("dis"),
			Calories:          stp.Int("cal"),
			RunDistanceMeters: stp.Int("runDist"),
			WalkingMinutes:    stp.Int("wk"),
			RunningCalories:   stp.Int("runCal"),
			RunningSteps:      stp.Int("rn"),
		}
	}
	// Legacy flat layout: stp/dis/cal/runDis are top-level scalars.
	return &StepRecord{
		Date:              date,
		Steps:             summary.Int("stp"),
		DistanceMeters:    summary.Int("dis"),
		Calories:          summary.Int("cal"),
		RunDistanceMeters: summary.Int("runDis"),
	}
}

// parseSleepFromSummary maps the slp sub-document into a SleepRecord. A night
// whose deep+light+REM minutes sum to zero means the device captured nothing,
// so the mapper reports absence rather than a zero-duration record.
func parseSleepFromSummary(summary Document, date string) *SleepRecord {
	slp, ok := summary.Doc("slp")
	if !ok {
		return nil
	}

	deep := slp.Int("dp")
	light := slp.Int("lt")
	rem := slp.Int("dt") // REM minutes live under dt
	total := deep + light + rem
	if total == 0 {
		return nil
	}

	base := midnightOf(date)

	// Start/end are either absolute epochs or minute offsets from midnight.
	var startTime, endTime time.Time
	startTS := slp.Float("st")
	endTS := slp.Float("ed")
	if startTS > absoluteEpochThreshold {
		startTime = time.Unix(int64(startTS), 0)
		endTime = time.Unix(int64(endTS), 0)
	} else {
		startTime = base.Add(time.Duration(startTS) * time.Minute)
		endTime = base.Add(time.Duration(endTS) * time.Minute)
	}

	var phases []SleepPhase
	if stages, ok := slp.List("stage"); ok {
		for _, raw := range stages {
			stage, ok := asDoc(raw)
			if !ok {
				continue
			}
			phaseStart := stage.Int("start")
			phaseEnd := phaseStart
			if v, ok := stage.Num("stop"); ok {
				phaseEnd = int(v)
			}
			mode := 4
			if v, ok := stage.Num("mode"); ok {
				mode = int(v)
			}
			phases = append(phases, SleepPhase{
				Start:           base.Add(time.Duration(phaseStart) * time.Minute),
				End:             base.Add(time.Duration(phaseEnd) * time.Minute),
				Type:            sleepPhaseType(mode),
				DurationMinutes: phaseEnd - phaseStart,
			})
		}
	}

	rec := &SleepRecord{
		Date:              date,
		StartTime:         startTime,
		EndTime:           endTime,
		TotalMinutes:      total,
		DeepSleepMinutes:  deep,
		LightSleepMinutes: light,
		REMSleepMinutes:   rem,
		WakeCount:         slp.Int("wc"),
		WakeMinutes:       slp.Int("wk"),
		Phases:            phases,
	}
	if v, ok := slp.Num("ss"); ok {
		rec.SleepScore = intPtr(int(v))
	}
	if v, ok := slp.Num("rhr"); ok {
		rec.RestingHeartRate = intPtr(int(v))
	}
	if v := slp.Int("lb"); v != 0 {
		rec.OnsetLatencyMinutes = intPtr(v)
	}
	if v := slp.Int("ebt"); v != 0 {
		rec.TotalBedTimeMinutes = intPtr(v)
	}
	if v := slp.Int("obt"); v != 0 {
		rec.OutOfBedMinutes = intPtr(v)
	}
	if v := slp.Int("is"); v != 0 {
		rec.InterruptionScore = intPtr(v)
	}
	return rec
}

func sleepPhaseType(mode int) string {
	switch mode {
	case 5:
		return "deep"
	case 4:
		return "light"
	case 8, 11:
		return "rem"
	}
	return "awake"
}

// parseHeartRateFromSummary extracts the day's max-HR sample (hr.maxHr) and
// the resting-HR sample recorded during sleep (slp.rhr). A missing or
// non-positive source yields no sample for that tag, never a zero-value one.
func parseHeartRateFromSummary(summary Document, date string) []HeartRateSample {
	var samples []HeartRateSample
	base := midnightOf(date)

	if hr, ok := summary.Doc("hr"); ok {
		if maxHr, ok := hr.Doc("maxHr"); ok && maxHr.Int("hr") > 0 {
			at := base
			if ts := maxHr.Float("ts"); ts > absoluteEpochThreshold {
				at = time.Unix(int64(ts), 0)
			}
			samples = append(samples, HeartRateSample{Timestamp: at, BPM: maxHr.Int("hr"), Tag: "max"})
		}
	}

	if slp, ok := summary.Doc("slp"); ok {
		if rhr := slp.Int("rhr"); rhr > 0 {
			samples = append(samples, HeartRateSample{Timestamp: base, BPM: rhr, Tag: "resting"})
		}
	}

	return samples
}

// parseActivitiesFromSummary maps stp.stage entries into activity bouts.
// Boundaries are minute offsets from midnight.
func parseActivitiesFromSummary(summary Document, date string) []ActivityBout {
	stp, ok := summary.Doc("stp")
	if !ok {
		return nil
	}
	stages, ok := stp.List("stage")
	if !ok {
		return nil
	}

	base := midnightOf(date)
	var bouts []ActivityBout
	for _, raw := range stages {
		stage, ok := asDoc(raw)
		if !ok {
			continue
		}
		start := stage.Int("start")
		stop := start
		if v, ok := stage.Num("stop"); ok {
			stop = int(v)
		}
		mode := stage.Int("mode")
		bouts = append(bouts, ActivityBout{
			Start:    base.Add(time.Duration(start) * time.Minute),
			End:      base.Add(time.Duration(stop) * time.Minute),
			Mode:     mode,
			ModeName: activityModeName(mode),
			Steps:    stage.Int("step"),
			Distance: stage.Int("dis"),
			Calories: stage.Int("cal"),
		})
	}
	return bouts
}

func activityModeName(mode int) string {
	if name, ok := activityModes[mode]; ok {
		return name
	}
	return unknownLabel(mode)
}

// unknownLabel is the synthetic name for codes absent from a lookup table.
func unknownLabel(code int) string {
	return fmt.Sprintf("unknown_%d", code)
}

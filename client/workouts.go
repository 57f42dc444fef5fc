package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// workoutTypes maps sport type codes to readable names.
var workoutTypes = map[int]string{
	1:   "outdoor_running",
	2:   "walking",
	3:   "cycling",
	4:   "treadmill",
	5:   "indoor_cycling",
	6:   "elliptical",
	7:   "climbing",
	8:   "trail_running",
	9:   "skiing",
	10:  "snowboarding",
	16:  "freestyle",
	17:  "swimming",
	18:  "indoor_swimming",
	19:  "open_water_swimming",
	20:  "yoga",
	21:  "rowing",
	22:  "indoor_rowing",
	64:  "strength_training",
	128: "hiit",
	223: "other",
}

// hrZoneNames are the workout heart-rate zone labels, by zone index.
var hrZoneNames = []string{"Very Light", "Light", "Moderate", "Hard", "Maximum", "Extreme"}

// WorkoutQuery narrows a workout history fetch. Zero-value Start/End leave
// that side of the window unbounded; Source optionally restricts the
// recording device.
type WorkoutQuery struct {
	Start  time.Time
	End    time.Time
	Source string
}

type workoutHistoryResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Summary []Document `json:"summary"`
		Next    any        `json:"next"`
	} `json:"data"`
}

// GetWorkouts returns the workout history, newest pages first as served.
//
// The endpoint paginates with an opaque next token passed back as
// stopTrackId. The server has no date parameters, so the query window is
// applied as a per-item post-filter; out-of-range pages are fetched and
// discarded, and no ordering of pages is assumed. Pagination stops on a
// terminal token (empty, 0 or -1 in string or numeric form), on a token seen
// before (cycle guard), or on a page that contributed no previously-unseen
// track ids (stagnation guard).
func (c *Client) GetWorkouts(ctx context.Context, q WorkoutQuery) ([]WorkoutRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.ensureAuthenticated(); err != nil {
		return nil, err
	}

	params := url.Values{}
	if q.Source != "" {
		params.Set("source", q.Source)
	}

	var workouts []WorkoutRecord
	seen := make(map[string]bool)
	nextToken := ""

	for {
		if nextToken != "" {
			params.Set("stopTrackId", nextToken)
		}

		resp, err := c.get(ctx, c.workoutURL, params)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}
		observeRequest("workout_history", resp.StatusCode)
		if resp.StatusCode != http.StatusOK {
			return nil, &APIStatusError{Label: "workouts", StatusCode: resp.StatusCode, Body: string(body)}
		}

		var result workoutHistoryResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, err
		}
		if result.Code != 1 {
			return nil, &APICodeError{Label: "workouts", Code: result.Code, Message: result.Message}
		}

		newItems := 0
		for _, item := range result.Data.Summary {
			trackID := trackIDString(item["trackid"])
			if trackID != "" {
				if seen[trackID] {
					continue
				}
				seen[trackID] = true
			}
			newItems++

			if rec, ok := parseWorkoutItem(item, trackID, q); ok {
				workouts = append(workouts, rec)
			}
		}

		token, terminal := nextTokenString(result.Data.Next)
		if terminal {
			break
		}
		if seen[token] {
			break
		}
		if newItems == 0 {
			break
		}
		nextToken = token
	}

	return workouts, nil
}

// trackIDString renders a track id that may arrive as a string or number.
func trackIDString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	}
	return ""
}

// nextTokenString renders the pagination token and reports whether it is one
// of the terminal sentinels.
func nextTokenString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, t == "" || t == "0" || t == "-1"
	case float64:
		return strconv.FormatInt(int64(t), 10), t == 0 || t == -1
	}
	return "", true
}

// itemReader reads numeric fields off one workout item. A field that is
// present but cannot be coerced poisons the reader and the whole item is
// dropped, matching the feed's habit of occasionally shipping junk rows.
type itemReader struct {
	d   Document
	bad bool
}

func (r *itemReader) num(key string) float64 {
	if v, present := r.d[key]; !present || v == nil {
		return 0
	}
	f, ok := r.d.Num(key)
	if !ok {
		r.bad = true
		return 0
	}
	return f
}

func parseWorkoutItem(item Document, trackID string, q WorkoutQuery) (WorkoutRecord, bool) {
	r := &itemReader{d: item}

	endTS := int64(r.num("end_time"))
	duration := int(r.num("run_time"))
	// The feed reports no explicit start; reconstruct it from the end and
	// the running time.
	startTime := time.Unix(endTS-int64(duration), 0)
	endTime := time.Unix(endTS, 0)

	if !q.Start.IsZero() && startTime.Before(startOfDay(q.Start)) {
		return WorkoutRecord{}, false
	}
	if !q.End.IsZero() && !startTime.Before(startOfDay(q.End).AddDate(0, 0, 1)) {
		return WorkoutRecord{}, false
	}

	workoutType := int(r.num("type"))
	rec := WorkoutRecord{
		TrackID:         trackID,
		Type:            workoutType,
		Name:            workoutTypeName(workoutType),
		StartTime:       startTime,
		EndTime:         endTime,
		DurationSeconds: duration,
		DistanceMeters:  r.num("dis"),
		Calories:        r.num("calorie"),
		TotalSteps:      int(r.num("total_step")),
		TotalSets:       int(r.num("total_group")),
	}

	// Training effects are shipped as integers scaled by 10.
	if te := r.num("te"); te > 0 {
		rec.TrainingEffect = floatPtr(te / 10)
	}
	if te := r.num("anaerobic_te"); te > 0 {
		rec.AnaerobicTE = floatPtr(te / 10)
	}

	if v := r.num("avg_heart_rate"); v != 0 {
		rec.AvgHeartRate = intPtr(int(v))
	}
	if v := r.num("max_heart_rate"); v != 0 {
		rec.MaxHeartRate = intPtr(int(v))
	}
	if v := r.num("min_heart_rate"); v != 0 {
		rec.MinHeartRate = intPtr(int(v))
	}
	if v := r.num("avg_pace"); v != 0 {
		rec.AvgPace = floatPtr(v)
	}

	// -1 means not available for the fields below.
	if v := r.num("VO2_max"); v > 0 {
		rec.VO2Max = intPtr(int(v))
	}
	if v := r.num("exercise_load"); v > 0 {
		rec.ExerciseLoad = intPtr(int(v))
	}
	if v := r.num("avg_cadence"); v > 0 {
		rec.AvgCadence = intPtr(int(v))
	}
	if v := r.num("avg_stride_length"); v > 0 {
		rec.AvgStrideLength = floatPtr(v)
	}

	// Altitude allows genuine zero gain; only negative means absent.
	if v, present := item["altitude_ascend"]; present && v != nil {
		if f := r.num("altitude_ascend"); f >= 0 {
			rec.AltitudeAscend = intPtr(int(f))
		}
	}
	if v, present := item["altitude_descend"]; present && v != nil {
		if f := r.num("altitude_descend"); f >= 0 {
			rec.AltitudeDescend = intPtr(int(f))
		}
	}

	if hrRange, _ := item.Str("heart_range"); hrRange != "" {
		rec.HRZones = parseHeartRateZones(hrRange)
	}

	rec.StrengthScores = floatList(item["strengthScores"])
	if groups, ok := item.List("strength_training_group"); ok {
		for _, raw := range groups {
			g, ok := asDoc(raw)
			if !ok {
				continue
			}
			rec.StrengthSets = append(rec.StrengthSets, StrengthSet{
				ActionType: g.Int("actionType"),
				Count:      g.Int("count"),
			})
		}
	}

	if v := r.num("avg_frequency"); v > 0 {
		rec.AvgFrequency = floatPtr(v)
	}
	if v := r.num("averageRTPC"); v > 0 {
		rec.AvgRTPC = floatPtr(v)
	}
	if v := r.num("bestRTPC"); v > 0 {
		rec.BestRTPC = intPtr(int(v))
	}
	if v := r.num("worstRTPC"); v > 0 {
		rec.WorstRTPC = intPtr(int(v))
	}
	if v := r.num("rope_skipping_rest_time"); v > 0 {
		rec.RopeSkippingRestTime = intPtr(int(v))
	}

	if v, present := item["forefoot_ratio"]; present && v != nil {
		if f := r.num("forefoot_ratio"); f >= 0 {
			rec.ForefootRatio = floatPtr(f)
		}
	}
	if v := r.num("pause_time"); v > 0 {
		rec.PauseTime = intPtr(int(v))
	}

	if r.bad {
		return WorkoutRecord{}, false
	}
	return rec, true
}

func workoutTypeName(code int) string {
	if name, ok := workoutTypes[code]; ok {
		return name
	}
	return unknownLabel(code)
}

// parseHeartRateZones parses the semicolon-separated "seconds,maxHr" zone
// budget. Zones with non-positive seconds are dropped.
func parseHeartRateZones(raw string) []HeartRateZone {
	var zones []HeartRateZone
	for i, zoneStr := range strings.Split(raw, ";") {
		if zoneStr == "" {
			continue
		}
		parts := strings.Split(zoneStr, ",")
		if len(parts) != 2 {
			continue
		}
		seconds, err1 := strconv.Atoi(parts[0])
		maxHR, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || seconds <= 0 {
			continue
		}
		name := "Zone " + strconv.Itoa(i+1)
		if i < len(hrZoneNames) {
			name = hrZoneNames[i]
		}
		zones = append(zones, HeartRateZone{Zone: i + 1, Name: name, Seconds: seconds, MaxHR: maxHR})
	}
	return zones
}

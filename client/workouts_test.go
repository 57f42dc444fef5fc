package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func workoutClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return MustNew(
		Credentials{UserID: "u1", AppToken: "tok"},
		WithWorkoutHistoryURL(srv.URL),
	)
}

func workoutItem(trackID string, end time.Time, overrides map[string]any) map[string]any {
	item := map[string]any{
		"trackid":  trackID,
		"type":     1.0,
		"end_time": float64(end.Unix()),
		"run_time": 1800.0,
		"dis":      5000.0,
		"calorie":  320.0,
	}
	for k, v := range overrides {
		item[k] = v
	}
	return item
}

func TestGetWorkoutsTokenPaginationAndDedup(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	pages := []map[string]any{
		{"code": 1, "data": map[string]any{
			"summary": []any{
				workoutItem("t1", end, nil),
				workoutItem("t2", end.Add(-time.Hour), nil),
			},
			"next": "older-1",
		}},
		{"code": 1, "data": map[string]any{
			"summary": []any{
				workoutItem("t2", end.Add(-time.Hour), nil), // overlap, must dedup
				workoutItem("t3", end.Add(-2*time.Hour), nil),
			},
			"next": -1,
		}},
	}
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := pages[0]
		if r.URL.Query().Get("stopTrackId") == "older-1" {
			page = pages[1]
		}
		requests++
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	c := workoutClient(t, srv)
	workouts, err := c.GetWorkouts(context.Background(), WorkoutQuery{})
	if err != nil {
		t.Fatalf("GetWorkouts: %v", err)
	}
	if requests != 2 {
		t.Fatalf("issued %d requests, want 2", requests)
	}
	if len(workouts) != 3 {
		t.Fatalf("got %d workouts, want 3 (t2 deduplicated)", len(workouts))
	}
	seen := map[string]int{}
	for _, wo := range workouts {
		seen[wo.TrackID]++
	}
	if seen["t2"] != 1 {
		t.Fatalf("t2 appeared %d times", seen["t2"])
	}
}

func TestGetWorkoutsStopsOnSeenToken(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Always points back at an already-seen track id.
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 1, "data": map[string]any{
			"summary": []any{workoutItem("t1", end, nil)},
			"next":    "t1",
		}})
	}))
	defer srv.Close()

	c := workoutClient(t, srv)
	workouts, err := c.GetWorkouts(context.Background(), WorkoutQuery{})
	if err != nil {
		t.Fatalf("GetWorkouts: %v", err)
	}
	if requests != 1 || len(workouts) != 1 {
		t.Fatalf("requests=%d workouts=%d, want cycle guard after 1 page", requests, len(workouts))
	}
}

func TestGetWorkoutsStopsOnStagnantPage(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Fresh token every page, but never a new track id.
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 1, "data": map[string]any{
			"summary": []any{workoutItem("t1", end, nil)},
			"next":    "cursor-" + r.URL.Query().Get("stopTrackId"),
		}})
	}))
	defer srv.Close()

	c := workoutClient(t, srv)
	workouts, err := c.GetWorkouts(context.Background(), WorkoutQuery{})
	if err != nil {
		t.Fatalf("GetWorkouts: %v", err)
	}
	if requests != 2 || len(workouts) != 1 {
		t.Fatalf("requests=%d workouts=%d, want stagnation stop after the duplicate page", requests, len(workouts))
	}
}

func TestGetWorkoutsDateWindowIsPostFilter(t *testing.T) {
	inRange := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	outOfRange := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") != "" || r.URL.Query().Get("to") != "" {
			t.Error("date range must not be sent to the server")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 1, "data": map[string]any{
			"summary": []any{
				workoutItem("t1", inRange, nil),
				workoutItem("t2", outOfRange, nil),
			},
			"next": 0,
		}})
	}))
	defer srv.Close()

	c := workoutClient(t, srv)
	start := time.Date(2024, 4, 25, 0, 0, 0, 0, time.Local)
	workouts, err := c.GetWorkouts(context.Background(), WorkoutQuery{Start: start, End: inRange})
	if err != nil {
		t.Fatalf("GetWorkouts: %v", err)
	}
	if len(workouts) != 1 || workouts[0].TrackID != "t1" {
		t.Fatalf("unexpected workouts %+v", workouts)
	}
}

func TestParseWorkoutItemSentinels(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	item := Document(workoutItem("t9", end, map[string]any{
		"type":            64.0,
		"te":              35.0, // scaled by 10
		"anaerobic_te":    0.0,  // non-positive, absent
		"VO2_max":         -1.0,
		"exercise_load":   55.0,
		"avg_heart_rate":  "132.0", // numeric string
		"altitude_ascend": 0.0,     // zero altitude is valid
		"altitude_descend": -1.0,
		"heart_range":     "0,114;600,133;1200,152;0,171",
		"total_group":     3.0,
		"strengthScores":  []any{8.5, 9.0},
		"strength_training_group": []any{
			map[string]any{"actionType": 0.0, "count": 12.0},
		},
		"pause_time":     0.0, // non-positive, absent
		"forefoot_ratio": 0.0, // zero ratio is valid
	}))

	rec, ok := parseWorkoutItem(item, "t9", WorkoutQuery{})
	if !ok {
		t.Fatal("item unexpectedly dropped")
	}
	if rec.Name != "strength_training" {
		t.Fatalf("name = %s", rec.Name)
	}
	if rec.StartTime.Unix() != end.Unix()-1800 || rec.DurationSeconds != 1800 {
		t.Fatalf("start reconstruction wrong: %+v", rec)
	}
	if rec.TrainingEffect == nil || *rec.TrainingEffect != 3.5 {
		t.Fatalf("training effect %+v", rec.TrainingEffect)
	}
	if rec.AnaerobicTE != nil || rec.VO2Max != nil {
		t.Fatal("non-positive te/vo2 must be absent")
	}
	if rec.ExerciseLoad == nil || *rec.ExerciseLoad != 55 {
		t.Fatalf("exercise load %+v", rec.ExerciseLoad)
	}
	if rec.AvgHeartRate == nil || *rec.AvgHeartRate != 132 {
		t.Fatalf("avg HR %+v", rec.AvgHeartRate)
	}
	if rec.AltitudeAscend == nil || *rec.AltitudeAscend != 0 {
		t.Fatal("zero ascend must be kept")
	}
	if rec.AltitudeDescend != nil {
		t.Fatal("negative descend must be absent")
	}
	if len(rec.HRZones) != 2 {
		t.Fatalf("zones %+v, want the two with positive seconds", rec.HRZones)
	}
	if rec.HRZones[0].Zone != 2 || rec.HRZones[0].Name != "Light" || rec.HRZones[0].Seconds != 600 {
		t.Fatalf("zone %+v", rec.HRZones[0])
	}
	if len(rec.StrengthScores) != 2 || len(rec.StrengthSets) != 1 || rec.StrengthSets[0].Count != 12 || rec.TotalSets != 3 {
		t.Fatalf("strength fields %+v", rec)
	}
	if rec.PauseTime != nil {
		t.Fatal("zero pause time must be absent")
	}
	if rec.ForefootRatio == nil || *rec.ForefootRatio != 0 {
		t.Fatal("zero forefoot ratio must be kept")
	}
}

func TestParseWorkoutItemUncoercibleIsDropped(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	item := Document(workoutItem("bad", end, map[string]any{"te": "not a number"}))
	if _, ok := parseWorkoutItem(item, "bad", WorkoutQuery{}); ok {
		t.Fatal("item with uncoercible numeric field must be dropped")
	}
}

func TestGetWorkoutsUnknownTypeCode(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	item := Document(workoutItem("t1", end, map[string]any{"type": 999.0}))
	rec, ok := parseWorkoutItem(item, "t1", WorkoutQuery{})
	if !ok || rec.Name != "unknown_999" {
		t.Fatalf("rec=%+v ok=%v", rec, ok)
	}
}

func TestGetWorkoutsAPICode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": -2, "message": "expired"})
	}))
	defer srv.Close()

	c := workoutClient(t, srv)
	_, err := c.GetWorkouts(context.Background(), WorkoutQuery{})
	if !errors.Is(err, ErrAPICode) {
		t.Fatalf("expected ErrAPICode, got %v", err)
	}
}

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

func TestParseDayDataStepsAndSleep(t *testing.T) {
	summary := b64(`{"stp":{"ttl":5000,"dis":3000,"cal":200},"slp":{"dp":60,"lt":300,"dt":30,"st":0,"ed":390}}`)
	day := parseDayData(Document{"date_time": "2024-05-01", "summary": summary})

	if day.Date != "2024-05-01" {
		t.Fatalf("date = %s", day.Date)
	}
	if day.Steps == nil {
		t.Fatal("expected step record")
	}
	if day.Steps.Steps != 5000 || day.Steps.DistanceMeters != 3000 || day.Steps.Calories != 200 {
		t.Fatalf("unexpected steps %+v", day.Steps)
	}

	if day.Sleep == nil {
		t.Fatal("expected sleep record")
	}
	s := day.Sleep
	if s.TotalMinutes != 390 || s.DeepSleepMinutes != 60 || s.LightSleepMinutes != 300 || s.REMSleepMinutes != 30 {
		t.Fatalf("unexpected sleep %+v", s)
	}
	base := midnightOf("2024-05-01")
	if !s.StartTime.Equal(base) || !s.EndTime.Equal(base.Add(390*time.Minute)) {
		t.Fatalf("sleep window %v - %v", s.StartTime, s.EndTime)
	}
}

func TestSleepMapperZeroMinutesIsAbsent(t *testing.T) {
	summary := Document{"slp": map[string]any{"dp": 0.0, "lt": 0.0, "dt": 0.0, "st": 100.0, "ed": 500.0}}
	if rec := parseSleepFromSummary(summary, "2024-05-01"); rec != nil {
		t.Fatalf("expected absent sleep, got %+v", rec)
	}
}

func TestSleepMapperAbsoluteEpochs(t *testing.T) {
	start := time.Date(2024, 4, 30, 23, 0, 0, 0, time.Local).Unix()
	end := time.Date(2024, 5, 1, 6, 30, 0, 0, time.Local).Unix()
	summary := Document{"slp": map[string]any{
		"dp": 60.0, "lt": 300.0, "dt": 30.0,
		"st": float64(start), "ed": float64(end),
	}}
	rec := parseSleepFromSummary(summary, "2024-05-01")
	if rec == nil {
		t.Fatal("expected sleep record")
	}
	if rec.StartTime.Unix() != start || rec.EndTime.Unix() != end {
		t.Fatalf("window %v - %v", rec.StartTime, rec.EndTime)
	}
}

func TestSleepPhaseModes(t *testing.T) {
	summary := Document{"slp": map[string]any{
		"dp": 10.0, "lt": 10.0, "dt": 10.0, "st": 0.0, "ed": 30.0,
		"stage": []any{
			map[string]any{"start": 0.0, "stop": 10.0, "mode": 5.0},
			map[string]any{"start": 10.0, "stop": 20.0, "mode": 4.0},
			map[string]any{"start": 20.0, "stop": 25.0, "mode": 8.0},
			map[string]any{"start": 25.0, "stop": 28.0, "mode": 11.0},
			map[string]any{"start": 28.0, "stop": 30.0, "mode": 99.0},
		},
	}}
	rec := parseSleepFromSummary(summary, "2024-05-01")
	if rec == nil {
		t.Fatal("expected sleep record")
	}
	want := []string{"deep", "light", "rem", "rem", "awake"}
	if len(rec.Phases) != len(want) {
		t.Fatalf("got %d phases", len(rec.Phases))
	}
	for i, phase := range rec.Phases {
		if phase.Type != want[i] {
			t.Errorf("phase %d = %s, want %s", i, phase.Type, want[i])
		}
	}
	if rec.Phases[0].DurationMinutes != 10 {
		t.Fatalf("phase duration = %d", rec.Phases[0].DurationMinutes)
	}
}

func TestStepMapperLegacyFlatLayout(t *testing.T) {
	summary := Document{"stp": 4200.0, "dis": 2800.0, "cal": 150.0, "runDis": 500.0}
	rec := parseStepSummary(summary, "2024-05-01")
	if rec == nil {
		t.Fatal("expected step record")
	}
	if rec.Steps != 4200 || rec.DistanceMeters != 2800 || rec.Calories != 150 || rec.RunDistanceMeters != 500 {
		t.Fatalf("unexpected legacy steps %+v", rec)
	}
}

func TestHeartRateMapperSentinels(t *testing.T) {
	at := time.Date(2024, 5, 1, 14, 0, 0, 0, time.Local).Unix()
	summary := Document{
		"hr":  map[string]any{"maxHr": map[string]any{"hr": 152.0, "ts": float64(at)}},
		"slp": map[string]any{"rhr": 47.0},
	}
	samples := parseHeartRateFromSummary(summary, "2024-05-01")
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Tag != "max" || samples[0].BPM != 152 || samples[0].Timestamp.Unix() != at {
		t.Fatalf("max sample %+v", samples[0])
	}
	if samples[1].Tag != "resting" || samples[1].BPM != 47 {
		t.Fatalf("resting sample %+v", samples[1])
	}

	// Zero-valued sources yield no sample, not a zero-value one.
	none := parseHeartRateFromSummary(Document{
		"hr":  map[string]any{"maxHr": map[string]any{"hr": 0.0}},
		"slp": map[string]any{"rhr": 0.0},
	}, "2024-05-01")
	if len(none) != 0 {
		t.Fatalf("expected no samples, got %+v", none)
	}
}

func TestActivityMapperUnknownMode(t *testing.T) {
	summary := Document{"stp": map[string]any{"stage": []any{
		map[string]any{"start": 60.0, "stop": 75.0, "mode": 7.0, "step": 900.0},
		map[string]any{"start": 80.0, "stop": 85.0, "mode": 42.0},
	}}}
	bouts := parseActivitiesFromSummary(summary, "2024-05-01")
	if len(bouts) != 2 {
		t.Fatalf("got %d bouts", len(bouts))
	}
	if bouts[0].ModeName != "normal_activity" || bouts[0].Steps != 900 {
		t.Fatalf("bout 0: %+v", bouts[0])
	}
	if bouts[1].ModeName != "unknown_42" {
		t.Fatalf("bout 1: %+v", bouts[1])
	}
}

func TestParseDayDataMalformedSummaryDegrades(t *testing.T) {
	day := parseDayData(Document{"date_time": "2024-05-01", "summary": "***garbage***"})
	if day.Date != "2024-05-01" || day.Steps != nil || day.Sleep != nil {
		t.Fatalf("expected bare day, got %+v", day)
	}
}

func TestGetBandDataAPICode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 0, "message": "token expired"})
	}))
	defer srv.Close()

	c := MustNew(Credentials{UserID: "u1", AppToken: "tok"}, WithBandDataURL(srv.URL))
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	_, err := c.GetBandData(context.Background(), day, day)
	if !errors.Is(err, ErrAPICode) {
		t.Fatalf("expected ErrAPICode, got %v", err)
	}
}

func TestGetDailyDataEndToEnd(t *testing.T) {
	summary := b64(`{"stp":{"ttl":5000,"dis":3000,"cal":200},"slp":{"dp":60,"lt":300,"dt":30,"st":0,"ed":390}}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query_type") != "summary" || q.Get("userid") != "u1" {
			t.Errorf("unexpected query %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 1,
			"data": []map[string]any{{"date_time": "2024-05-01", "summary": summary}},
		})
	}))
	defer srv.Close()

	c := MustNew(Credentials{UserID: "u1", AppToken: "tok"}, WithBandDataURL(srv.URL))
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	days, err := c.GetDailyData(context.Background(), day, day)
	if err != nil {
		t.Fatalf("GetDailyData: %v", err)
	}
	if len(days) != 1 || days[0].Steps == nil || days[0].Steps.Steps != 5000 || days[0].Sleep == nil {
		t.Fatalf("unexpected days %+v", days)
	}
}

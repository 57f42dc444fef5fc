package client

import "time"

// ------------------------------
// Core domain records
// ------------------------------

// Credentials identify the account against the vendor API. The app token and
// user id come from a prior login flow; only that pair matters here.
type Credentials struct {
	UserID     string `json:"user_id"`
	AppToken   string `json:"app_token"`
	LoginToken string `json:"login_token,omitempty"`
}

// StepRecord holds one day's step totals.
type StepRecord struct {
	Date              string `json:"date"`
	Steps             int    `json:"steps"`
	DistanceMeters    int    `json:"distance_meters"`
	Calories          int    `json:"calories"`
	RunDistanceMeters int    `json:"run_distance_meters"`
	WalkingMinutes    int    `json:"walking_minutes"`
	RunningCalories   int    `json:"running_calories"`
	RunningSteps      int    `json:"running_steps"`
}

// SleepPhase is one contiguous stretch of a single sleep stage.
type SleepPhase struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Type            string    `json:"phase_type"` // deep, light, rem or awake
	DurationMinutes int       `json:"duration_minutes"`
}

// SleepRecord holds one night's sleep. Optional fields are nil when the
// device did not report them; a night whose stage minutes sum to zero is
// reported as no record at all, not a zero-duration one.
type SleepRecord struct {
	Date                string       `json:"date"`
	StartTime           time.Time    `json:"start_time"`
	EndTime             time.Time    `json:"end_time"`
	TotalMinutes        int          `json:"total_minutes"`
	DeepSleepMinutes    int          `json:"deep_sleep_minutes"`
	LightSleepMinutes   int          `json:"light_sleep_minutes"`
	REMSleepMinutes     int          `json:"rem_sleep_minutes"`
	SleepScore          *int         `json:"sleep_score,omitempty"`
	RestingHeartRate    *int         `json:"resting_heart_rate,omitempty"`
	OnsetLatencyMinutes *int         `json:"sleep_onset_latency,omitempty"`
	WakeCount           int          `json:"wake_count"`
	WakeMinutes         int          `json:"wake_minutes"`
	TotalBedTimeMinutes *int         `json:"total_bed_time,omitempty"`
	OutOfBedMinutes     *int         `json:"out_of_bed_time,omitempty"`
	InterruptionScore   *int         `json:"interruption_score,omitempty"`
	Phases              []SleepPhase `json:"phases,omitempty"`
}

// HeartRateSample is a single tagged heart-rate measurement.
type HeartRateSample struct {
	Timestamp time.Time `json:"timestamp"`
	BPM       int       `json:"bpm"`
	Tag       string    `json:"activity_type"` // "max" or "resting"
}

// ActivityBout is one activity stage within a day.
type ActivityBout struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Mode     int       `json:"mode"`
	ModeName string    `json:"mode_name"`
	Steps    int       `json:"steps"`
	Distance int       `json:"distance"`
	Calories int       `json:"calories"`
}

// ActivityDay bundles everything decoded from one band-data entry.
type ActivityDay struct {
	Date       string            `json:"date"`
	Steps      *StepRecord       `json:"steps,omitempty"`
	Sleep      *SleepRecord      `json:"sleep,omitempty"`
	HeartRates []HeartRateSample `json:"heart_rates,omitempty"`
	Activities []ActivityBout    `json:"activities,omitempty"`
}

// StressReading is one point of the intraday stress series.
type StressReading struct {
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"`
}

// StressRecord holds one day's stress aggregates plus the reading series.
type StressRecord struct {
	Date             string          `json:"date"`
	MinStress        int             `json:"min_stress"`
	MaxStress        int             `json:"max_stress"`
	AvgStress        int             `json:"avg_stress"`
	RelaxProportion  int             `json:"relax_proportion"`
	NormalProportion int             `json:"normal_proportion"`
	MediumProportion int             `json:"medium_proportion"`
	HighProportion   int             `json:"high_proportion"`
	Readings         []StressReading `json:"readings,omitempty"`
}

// SpO2Reading is a discrete blood-oxygen measurement.
type SpO2Reading struct {
	Timestamp time.Time `json:"timestamp"`
	SpO2      int       `json:"spo2"`
	Type      string    `json:"reading_type"` // "manual" or "auto"
}

// OSAEvent is a detected sleep-apnea episode with its sample traces.
type OSAEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	SpO2Decrease *int      `json:"spo2_decrease,omitempty"`
	SpO2Samples  []int     `json:"spo2_samples,omitempty"`
	HRSamples    []int     `json:"hr_samples,omitempty"`
}

// SpO2Record accumulates one day's blood-oxygen data across the odi, click
// and osa_event subtypes.
type SpO2Record struct {
	Date       string        `json:"date"`
	ODI        *float64      `json:"odi,omitempty"`
	ODICount   int           `json:"odi_count"`
	SleepScore *int          `json:"sleep_score,omitempty"`
	Readings   []SpO2Reading `json:"readings,omitempty"`
	OSAEvents  []OSAEvent    `json:"osa_events,omitempty"`
}

// PAIRecord holds one day's Personal Activity Intelligence scores. Zone
// limits and identity fields use nil for the feed's zero-as-absent sentinel;
// score fields keep genuine zeroes.
type PAIRecord struct {
	Date               string    `json:"date"`
	TotalPAI           float64   `json:"total_pai"`
	DailyPAI           float64   `json:"daily_pai"`
	RestingHR          *int      `json:"resting_hr,omitempty"`
	MaxHR              *int      `json:"max_hr,omitempty"`
	LowZoneMinutes     int       `json:"low_zone_minutes"`
	MediumZoneMinutes  int       `json:"medium_zone_minutes"`
	HighZoneMinutes    int       `json:"high_zone_minutes"`
	LowZonePAI         float64   `json:"low_zone_pai"`
	MediumZonePAI      float64   `json:"medium_zone_pai"`
	HighZonePAI        float64   `json:"high_zone_pai"`
	LowZoneLimit       *int      `json:"low_zone_limit,omitempty"`
	MediumZoneLimit    *int      `json:"medium_zone_limit,omitempty"`
	HighZoneLimit      *int      `json:"high_zone_limit,omitempty"`
	UserAge            *int      `json:"user_age,omitempty"`
	UserGender         *int      `json:"user_gender,omitempty"`
	ActivityScores     []float64 `json:"activity_scores,omitempty"`
	NextActivityScores []float64 `json:"next_activity_scores,omitempty"`
}

// HeartRateZone is the time budget spent in one workout HR zone.
type HeartRateZone struct {
	Zone    int    `json:"zone"`
	Name    string `json:"zone_name"`
	Seconds int    `json:"seconds"`
	MaxHR   int    `json:"max_hr"`
}

// StrengthSet is one group/set of a strength-training workout.
type StrengthSet struct {
	ActionType int `json:"action_type"`
	Count      int `json:"count"`
}

// WorkoutRecord is one recorded sport activity.
type WorkoutRecord struct {
	TrackID         string          `json:"track_id"`
	Type            int             `json:"workout_type"`
	Name            string          `json:"workout_name"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	DurationSeconds int             `json:"duration_seconds"`
	DistanceMeters  float64         `json:"distance_meters"`
	Calories        float64         `json:"calories"`
	AvgHeartRate    *int            `json:"avg_heart_rate,omitempty"`
	MaxHeartRate    *int            `json:"max_heart_rate,omitempty"`
	MinHeartRate    *int            `json:"min_heart_rate,omitempty"`
	AvgPace         *float64        `json:"avg_pace,omitempty"`
	TotalSteps      int             `json:"total_steps"`
	TrainingEffect  *float64        `json:"training_effect,omitempty"`
	AnaerobicTE     *float64        `json:"anaerobic_te,omitempty"`
	VO2Max          *int            `json:"vo2_max,omitempty"`
	ExerciseLoad    *int            `json:"exercise_load,omitempty"`
	AvgCadence      *int            `json:"avg_cadence,omitempty"`
	AvgStrideLength *float64        `json:"avg_stride_length,omitempty"`
	AltitudeAscend  *int            `json:"altitude_ascend,omitempty"`
	AltitudeDescend *int            `json:"altitude_descend,omitempty"`
	HRZones         []HeartRateZone `json:"hr_zones,omitempty"`

	// Strength training
	StrengthScores []float64     `json:"strength_scores,omitempty"`
	StrengthSets   []StrengthSet `json:"strength_groups,omitempty"`
	TotalSets      int           `json:"total_groups"`

	// Rope skipping
	AvgFrequency         *float64 `json:"avg_frequency,omitempty"`
	AvgRTPC              *float64 `json:"avg_rtpc,omitempty"`
	BestRTPC             *int     `json:"best_rtpc,omitempty"`
	WorstRTPC            *int     `json:"worst_rtpc,omitempty"`
	RopeSkippingRestTime *int     `json:"rope_skipping_rest_time,omitempty"`

	// Running form
	ForefootRatio *float64 `json:"forefoot_ratio,omitempty"`
	PauseTime     *int     `json:"pause_time,omitempty"`
}

// ReadinessRecord holds one day's recovery metrics from the watch_score event
// subtype. Every metric arrives as a string with "255" as the feed's no-data
// sentinel, so everything is optional.
type ReadinessRecord struct {
	Date               string   `json:"date"`
	ReadinessScore     *int     `json:"readiness_score,omitempty"`
	ReadinessInsight   *int     `json:"readiness_insight,omitempty"`
	RHRScore           *int     `json:"rhr_score,omitempty"`
	RHRBaseline        *int     `json:"rhr_baseline,omitempty"`
	SleepRHR           *int     `json:"sleep_rhr,omitempty"`
	HRVScore           *int     `json:"hrv_score,omitempty"`
	HRVBaseline        *int     `json:"hrv_baseline,omitempty"`
	SleepHRV           *int     `json:"sleep_hrv,omitempty"`
	SkinTempScore      *int     `json:"skin_temp_score,omitempty"`
	SkinTempBaseline   *float64 `json:"skin_temp_baseline,omitempty"`
	SkinTempCalibrated *float64 `json:"skin_temp_calibrated,omitempty"`
	MentalScore        *int     `json:"mental_score,omitempty"`
	MentalBaseline     *int     `json:"mental_baseline,omitempty"`
	PhysicalScore      *int     `json:"physical_score,omitempty"`
	PhysicalBaseline   *int     `json:"physical_baseline,omitempty"`
	AHIScore           *int     `json:"ahi_score,omitempty"`
	AHIBaseline        *float64 `json:"ahi_baseline,omitempty"`
	AFibScore          *int     `json:"afib_score,omitempty"`
	AFibBaseline       *int     `json:"afib_baseline,omitempty"`
}

// DailySummary joins the per-domain collections into one record per date.
// Optional fields stay nil for dates a secondary feed did not cover.
type DailySummary struct {
	Date                string   `json:"date"`
	TotalSteps          int      `json:"total_steps"`
	TotalDistanceMeters int      `json:"total_distance_meters"`
	TotalCalories       int      `json:"total_calories"`
	SleepMinutes        int      `json:"sleep_minutes"`
	DeepSleepMinutes    int      `json:"deep_sleep_minutes"`
	LightSleepMinutes   int      `json:"light_sleep_minutes"`
	REMSleepMinutes     int      `json:"rem_sleep_minutes"`
	RestingHeartRate    *int     `json:"resting_heart_rate,omitempty"`
	MaxHeartRate        *int     `json:"max_heart_rate,omitempty"`
	MinHeartRate        *int     `json:"min_heart_rate,omitempty"`
	AvgStress           *int     `json:"avg_stress,omitempty"`
	AvgSpO2             *int     `json:"avg_spo2,omitempty"`
	TotalPAI            *float64 `json:"total_pai,omitempty"`
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

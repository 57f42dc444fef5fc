package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Baitinq/amazfit-cli/client"
	"github.com/Baitinq/amazfit-cli/internal/config"
)

var (
	configPath string
	outputPath string
	debug      bool
	days       int
	startDate  string
	endDate    string
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "amazfit",
		Short: "Fetch Amazfit/Zepp health data as JSON",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("AMAZFIT_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Write JSON to a file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().IntVar(&days, "days", 7, "Fetch the last N days (ignored when --start is set)")
	rootCmd.PersistentFlags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to today)")

	rootCmd.AddCommand(newFetchCmd("daily", "Daily steps, sleep, heart rate and activity bouts",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetDailyData(ctx, start, end)
		}))
	rootCmd.AddCommand(newFetchCmd("summary", "Per-day summary of steps, sleep and heart rate",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetSummary(ctx, start, end)
		}))
	rootCmd.AddCommand(newFetchCmd("aggregate", "Per-day summary joined with stress, SpO2 and PAI",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetAggregateSummary(ctx, start, end)
		}))
	rootCmd.AddCommand(newFetchCmd("stress", "Daily stress aggregates and reading series",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetStressData(ctx, start, end)
		}))
	rootCmd.AddCommand(newFetchCmd("spo2", "Daily blood-oxygen data",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetSpO2Data(ctx, start, end)
		}))
	rootCmd.AddCommand(newFetchCmd("pai", "Daily PAI scores",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetPAIData(ctx, start, end)
		}))
	rootCmd.AddCommand(newFetchCmd("readiness", "Daily readiness and recovery metrics",
		func(ctx context.Context, c *client.Client, start, end time.Time) (any, error) {
			return c.GetReadinessData(ctx, start, end)
		}))
	rootCmd.AddCommand(newWorkoutsCmd())

	return rootCmd
}

type fetchFunc func(ctx context.Context, c *client.Client, start, end time.Time) (any, error)

func newFetchCmd(use, short string, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start, end, err := resolveRange()
			if err != nil {
				return err
			}
			data, err := fetch(cmd.Context(), c, start, end)
			if err != nil {
				return err
			}
			return emitJSON(data)
		},
	}
}

func newWorkoutsCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "Workout/sport history",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			q := client.WorkoutQuery{Source: source}
			if startDate != "" || endDate != "" {
				start, end, err := resolveRange()
				if err != nil {
					return err
				}
				q.Start = start
				q.End = end
			}
			data, err := c.GetWorkouts(cmd.Context(), q)
			if err != nil {
				return err
			}
			return emitJSON(data)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Restrict to a recording source")
	return cmd
}

func buildClient() (*client.Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := settings.MergeFile(configPath); err != nil {
			return nil, err
		}
	}
	settings.Finalize()
	config.SetLogLevel(settings.LogLevel)

	return client.New(
		client.Credentials{UserID: settings.UserID, AppToken: settings.AppToken},
		client.WithTimeZone(settings.TimeZone),
		client.WithDebugLogging(debug),
	)
}

func resolveRange() (time.Time, time.Time, error) {
	end := time.Now()
	if endDate != "" {
		t, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date: %w", err)
		}
		end = t
	}

	if startDate != "" {
		t, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date: %w", err)
		}
		return t, end, nil
	}
	return end.AddDate(0, 0, -(days - 1)), end, nil
}

func emitJSON(data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(out, '\n'), 0o644); err != nil {
			return err
		}
		log.Info().Str("path", outputPath).Msg("wrote output")
		return nil
	}
	fmt.Println(string(out))
	return nil
}

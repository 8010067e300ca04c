// Command hourly prints a place's cloud cover through a day, interpolated
// between the hourly forecast points.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/goldenhour/pkg/app"
	"github.com/spencer-p/goldenhour/pkg/config"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/splines"
	"github.com/spencer-p/goldenhour/pkg/timetricks"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

var (
	date string
	step time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "hourly PLACE",
	Short:        "Print the cloud cover of a place through the day",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := log.Init(false, ""); err != nil {
			return err
		}
		ctx := cmd.Context()

		d := timetricks.UTCDate(time.Now())
		if date != "" {
			parsed, err := timetricks.ParseDate(date)
			if err != nil {
				return err
			}
			d = parsed
		}

		env, err := config.Load()
		if err != nil {
			return err
		}
		a, err := app.New(ctx, env)
		if err != nil {
			return err
		}
		defer a.Close()

		set, err := a.Resolver.Find(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		place := set[0]

		hours, err := a.Forecast.Hourly(ctx, place, d)
		if err != nil {
			return fmt.Errorf("failed to fetch hourly forecast: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", place.Label, place.TimeZone)
		return printClouds(cmd.OutOrStdout(), hours, step)
	},
}

// printClouds prints the cloud cover every step between the first and last
// forecast points.
func printClouds(w io.Writer, hours []weather.Hourly, step time.Duration) error {
	spl := splines.CloudCover(hours)
	if len(spl) == 0 {
		return fmt.Errorf("not enough hourly data")
	}
	tstart := spl[0].Start
	tend := spl[len(spl)-1].End
	for t := tstart; !t.After(tend); t = t.Add(step) {
		fmt.Fprintf(w, "%s %5.1f%%\n", t.Format("15:04"), spl.Eval(t))
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&date, "date", "", "calendar date as YYYY-MM-DD (default today, UTC)")
	rootCmd.Flags().DurationVar(&step, "step", 30*time.Minute, "time between printed values")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command goldenhour prints the golden hour of a place from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/goldenhour/pkg/app"
	"github.com/spencer-p/goldenhour/pkg/config"
	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/handlers"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/meta"
	"github.com/spencer-p/goldenhour/pkg/resolve"
	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/timetricks"
)

var (
	debug bool

	date    string
	angle   float64
	numDays int
	pick    int
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "goldenhour",
	Short: "find when the Sun crosses an angle",
	Long: `
goldenhour finds, for a place and date, the clock times at which the Sun
crosses a chosen elevation angle above the horizon.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return log.Init(debug, "")
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve PLACE",
	Short: "List the places matching a name, postal code or lat,lon",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		set, err := a.Resolver.Find(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		printCandidates(cmd.OutOrStdout(), set)
		return nil
	},
}

var timesCmd = &cobra.Command{
	Use:   "times PLACE",
	Short: "Print the sun events of a place",
	Long: `Print sunrise, solar noon, sunset and the crossings of the angle.

$ goldenhour times --angle 6 67037
Derby, Kansas, US (America/Chicago)
2024-06-21	sunrise 6:08 AM	morning 6:40 AM	noon 1:28 PM	evening 8:16 PM	sunset 8:48 PM
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d := timetricks.UTCDate(time.Now())
		if date != "" {
			parsed, err := timetricks.ParseDate(date)
			if err != nil {
				return err
			}
			d = parsed
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		set, err := a.Resolver.Find(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		place, err := choose(set, pick)
		if err != nil {
			printCandidates(cmd.ErrOrStderr(), set)
			return err
		}

		results := a.Engine.ComputeDays(sunset.Query{Coordinate: place.Coordinate, Date: d, Angle: angle}, numDays)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), place, d, results)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", place.Label, place.TimeZone)
		for i, r := range results {
			printDay(out, d.AddDate(0, 0, i), r, place.Location(), time.Now())
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")

	timesCmd.Flags().StringVar(&date, "date", "", "calendar date as YYYY-MM-DD (default today, UTC)")
	timesCmd.Flags().Float64Var(&angle, "angle", 15, "target angle in degrees")
	timesCmd.Flags().IntVar(&numDays, "days", 1, "number of days")
	timesCmd.Flags().IntVar(&pick, "pick", 0, "1-based index of the place when several match")
	timesCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(timesCmd)
}

func newApp(ctx context.Context) (*app.App, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, env)
}

// choose returns the only candidate, or the pick'th one when several match.
func choose(set resolve.CandidateSet, pick int) (geo.Place, error) {
	switch {
	case pick > 0 && pick <= len(set):
		return set[pick-1], nil
	case pick != 0:
		return geo.Place{}, fmt.Errorf("--pick %d out of range, %d places match", pick, len(set))
	case len(set) == 1:
		return set[0], nil
	default:
		return geo.Place{}, fmt.Errorf("%d places match, choose one with --pick", len(set))
	}
}

func printCandidates(w io.Writer, set resolve.CandidateSet) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for i, p := range set {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, p.Label, p.Coordinate, p.TimeZone)
	}
	tw.Flush()
}

// printJSON writes the days in the same shape as the HTTP API.
func printJSON(w io.Writer, place geo.Place, d time.Time, results []sunset.Result) error {
	loc := place.Location()
	rep := handlers.Report{Place: &place}
	for i, r := range results {
		day := handlers.NewDay(d.AddDate(0, 0, i), r, loc)
		day.Windows = meta.GoldenHours(meta.Conditions{Sun: r, Location: loc})
		rep.Days = append(rep.Days, day)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func printDay(w io.Writer, d time.Time, r sunset.Result, loc *time.Location, now time.Time) {
	sunset.Match(r, func(r sunset.Resolved) {
		fmt.Fprintf(w, "%s\tsunrise %s\tmorning %s\tnoon %s\tevening %s\tsunset %s\n",
			d.Format(timetricks.DateFormat),
			timetricks.Clock(r.Sunrise, loc),
			timetricks.Clock(r.Morning, loc),
			timetricks.Clock(r.SolarNoon, loc),
			timetricks.Clock(r.Evening, loc),
			timetricks.Clock(r.Sunset, loc))
		for _, gw := range meta.GoldenHours(meta.Conditions{Sun: r, Location: loc}) {
			fmt.Fprintf(w, "\t%s: %s\n", gw.Kind, gw.Describe(now))
		}
	}, func(u sunset.Unreachable) {
		fmt.Fprintf(w, "%s\t%s\n", d.Format(timetricks.DateFormat), u.Message)
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

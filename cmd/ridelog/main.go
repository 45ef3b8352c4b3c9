package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"ridelog/internal/bootstrap"
	"ridelog/internal/platform/config"
	"ridelog/internal/platform/timefmt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "ridelog",
		Short:         "Bus ride activity timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory")

	root.AddCommand(newTrackCmd(&dataPath))
	root.AddCommand(newSelectCmd(&dataPath))
	root.AddCommand(newStatusCmd(&dataPath))
	root.AddCommand(newLogCmd(&dataPath))
	root.AddCommand(newReportCmd(&dataPath))
	root.AddCommand(newExportCmd(&dataPath))
	root.AddCommand(newSessionCmd(&dataPath))
	root.AddCommand(newReindexCmd(&dataPath))
	root.AddCommand(newDeliveryCmd(&dataPath))
	return root
}

func loadApp(dataPath string) (config.Config, *bootstrap.App, error) {
	cfg, err := config.Load(dataPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, app, nil
}

func activityColor(name string) *color.Color {
	switch name {
	case "moving":
		return color.New(color.FgGreen, color.Bold)
	case "traffic":
		return color.New(color.FgRed, color.Bold)
	case "dwelling":
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgHiBlack)
}

func newTrackCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Run the interactive stopwatch UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newSelectCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "select <moving|traffic|dwelling>",
		Short: "Press an activity button: start, stop, or switch timing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Select(context.Background(), args[0])
			if err != nil {
				return err
			}
			name := activityColor(out.Activity).Sprint(out.Activity)
			switch out.Action {
			case "switched":
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "switched to %s at %s\n", name, timefmt.WallClock(out.At))
			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n", name, out.Action, timefmt.WallClock(out.At))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current=%s entries=%d\n", out.Current, out.Entries)
			return nil
		},
	}
}

func newStatusCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current ride and open interval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			label := out.Label
			if label == "" {
				label = out.SessionID
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ride: %s (started %s, %s)\n",
				label, timefmt.WallClock(out.StartedAt), humanize.Time(out.StartedAt))
			if out.Current == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "current: idle")
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current: %s since %s  elapsed %s\n",
					activityColor(out.Current).Sprint(out.Current), timefmt.WallClock(out.OpenSince), out.Elapsed)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "entries: %d\n", out.EntryCount)
			return nil
		},
	}
}

func newLogCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "List the interval log from the projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			entries, err := app.TrackerCLI.Log(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Activity", "Start", "End", "Duration"})
			for i, entry := range entries {
				end := "—"
				if !entry.Open {
					end = timefmt.WallClock(entry.EndedAt)
				}
				t.AppendRow(table.Row{
					i + 1,
					activityColor(entry.Activity).Sprint(entry.Activity),
					timefmt.WallClock(entry.StartedAt),
					end,
					timefmt.Stopwatch(time.Duration(entry.DurationMS) * time.Millisecond),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newReportCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show per-activity time shares for the current ride",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			shares, err := app.ReportCLI.Shares(context.Background())
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Activity", "Share", "", "Duration"})
			for _, item := range shares.Items {
				t.AppendRow(table.Row{
					activityColor(item.Activity).Sprint(item.Activity),
					fmt.Sprintf("%5.1f%%", item.Percent),
					shareBar(item.Percent, 20),
					item.Duration,
				})
			}
			t.AppendFooter(table.Row{"total", "", "", shares.Total})
			t.Render()
			return nil
		},
	}
}

// shareBar renders a fixed-width textual bar for a 0..100 percentage.
func shareBar(percent float64, width int) string {
	filled := int(percent/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func newExportCmd(dataPath *string) *cobra.Command {
	var via []string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the ride as CSV through the deliverer chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.ExportCLI.Export(context.Background(), via)
			if err != nil {
				return err
			}
			for _, attempt := range out.Attempts {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "deliverer %s failed: %s\n", attempt.Deliverer, attempt.Error)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%s, %s) via %s\n",
				out.Filename, out.MIME, humanize.Bytes(uint64(out.Size)), out.Deliverer)
			if out.Target != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target: %s\n", out.Target)
			}
			if out.Message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			}
			return nil
		},
	}
	export.Flags().StringSliceVar(&via, "via", nil, "deliverer chain override (dir|open|stdout|plugin:<name>)")
	return export
}

func newSessionCmd(dataPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Ride session lifecycle"}

	var label string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Archive the current ride and start a fresh one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.StartNew(context.Background(), label)
			if err != nil {
				return err
			}
			if out.Archived {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "previous ride archived: %s\n", out.ArchivePath)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "new ride: %s started %s\n", out.SessionID, timefmt.WallClock(out.StartedAt))
			return nil
		},
	}
	newCmd.Flags().StringVar(&label, "label", "", "ride label (e.g. route number)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current ride session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nlabel: %s\nstarted: %s (%s)\nentries: %d\n",
				out.SessionID, out.Label, timefmt.WallClock(out.StartedAt), humanize.Time(out.StartedAt), out.EntryCount)
			return nil
		},
	}

	session.AddCommand(newCmd, show)
	return session
}

func newReindexCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projection from the state file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.TrackerCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newDeliveryCmd(dataPath *string) *cobra.Command {
	delivery := &cobra.Command{Use: "delivery", Short: "Delivery plugin operations"}

	delivery.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List deliverer manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			deliverers, err := app.DeliveryCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(deliverers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no deliverers configured")
				return nil
			}
			for _, d := range deliverers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", d.Name, d.Version, d.Enabled, d.Binary)
			}
			return nil
		},
	})

	delivery.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate deliverer checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			results, err := app.DeliveryCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no deliverers configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	return delivery
}

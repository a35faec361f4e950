// Command worker runs the stat ingestion and scoring pipeline.
//
// Usage:
//
//	worker run
//	worker ingest --sport nba --date 2026-10-16
//	worker sweep --retention-days 7
//	worker score --sport nfl --stats passing_tds=2,passing_yds=250
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/fantasy-statline/internal/app"
	"github.com/riskibarqy/fantasy-statline/internal/config"
	"github.com/riskibarqy/fantasy-statline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/riskibarqy/fantasy-statline/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "worker",
		Short:         "Fantasy stat ingestion and scoring worker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), ingestCmd(), sweepCmd(), scoreCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the periodic ingest and retention scheduler until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(func(ctx context.Context, c *app.Container) error {
				c.StartDebugServer()
				c.Scheduler.Start(ctx)
				<-ctx.Done()

				stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return c.Scheduler.Stop(stopCtx)
			})
		},
	}
}

func ingestCmd() *cobra.Command {
	var sportCode, date string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest and score one sport for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sp, err := parseSport(sportCode)
			if err != nil {
				return err
			}
			return withContainer(func(ctx context.Context, c *app.Container) error {
				day, err := parseDay(date, c.Config.Location, time.Now())
				if err != nil {
					return err
				}
				result, err := c.Pipeline.IngestDay(ctx, sp, day)
				if err != nil {
					return err
				}
				if result.NoGames {
					return fmt.Errorf("%s %s: %w", sp, day.Format(time.DateOnly), usecase.ErrNoGames)
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"cycle=%s sport=%s games=%d skipped=%d dropped=%d written=%d leagues=%d\n",
					result.CycleID, result.Sport, result.Games, result.SkippedGames,
					result.DroppedPlayers, result.RecordsWritten, result.Leagues,
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sportCode, "sport", "", "Sport code (nfl, ncaaf, nba, mlb, nhl)")
	cmd.Flags().StringVar(&date, "date", "", "Day to ingest as YYYY-MM-DD (default today in APP_TIMEZONE)")
	_ = cmd.MarkFlagRequired("sport")
	return cmd
}

func sweepCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete daily stat rows older than the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(func(ctx context.Context, c *app.Container) error {
				if !cmd.Flags().Changed("retention-days") {
					days = c.Config.RetentionDays
				}
				deleted, err := c.Retention.SweepStaleDailyData(ctx, days)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d daily rows\n", deleted)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "retention-days", usecase.DefaultRetentionDays, "Days of daily stats to keep")
	return cmd
}

func scoreCmd() *cobra.Command {
	var (
		sportCode string
		stats     string
		rulesetID int64
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Preview fantasy points for a stat line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := parseStatLine(stats)
			if err != nil {
				return err
			}
			input := usecase.PreviewInput{Sport: sportCode, RulesetID: rulesetID, Stats: line}

			if rulesetID == 0 {
				svc := usecase.NewRulesetService(memory.NewRulesetRepository(nil), logging.NewNop())
				result, err := svc.Preview(cmd.Context(), input)
				if err != nil {
					return err
				}
				return printPreview(cmd, result)
			}

			return withContainer(func(ctx context.Context, c *app.Container) error {
				result, err := c.Rulesets.Preview(ctx, input)
				if err != nil {
					return err
				}
				return printPreview(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&sportCode, "sport", "", "Sport code")
	cmd.Flags().StringVar(&stats, "stats", "", "Comma separated stat=value pairs")
	cmd.Flags().Int64Var(&rulesetID, "ruleset-id", 0, "Stored ruleset id (default: sport defaults)")
	_ = cmd.MarkFlagRequired("sport")
	return cmd
}

func printPreview(cmd *cobra.Command, result usecase.PreviewResult) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STAT\tFACTOR\tVALUE\tWEIGHT\tPOINTS")
	for _, term := range result.Breakdown.Terms {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\n", term.Stat, term.Factor, term.Value, term.Weight, term.Points)
	}
	fmt.Fprintf(w, "TOTAL\t\t\t\t%g\n", result.Points)
	if result.Stale {
		fmt.Fprintln(w, "warning: ruleset predates the current factor set")
	}
	return w.Flush()
}

// withContainer loads config, wires the app and cancels on SIGINT/SIGTERM.
func withContainer(fn func(ctx context.Context, c *app.Container) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.AppEnv, cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	c, err := app.New(ctx, cfg, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := c.Close(closeCtx); closeErr != nil {
			logger.Warn("close app", "error", closeErr)
		}
	}()
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	if err := fn(ctx, c); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

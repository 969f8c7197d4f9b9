package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/hippique/internal/export"
	"github.com/yourusername/hippique/internal/health"
	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/metrics"
	"github.com/yourusername/hippique/internal/scheduler"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outputDir string
		schedule  string
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ranked tables as ranking-<category>.json files",
		Long: `Export ranked tables once, or with --watch keep running and export on a
cron schedule while serving health checks and Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				outputDir = a.cfg.Export.OutputDir
			}
			if !cmd.Flags().Changed("schedule") {
				schedule = a.cfg.Export.Schedule
			}

			exporter := export.NewExporter(a.session, outputDir, logger.NewAuditLogger(a.log))
			sched := scheduler.NewScheduler(exporter, a.session, a.cfg.Export.ExportCategories(), a.log)

			if !watch {
				result, err := sched.RunNow(cmd.Context())
				if result != nil {
					for category, path := range result.Files {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", category, path)
					}
				}
				return err
			}
			if schedule == "" {
				return fmt.Errorf("--watch needs a schedule: pass --schedule or set export.schedule")
			}
			return runScheduled(cmd.Context(), a, sched, schedule)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "", "output directory (default from config)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule, e.g. \"0 6 * * *\" (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and export on the schedule")

	return cmd
}

func runScheduled(parent context.Context, a *app, sched *scheduler.Scheduler, schedule string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.ScheduleExport(schedule); err != nil {
		return err
	}

	if a.cfg.Metrics.Enabled {
		metrics.InitRegistry()
		srv := health.NewServer(health.Config{
			ServiceName: a.cfg.App.Name,
			Port:        a.cfg.Metrics.Port,
			MetricsPath: a.cfg.Metrics.Path,
			Logger:      a.log,
			Checks:      map[string]health.Checker{"scheduler": sched},
		})
		if err := srv.Start(ctx); err != nil {
			return err
		}
		srv.SetReady(true)
	}

	if err := sched.Start(); err != nil {
		return err
	}
	a.log.WithField("next_run", sched.GetNextRun()).Info("Waiting for scheduled exports")

	<-ctx.Done()
	return sched.Stop()
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"guild-tracker/internal/analytics"
	"guild-tracker/internal/backup"
	"guild-tracker/internal/domain"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		backupFile string
		page       int
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-member stats and guild totals",
		Long:  "Print completion, average and tier for every member, read from the database or from a backup file with --backup.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				roster   []domain.Member
				settings domain.Settings
			)

			if backupFile != "" {
				raw, err := os.ReadFile(backupFile)
				if err != nil {
					return fmt.Errorf("failed to read backup: %w", err)
				}
				restored, err := backup.Decode(raw, domain.DefaultSettings())
				if err != nil {
					return err
				}
				roster, settings = restored.Members, restored.Settings
			} else {
				a, err := openApp(cmd)
				if err != nil {
					return err
				}
				defer a.Close()

				st, err := a.store.Load(cmd.Context())
				if err != nil {
					return err
				}
				roster, settings = st.Roster, st.Settings
			}

			if cmd.Flags().Changed("page") {
				settings.Page = domain.Page(page)
				if !settings.Page.Valid() {
					return fmt.Errorf("--page must be 1 or 2")
				}
			}
			if cmd.Flags().Changed("mode") {
				settings.Mode = domain.Mode(mode)
				if !settings.Mode.Valid() {
					return fmt.Errorf("--mode must be count or damage")
				}
			}

			writeStats(cmd, roster, settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&backupFile, "backup", "", "Read the roster from a backup file instead of the database")
	cmd.Flags().IntVar(&page, "page", int(domain.PageShadow), "Page to report on (1 shadow, 2 destruction)")
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeCount), "Counter to report on (count or damage)")
	return cmd
}

func writeStats(cmd *cobra.Command, roster []domain.Member, settings domain.Settings) {
	ctx := analytics.NewContext(settings)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTOTAL\tAVG\tCOMPLETION\tTIER\tFLAG")
	for _, m := range roster {
		stats := analytics.ComputeStats(m, ctx)
		flag := ""
		switch {
		case stats.IsPerfect:
			flag = "perfect"
		case stats.IsRisk:
			flag = "risk"
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f%%\t%s\t%s\n",
			m.Name,
			analytics.FormatNumber(stats.Total),
			stats.Avg,
			stats.Completion,
			analytics.ClassifyTier(m, ctx).Label,
			flag,
		)
	}
	w.Flush()

	summary := analytics.ComputeAnalytics(roster, ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "\nmembers %d  total %s / %s (%.1f%%)  missing %s  daily avg %.1f\n",
		len(roster),
		analytics.FormatNumber(summary.GrandTotal),
		analytics.FormatNumber(summary.TotalPossible),
		summary.Percent,
		analytics.FormatNumber(summary.MissingCount),
		summary.DailyAvg,
	)
}

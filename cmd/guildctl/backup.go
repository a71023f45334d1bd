package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the roster and settings to a JSON backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			export, err := a.backup.Export(cmd.Context())
			if err != nil {
				return err
			}

			if outputFile == "" {
				outputFile = export.Filename
			}
			if outputFile == "-" {
				_, err = cmd.OutOrStdout().Write(append(export.Body, '\n'))
				return err
			}
			if err := os.WriteFile(outputFile, export.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", outputFile, humanize.Bytes(uint64(len(export.Body))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output path, - for stdout (default bossguild-backup-<date>.json)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the roster and settings with a JSON backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.backup.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d members\n", result.Members)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  fixed %s\n", issue)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Backup file to import")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newResetWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-week",
		Short: "Archive the roster into history and zero every counter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.roster.ResetWeek(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "week reset")
			return nil
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"guild-tracker/internal/domain"
	"guild-tracker/internal/ocr"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		inputFile string
		keywords  string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse recognised leaderboard text into name/damage entries",
		Long:  "Parse the text of a recognised leaderboard screenshot and print the extracted entries as JSON. Reads stdin when --in is not given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				raw []byte
				err error
			)
			if inputFile == "" || inputFile == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(inputFile)
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			entries := ocr.ParseEntries(string(raw), ocr.ParseOptions{
				Keywords: ocr.SplitKeywords(keywords),
			})

			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to the recognised text (default stdin)")
	cmd.Flags().StringVar(&keywords, "keywords", domain.DefaultKeywords, "Comma separated UI words that are never member names")
	return cmd
}

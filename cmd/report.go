package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"geofix/internal"
)

var reportFormatFlag string

var reportCmd = &cobra.Command{
	Use:   "report [folder]",
	Short: "Summarize a generated photo set",
	Long: `Read the geotag of every photo in a folder and report capture dates,
the bounding box, cameras, photos without GPS and duplicate files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args[0], reportFormatFlag)
	},
}

func runReport(cmd *cobra.Command, folder, format string) error {
	if err := requireDir(folder); err != nil {
		return err
	}

	report, err := internal.AnalyzeFixtures(folder)
	if err != nil {
		return fmt.Errorf("failed to analyze folder: %w", err)
	}
	logger.Debug("report built", "dir", folder, "photos", report.Photos, "missing_gps", len(report.MissingGPS))

	return internal.DisplayReport(cmd.OutOrStdout(), report, format)
}

func init() {
	reportCmd.Flags().StringVar(&reportFormatFlag, "format", "table", "Output format: table, json")

	rootCmd.AddCommand(reportCmd)
}

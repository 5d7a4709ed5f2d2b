package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"geofix/internal"
)

var (
	svgURLFlag    string
	svgFormatFlag string
	svgOutFlag    string
)

var svgpathsCmd = &cobra.Command{
	Use:   "svgpaths",
	Short: "Extract prefecture shapes from the map SVG as source literals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := svgURLFlag
		if url == "" {
			url = conf.SVG.URL
		}
		client := internal.NewSVGClient(conf.SVG.UserAgent, conf.SVG.Timeout)
		return runSVGPaths(cmd, client, url, svgFormatFlag, svgOutFlag)
	},
}

func runSVGPaths(cmd *cobra.Command, client *internal.SVGClient, url, format, outPath string) (err error) {
	if err := internal.ValidateRegionFormat(format); err != nil {
		return err
	}

	svg, err := client.Fetch(cmd.Context(), url)
	if err != nil {
		return err
	}

	regions := internal.ExtractRegions(svg)
	logger.Info("svg regions extracted", "url", url, "bytes", len(svg), "regions", len(regions))

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, ferr := os.Create(outPath)
		if ferr != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close %s: %w", outPath, cerr)
			}
		}()
		w = f
	}

	if err := internal.RenderRegions(w, regions, format); err != nil {
		return err
	}

	// stdout may carry the literals, keep the summary on stderr
	fmt.Fprintf(cmd.ErrOrStderr(), "Extracted %d regions from %s\n", len(regions), url)
	return nil
}

func init() {
	svgpathsCmd.Flags().StringVar(&svgURLFlag, "url", "", "SVG source (default from config svg.url)")
	svgpathsCmd.Flags().StringVar(&svgFormatFlag, "format", "swift", "Output format: swift or json")
	svgpathsCmd.Flags().StringVar(&svgOutFlag, "out", "", "Write to a file instead of stdout")

	rootCmd.AddCommand(svgpathsCmd)
}

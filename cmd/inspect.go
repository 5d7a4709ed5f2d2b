package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"geofix/internal"
)

var inspectExifTool bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file or folder...]",
	Short: "Print the GPS position, capture time and camera of photos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args, inspectExifTool)
	},
}

// expandPhotoArgs replaces folders with the photos they contain
func expandPhotoArgs(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, a)
			continue
		}
		photos, err := internal.ScanPhotos(a)
		if err != nil {
			return nil, err
		}
		files = append(files, photos...)
	}
	return files, nil
}

func runInspect(cmd *cobra.Command, args []string, withExifTool bool) error {
	files, err := expandPhotoArgs(args)
	if err != nil {
		return err
	}

	var tags []*internal.Geotag
	var errs []error
	if withExifTool {
		et, err := internal.NewExifTool()
		if err != nil {
			return err
		}
		defer et.Close()
		tags, errs = et.ReadGeotags(files...)
	} else {
		for _, f := range files {
			g, err := internal.ReadGeotag(f)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tags = append(tags, g)
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tLATITUDE\tLONGITUDE\tDMS\tTAKEN\tCAMERA")
	for _, g := range tags {
		lat := internal.ToDMS(g.Latitude, internal.Latitude)
		lon := internal.ToDMS(g.Longitude, internal.Longitude)
		taken := "-"
		if !g.Taken.IsZero() {
			taken = g.Taken.Format(internal.ExifDateLayout)
		}
		camera := "-"
		if g.Make != "" || g.Model != "" {
			camera = g.Make + " " + g.Model
		}
		fmt.Fprintf(tw, "%s\t%.7f\t%.7f\t%s %s\t%s\t%s\n", g.Path, g.Latitude, g.Longitude, lat, lon, taken, camera)
	}
	tw.Flush()

	for _, err := range errs {
		printProcessError(cmd, internal.CategorizeError("", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files could not be read", len(errs), len(files))
	}
	return nil
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectExifTool, "exiftool", false, "Read metadata with the exiftool binary")
	rootCmd.AddCommand(inspectCmd)
}

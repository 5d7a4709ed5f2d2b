package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"geofix/internal"
)

var (
	outFlag         string
	seedFlag        uint64
	noSimulatorFlag bool
	useExifTool     bool
)

// generateOptions is everything runGenerate needs besides the config
type generateOptions struct {
	Set         internal.PhotoSet
	OutputDir   string
	Seed        uint64
	Now         time.Time
	NoSimulator bool
	ExifTool    bool
	Sim         *internal.Simulator
}

var generateCmd = &cobra.Command{
	Use:       "generate [set]",
	Short:     "Generate a set of geotagged test photos and load them into the simulator",
	Long:      "Sets: " + strings.Join(internal.PhotoSetNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: internal.PhotoSetNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := internal.LookupPhotoSet(args[0])
		if err != nil {
			return err
		}

		return runGenerate(cmd, generateOptions{
			Set:         set,
			OutputDir:   resolveOutputDir(outFlag, conf.OutputDir, set.DefaultOutputDir),
			Seed:        seedFlag,
			Now:         time.Now(),
			NoSimulator: noSimulatorFlag,
			ExifTool:    useExifTool,
			Sim:         newSimulator(),
		})
	},
}

func resolveOutputDir(flag, configured, setDefault string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	default:
		return setDefault
	}
}

func newSimulator() *internal.Simulator {
	return &internal.Simulator{
		Tool:    conf.Simulator.Tool,
		Timeout: conf.Simulator.Timeout,
		Runner:  internal.ExecRunner{},
		Log:     logger,
	}
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	secondsDen := opts.Set.SecondsDen
	if conf.Exif.SecondsDenominator != 0 {
		secondsDen = conf.Exif.SecondsDenominator
	}

	jobs := opts.Set.Plan(opts.Now, internal.NewRand(opts.Seed))
	fmt.Fprintf(out, "📸 Generating %d photos (%s: %s)\n", len(jobs), opts.Set.Name, opts.Set.Description)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	session, err := internal.NewSession(opts.OutputDir, opts.Set.Name)
	if err != nil {
		return err
	}
	defer session.Close()
	session.LogSessionStart(len(jobs))
	logger.Info("generation started", "run_id", session.ID, "set", opts.Set.Name, "output_dir", opts.OutputDir, "photos", len(jobs))

	tf := internal.LoadTypeface(conf.Fonts, logger)
	if tf.IsFallback() {
		printWarn(cmd, "⚠️  No usable font found, labels use the built-in bitmap face (set fonts in geofix.toml)")
	}

	gen := &internal.Generator{
		OutputDir:  opts.OutputDir,
		SecondsDen: secondsDen,
		Quality:    conf.JPEGQuality,
		Typeface:   tf,
		Log:        logger,
	}
	if opts.ExifTool {
		printWarn(cmd, "ℹ️  %s", internal.ExifToolPrecisionNote)
		et, err := internal.NewExifTool()
		if err != nil {
			return err
		}
		defer et.Close()
		gen.TagWriter = et
	}

	stats := internal.NewErrorStats()
	var paths []string
	var totalBytes uint64
	day := 0

	for _, job := range jobs {
		if job.Day != day {
			day = job.Day
			fmt.Fprintf(out, "\n📅 Day %d\n", day)
		}

		photo, err := gen.Generate(ctx, job)
		if err != nil {
			procErr := internal.CategorizeError(job.Filename, err)
			stats.Add(procErr)
			session.LogDetailedError(procErr)
			logger.Error("photo failed", "file", job.Filename, "category", procErr.Category, "error", err)
			printProcessError(cmd, procErr)

			if abort, reason := stats.ShouldAbort(); abort {
				errColor.Fprintf(out, "\n%s\n", reason)
				break
			}
			continue
		}

		stats.ResetConsecutive()
		session.LogGenerated(photo)
		paths = append(paths, photo.Path)
		totalBytes += uint64(photo.Size)
		fmt.Fprintf(out, "  ✓ %s  %s (%.6f, %.6f)  %s\n",
			job.Filename, job.Location.Name, job.Location.Latitude, job.Location.Longitude,
			job.Taken.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	okColor.Fprintf(out, "✅ Generated %d/%d photos (%s)\n", len(paths), len(jobs), humanize.Bytes(totalBytes))
	fmt.Fprintf(out, "📁 Output: %s\n", opts.OutputDir)

	if len(paths) > 0 && !opts.NoSimulator && ctx.Err() == nil {
		fmt.Fprintln(out, "\n📱 Adding photos to the simulator...")
		if err := loadIntoSimulator(ctx, out, opts.Sim, session, opts.OutputDir, paths); err != nil {
			procErr := internal.CategorizeError(opts.OutputDir, err)
			session.LogDetailedError(procErr)
			logger.Warn("simulator load failed", "category", procErr.Category, "error", err)
			printProcessError(cmd, procErr)
			printWarn(cmd, "   Add them manually: %s", opts.Sim.ManualAddCommand(opts.OutputDir))
		}
	}

	if len(jobs) > 0 && jobs[0].Day > 0 {
		printTripHints(out, jobs)
	}

	session.LogSessionEnd()
	logger.Info("generation finished", "run_id", session.ID, "generated", len(paths), "errors", stats.Total)

	if err := ctx.Err(); err != nil {
		return err
	}
	if stats.Total > 0 {
		fmt.Fprint(out, stats.GenerateReport())
		return fmt.Errorf("%d of %d photos failed", stats.Total, len(jobs))
	}
	return nil
}

// loadIntoSimulator pushes paths into the first booted simulator. A missing
// simulator is reported but is not an error.
func loadIntoSimulator(ctx context.Context, out io.Writer, sim *internal.Simulator, session *internal.Session, dir string, paths []string) error {
	device, err := sim.Booted(ctx)
	if errors.Is(err, internal.ErrNoBootedDevice) {
		warnColor.Fprintln(out, "⚠️  No booted simulator found")
		fmt.Fprintf(out, "   Boot one and add the photos manually: %s\n", sim.ManualAddCommand(dir))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "📱 Simulator: %s\n", device)

	n, err := sim.AddMedia(ctx, device, paths)
	if n > 0 {
		session.LogLoaded(device, n)
	}
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "✅ Added %d photos to the simulator\n", n)
	return nil
}

func printTripHints(out io.Writer, jobs []internal.PhotoJob) {
	first, last := internal.DateRange(jobs)
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "🎉 Ready! To use the photos in the app:")
	fmt.Fprintln(out, "1. Launch the app")
	fmt.Fprintln(out, "2. Tap \"Select dates\"")
	fmt.Fprintf(out, "3. Range: %s ~ %s\n", first.Format("2006/01/02"), last.Format("2006/01/02"))
	fmt.Fprintln(out, "4. Tap \"Load photos\"")
}

func init() {
	generateCmd.Flags().StringVar(&outFlag, "out", "", "Output directory (default: the set's directory)")
	generateCmd.Flags().Uint64Var(&seedFlag, "seed", 0, "Random seed for reproducible sets (0 = random)")
	generateCmd.Flags().BoolVar(&noSimulatorFlag, "no-simulator", false, "Only write the files")
	generateCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Write metadata with the exiftool binary")

	rootCmd.AddCommand(generateCmd)
}

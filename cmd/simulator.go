package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"geofix/internal"
)

var simulatorCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Load photos into the booted simulator",
}

var simulatorAddCmd = &cobra.Command{
	Use:   "add [folder]",
	Short: "Add every JPEG in a folder to the booted simulator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulatorAdd(cmd, newSimulator(), args[0])
	},
}

var simulatorWatchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Add new JPEGs to the booted simulator as they appear in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulatorWatch(cmd, newSimulator(), args[0])
	},
}

func requireDir(folder string) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
	}
	return nil
}

func runSimulatorAdd(cmd *cobra.Command, sim *internal.Simulator, folder string) error {
	if err := requireDir(folder); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	files, err := internal.ScanPhotos(folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no JPEG files found in %s", folder)
	}
	fmt.Fprintf(out, "Found %d photos\n", len(files))

	session, err := internal.NewSession(folder, "simulator-add")
	if err != nil {
		return err
	}
	defer session.Close()
	session.LogSessionStart(len(files))
	defer session.LogSessionEnd()

	if err := loadIntoSimulator(cmd.Context(), out, sim, session, folder, files); err != nil {
		procErr := internal.CategorizeError(folder, err)
		session.LogDetailedError(procErr)
		printProcessError(cmd, procErr)
		return err
	}
	return nil
}

func runSimulatorWatch(cmd *cobra.Command, sim *internal.Simulator, folder string) error {
	if err := requireDir(folder); err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	device, err := sim.Booted(ctx)
	if err != nil {
		printProcessError(cmd, internal.CategorizeError(folder, err))
		return err
	}

	w, err := internal.NewWatcher(folder, conf.Simulator.Settle)
	if err != nil {
		return err
	}
	defer w.Close()

	session, err := internal.NewSession(folder, "simulator-watch")
	if err != nil {
		return err
	}
	defer session.Close()
	session.LogSessionStart(0)
	defer session.LogSessionEnd()

	fmt.Fprintf(out, "👀 Watching %s, new photos go to simulator %s (Ctrl+C to stop)\n", folder, device)

	loader := &internal.AutoLoader{
		Sim:     sim,
		Device:  device,
		Session: session,
		Log:     logger,
		OnLoaded: func(path string) {
			okColor.Fprintf(out, "  ✓ %s\n", path)
		},
		OnError: func(procErr *internal.ProcessError) {
			printProcessError(cmd, procErr)
		},
	}

	stats, err := loader.Run(ctx, w)
	loaded := session.GetStats().Loaded
	fmt.Fprintf(out, "\nLoaded %d photos\n", loaded)
	if stats.Total > 0 {
		fmt.Fprint(out, stats.GenerateReport())
	}
	return err
}

func init() {
	simulatorCmd.AddCommand(simulatorAddCmd)
	simulatorCmd.AddCommand(simulatorWatchCmd)
	rootCmd.AddCommand(simulatorCmd)
}

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"geofix/internal"
)

var publishCmd = &cobra.Command{
	Use:   "publish [folder]",
	Short: "Upload a generated photo set and its manifest to S3-compatible storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		if err := requireDir(folder); err != nil {
			return err
		}
		if err := conf.ValidateStorage(); err != nil {
			return err
		}

		pub, err := internal.NewPublisher(conf.Storage, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "☁️  Publishing %s to %s/%s\n", folder, conf.Storage.Endpoint, conf.Storage.Bucket)

		res, err := pub.Publish(cmd.Context(), folder)
		if res != nil {
			for _, key := range res.Uploaded {
				okColor.Fprintf(out, "  ✓ %s\n", key)
			}
			for _, key := range res.Skipped {
				fmt.Fprintf(out, "  - %s (exists)\n", key)
			}
		}
		if err != nil {
			printProcessError(cmd, internal.CategorizeError(folder, err))
			return err
		}

		fmt.Fprintf(out, "✅ Uploaded %d objects (%s), skipped %d\n",
			len(res.Uploaded), humanize.Bytes(uint64(res.Bytes)), len(res.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

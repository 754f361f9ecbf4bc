package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "compose",
	Short: "compose - layered canvas composition",
	Long: `compose places stamps over a background on a fixed-size canvas and
exports the result as PNG or JPEG.

Examples:
  compose presets                                   # List canvas presets and colors
  compose catalog --search star                     # List built-in stamps
  compose render --preset square --fill "#ff0" \
      --background bg.jpg --stamp star.png@600,600,0.5,15 --out out.png
  compose render --load design.cbor --pixel-ratio 2 --out out.png`,
	Version:       compose.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		compose.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/scene"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List canvas presets and fill colors",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tSIZE\tASPECT")
	for _, p := range scene.Presets() {
		w, h := p.Size()
		fmt.Fprintf(tw, "%s\t%dx%d\t%s\n", p, w, h, p.AspectRatio())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Colors:")
	for _, c := range compose.Palette {
		fmt.Printf("  %s\n", c)
	}
	return nil
}

// Command compose builds layered images from the command line: a canvas
// preset and fill, a background, placed stamps and QR codes, exported at a
// fixed pixel ratio.
package main

import "github.com/gogpu/compose/cmd/compose/cmd"

func main() {
	cmd.Execute()
}

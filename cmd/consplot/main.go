// 18 Feb 2025
// Plot the per-column conservation and gap profile of an alignment.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/SYeon-424/GBlocks/pkg/consplot"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] infile plotfile.png")
	flag.PrintDefaults()
}

func main() {
	var flags consplot.CmdFlag

	flag.IntVar(&flags.Width, "width", 900, "image width in pixels")
	flag.IntVar(&flags.Height, "height", 300, "image height in pixels")
	flag.Float64Var(&flags.MaxGap, "maxgap", 0.5, "max fraction of gaps in a kept column")
	flag.Float64Var(&flags.MinCons, "mincons", 0.7, "min conservation in a kept column")
	flag.IntVar(&flags.MinBlock, "minblock", 10, "minimum block length for the shading")
	flag.IntVar(&flags.MaxRun, "maxrun", 0, "longest nonconserved run absorbed into a block")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
		os.Exit(ExitUsageError)
	}

	if err := consplot.Mymain(&flags, flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

// 12 Feb 2025
// Trim a multiple sequence alignment down to its conserved blocks.
// Unaligned input is aligned first, with mafft or muscle if one is
// installed, or the built-in center star aligner if not.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/SYeon-424/GBlocks/pkg/gblock"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [infile [outfile]]")
	long := `Given no arguments, read from stdin and write to stdout.
Given one argument, read the named file, write to stdout.
Given two arguments, read from the first, write to the second.
The fractional thresholds (-maxgap, -mincons, ...) are used unless
-gblocks asks for the classic count-style parameters instead.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags gblock.CmdFlag
	var infile, outfile string

	flag.StringVar(&flags.Aligner, "aligner", "auto", "aligner: auto, mafft, muscle or none")
	flag.StringVar(&flags.AlignerExe, "exe", "", "explicit aligner executable")
	flag.BoolVar(&flags.NoAlign, "noalign", false, "input is already aligned, skip alignment")
	flag.BoolVar(&flags.NoFallback, "nofallback", false, "fail rather than use the built-in aligner")
	flag.IntVar(&flags.MinBlock, "minblock", 10, "minimum block length")
	flag.Float64Var(&flags.MaxGap, "maxgap", 0.5, "max fraction of gaps in a kept column")
	flag.Float64Var(&flags.MinCons, "mincons", 0.7, "min conservation in a kept column")
	flag.Float64Var(&flags.FlankCons, "flankcons", -1, "flank conservation threshold, negative disables")
	flag.IntVar(&flags.MaxRun, "maxrun", 0, "longest nonconserved run absorbed into a block")
	flag.BoolVar(&flags.DropAllGap, "dropallgap", false, "drop kept columns that are entirely gaps")
	flag.BoolVar(&flags.UseGblocks, "gblocks", false, "use the count-style Gblocks parameters")
	flag.IntVar(&flags.GbCons, "gbcons", 9, "min number of sequences for a conserved position")
	flag.IntVar(&flags.GbFlank, "gbflank", 14, "min number of sequences for a flank position")
	flag.IntVar(&flags.GbRun, "gbrun", 8, "max number of contiguous nonconserved positions")
	flag.IntVar(&flags.GbBlock, "gbblock", 10, "minimum length of a block")
	flag.StringVar(&flags.GbGap, "gbgap", "None", "allowed gap positions: None, Half, All or a fraction")
	flag.IntVar(&flags.Wrap, "w", 70, "wrap output at this many residues, 0 for no wrapping")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		infile = flag.Arg(0)
		if flag.NArg() > 1 {
			outfile = flag.Arg(1)
		}
	}

	if err := gblock.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

// 12 Feb 2025

// Package gblock is the top of the trimming pipeline. It decides
// whether the input needs aligning at all, picks an aligner (an
// installed tool, or the built-in center star as a last resort),
// verifies the result really is an alignment, and hands it to the
// block extractor. One run keeps all its state to itself, so
// independent runs can go on at the same time.
package gblock

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/SYeon-424/GBlocks/pkg/nw"
	"github.com/SYeon-424/GBlocks/pkg/seq"
	"github.com/SYeon-424/GBlocks/pkg/star"
	"github.com/SYeon-424/GBlocks/pkg/trim"
)

// ErrNoAligner says the sequences need aligning, no tool was found
// and the built-in fallback was switched off.
var ErrNoAligner = errors.New("sequences are unaligned and no aligner is available")

// ErrAlignmentFailed says an aligner ran but its output was not an
// alignment. It points at a defective tool, not at this program.
var ErrAlignmentFailed = errors.New("alignment failed, sequences still unequal length")

// Options steers one pipeline run.
type Options struct {
	Aligner    string      // "auto", "mafft", "muscle" or "none"
	AlignerExe string      // explicit tool path, tried before the PATH lookup
	NoAlign    bool        // skip the alignment step entirely
	Fallback   bool        // center star when no tool is installed
	Trim       trim.Params // block extraction thresholds
	Wrap       int         // output line width, <= 0 unwrapped
}

// DfltOptions mirror what the command line hands out.
var DfltOptions = Options{
	Aligner:  "auto",
	Fallback: true,
	Trim: trim.Params{
		MinBlockLen: 10,
		MaxGap:      0.5,
		MinCons:     0.7,
		FlankCons:   -1,
	},
	Wrap: 70,
}

// AutoAlign returns an equal-length version of the entries. A set of
// one, or a set whose lengths already match, is returned untouched,
// which is the "skip if already aligned" rule the rest of the
// pipeline relies on. Otherwise the configured tool runs, or with
// "auto" the first of mafft and muscle that is installed, or the
// center star builder if the fallback is allowed.
func AutoAlign(entries []seq.Seq, opts *Options) ([]seq.Seq, error) {
	if len(entries) <= 1 || seq.EqualLen(entries) {
		return entries, nil
	}
	chosen := strings.ToLower(opts.Aligner)
	if chosen == "" || chosen == "auto" {
		switch {
		case whichOrPath("mafft") != "":
			chosen = "mafft"
		case whichOrPath("muscle") != "":
			chosen = "muscle"
		default:
			chosen = "none"
		}
	}
	switch chosen {
	case "mafft":
		return alignExternal(entries, func(in, out string) error {
			return runMafft(in, out, opts.AlignerExe)
		})
	case "muscle":
		return alignExternal(entries, func(in, out string) error {
			return runMuscle(in, out, opts.AlignerExe)
		})
	}
	if opts.Fallback {
		return star.Align(entries, &nw.DfltScore), nil
	}
	return nil, fmt.Errorf("%d sequences of unequal length: %w", len(entries), ErrNoAligner)
}

// Result is what a pipeline run reports back, trimmed sequences plus
// the before and after numbers a caller will want to display.
type Result struct {
	Seqs      []seq.Seq
	NSeq      int
	LenBefore int // first sequence length going into the extractor
	LenAfter  int // and coming out of it
}

// Pipeline aligns if necessary, refuses to continue if the result is
// not an alignment, and extracts the conserved blocks. A result with
// LenAfter of zero is a legitimate outcome, everything was filtered.
func Pipeline(entries []seq.Seq, opts *Options) (*Result, error) {
	aln := entries
	if !opts.NoAlign {
		var err error
		if aln, err = AutoAlign(entries, opts); err != nil {
			return nil, err
		}
	}
	if !seq.EqualLen(aln) {
		return nil, ErrAlignmentFailed
	}
	trimmed, err := trim.Filter(aln, &opts.Trim)
	if err != nil {
		return nil, err
	}
	r := &Result{Seqs: trimmed, NSeq: len(aln)}
	if len(aln) > 0 {
		r.LenBefore = aln[0].Len()
		r.LenAfter = trimmed[0].Len()
	}
	return r, nil
}

// CmdFlag is everything the command line can set.
type CmdFlag struct {
	Aligner    string  // auto / mafft / muscle / none
	AlignerExe string  // explicit aligner executable
	NoAlign    bool    // input is already aligned, do not touch it
	NoFallback bool    // fail rather than use the built-in aligner
	MinBlock   int     // minimum block length
	MaxGap     float64 // max gap fraction per column
	MinCons    float64 // min conservation per column
	FlankCons  float64 // flank threshold, < 0 disables
	MaxRun     int     // absorbed nonconserved run length
	DropAllGap bool    // drop kept columns that are all gap
	UseGblocks bool    // use the count-style parameters below
	GbCons     int     // Gblocks minimum conserved count
	GbFlank    int     // Gblocks minimum flank count
	GbRun      int     // Gblocks max nonconserved run
	GbBlock    int     // Gblocks minimum block length
	GbGap      string  // Gblocks allowed gap level
	Wrap       int     // fasta line width on output
	Time       bool    // print the run time
}

// report is the little summary printed after a run.
func report(w io.Writer, r *Result, p *trim.Params) {
	fmt.Fprintln(w, "=== gblocks pipeline complete ===")
	fmt.Fprintln(w, "- input sequences:", r.NSeq)
	fmt.Fprintln(w, "- first seq length (pre): ", r.LenBefore)
	fmt.Fprintln(w, "- first seq length (post):", r.LenAfter)
	fmt.Fprintf(w, "- params: min_block_len=%d max_gap=%g min_cons=%g flank_cons=%g max_noncons_run=%d\n",
		p.MinBlockLen, p.MaxGap, p.MinCons, p.FlankCons, p.MaxNonconsRun)
}

// Mymain is the top level, after flag parsing. It reads the input,
// converts parameters if the Gblocks style was asked for, runs the
// pipeline and writes the trimmed fasta.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	if flags.Time {
		start := time.Now()
		defer func() {
			fmt.Println("finished after", time.Since(start).Milliseconds(), "ms")
		}()
	}

	entries, err := seq.Readfile(infile)
	if err != nil {
		return fmt.Errorf("fail reading sequences: %w", err)
	}

	opts := Options{
		Aligner:    flags.Aligner,
		AlignerExe: flags.AlignerExe,
		NoAlign:    flags.NoAlign,
		Fallback:   !flags.NoFallback,
		Wrap:       flags.Wrap,
	}
	if flags.UseGblocks {
		gb := trim.Gblocks{
			MinConsCount:   flags.GbCons,
			FlankConsCount: flags.GbFlank,
			MaxNonconsRun:  flags.GbRun,
			MinBlockLen:    flags.GbBlock,
			AllowedGap:     flags.GbGap,
		}
		opts.Trim = *gb.Internal(len(entries), flags.DropAllGap)
	} else {
		opts.Trim = trim.Params{
			MinBlockLen:   flags.MinBlock,
			MaxGap:        float32(flags.MaxGap),
			MinCons:       float32(flags.MinCons),
			FlankCons:     float32(flags.FlankCons),
			MaxNonconsRun: flags.MaxRun,
			DropAllGap:    flags.DropAllGap,
		}
	}

	r, err := Pipeline(entries, &opts)
	if err != nil {
		return err
	}
	if err := seq.WriteToF(outfile, r.Seqs, opts.Wrap); err != nil {
		if outfile == "" {
			outfile = "stdout"
		}
		return fmt.Errorf("fail writing to %s: %w", outfile, err)
	}
	report(os.Stderr, r, &opts.Trim)
	return nil
}

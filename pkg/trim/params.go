// 5 Feb 2025

package trim

import (
	"fmt"
	"strconv"
	"strings"
)

// Params are the fractional thresholds the block extractor consumes.
type Params struct {
	MinBlockLen   int     // blocks shorter than this are discarded
	MaxGap        float32 // max fraction of gaps for a kept column
	MinCons       float32 // min conservation for a kept column
	FlankCons     float32 // stricter threshold for block edges, < 0 disables trimming
	MaxNonconsRun int     // longest rejected run absorbed into a block, 0 disables
	DropAllGap    bool    // remove kept columns that are all gap
}

// Check validates the thresholds. Fractions live in [0,1] and the
// lengths must not be negative. FlankCons is allowed to be negative,
// that is the off switch.
func (p *Params) Check() error {
	if p.MaxGap < 0 || p.MaxGap > 1 {
		return fmt.Errorf("max gap fraction %g not in [0,1]", p.MaxGap)
	}
	if p.MinCons < 0 || p.MinCons > 1 {
		return fmt.Errorf("min conservation %g not in [0,1]", p.MinCons)
	}
	if p.FlankCons > 1 {
		return fmt.Errorf("flank conservation %g not in [0,1]", p.FlankCons)
	}
	if p.MinBlockLen < 1 {
		return fmt.Errorf("min block length %d, must be at least 1", p.MinBlockLen)
	}
	if p.MaxNonconsRun < 0 {
		return fmt.Errorf("max nonconserved run %d, must not be negative", p.MaxNonconsRun)
	}
	return nil
}

// Gblocks holds thresholds the way the original Gblocks program asks
// for them, as sequence counts and an allowed-gap level. They only
// mean something relative to the number of sequences, so they are
// converted just before the run.
type Gblocks struct {
	MinConsCount   int    // minimum number of sequences for a conserved position
	FlankConsCount int    // minimum number of sequences for a flanking position
	MaxNonconsRun  int    // maximum number of contiguous nonconserved positions
	MinBlockLen    int    // minimum length of a block
	AllowedGap     string // "None", "Half", "All" or a literal fraction
}

// DfltGblocks are the classic defaults.
var DfltGblocks = Gblocks{
	MinConsCount:   9,
	FlankConsCount: 14,
	MaxNonconsRun:  8,
	MinBlockLen:    10,
	AllowedGap:     "None",
}

// AllowedGapFrac maps the symbolic allowed-gap level onto a gap
// fraction. Case does not matter. Anything unrecognised is tried as
// a literal fraction, clamped to [0,1], and if that fails too we use
// the Half level rather than refusing to run.
func AllowedGapFrac(mode string) float32 {
	switch strings.ToLower(mode) {
	case "none":
		return 0.0
	case "half":
		return 0.5
	case "all":
		return 1.0
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(mode), 32); err == nil {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return float32(v)
	}
	return 0.5
}

// clampCount forces a sequence count into [1, n].
func clampCount(c, n int) int {
	if c < 1 {
		c = 1
	}
	if c > n {
		c = n
	}
	return c
}

// Internal converts Gblocks counts to fractions for an alignment of
// nseq sequences. dropAllGap passes straight through, the original
// parameters have no equivalent.
func (g *Gblocks) Internal(nseq int, dropAllGap bool) *Params {
	if nseq < 1 {
		nseq = 1
	}
	p := &Params{
		MinCons:    float32(clampCount(g.MinConsCount, nseq)) / float32(nseq),
		FlankCons:  float32(clampCount(g.FlankConsCount, nseq)) / float32(nseq),
		MaxGap:     AllowedGapFrac(g.AllowedGap),
		DropAllGap: dropAllGap,
	}
	p.MinBlockLen = g.MinBlockLen
	if p.MinBlockLen < 1 {
		p.MinBlockLen = 1
	}
	p.MaxNonconsRun = g.MaxNonconsRun
	if p.MaxNonconsRun < 0 {
		p.MaxNonconsRun = 0
	}
	return p
}

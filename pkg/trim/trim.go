// 3 Feb 2025

// Package trim scores the columns of an alignment and cuts it down
// to its conserved blocks, in the manner of Gblocks. Scoring is
// identity only: a column is conserved when one residue dominates
// the non-gap entries.
package trim

import (
	"fmt"

	"github.com/andrew-torda/matrix"

	"github.com/SYeon-424/GBlocks/pkg/seq"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// maxSym bounds the symbol tally. Sequences are bytes, so this is
// just the alphabet size.
const maxSym = 256

// ColMetrics holds the per-column numbers the block extractor works
// from. GapFrac is the fraction of sequences with a gap in the
// column. ConsFrac is the count of the most frequent non-gap residue
// over the count of non-gap residues, or 0 in an all-gap column.
// Both always lie in [0,1].
type ColMetrics struct {
	GapFrac  []float32
	ConsFrac []float32
}

// Len returns the number of columns scored.
func (m *ColMetrics) Len() int { return len(m.GapFrac) }

// Metrics tallies symbol usage per column, the way one would for
// entropy profiles, and reduces the tally to gap and conservation
// fractions. The input must be an alignment.
func Metrics(seqs []seq.Seq) (*ColMetrics, error) {
	if err := seq.CheckLen(seqs); err != nil {
		return nil, fmt.Errorf("scoring columns: %w", err)
	}
	nseq := len(seqs)
	ncol := seqs[0].Len()

	var used [maxSym]bool
	for _, s := range seqs {
		for _, c := range s.Res() {
			used[c] = true
		}
	}
	var mapping [maxSym]int
	nsym := 0
	for i := range used {
		if used[i] {
			mapping[i] = nsym
			nsym++
		}
	}

	counts := matrix.NewFMatrix2d(nsym, ncol) // counts.Mat[sym][col]
	for _, s := range seqs {
		for i, c := range s.Res() {
			counts.Mat[mapping[c]][i]++
		}
	}

	gaprow := -1
	if used[GapChar] {
		gaprow = mapping[GapChar]
	}

	m := &ColMetrics{
		GapFrac:  make([]float32, ncol),
		ConsFrac: make([]float32, ncol),
	}
	for i := 0; i < ncol; i++ {
		var ngap, top float32
		if gaprow != -1 {
			ngap = counts.Mat[gaprow][i]
		}
		for r := 0; r < nsym; r++ {
			if r == gaprow {
				continue
			}
			if counts.Mat[r][i] > top {
				top = counts.Mat[r][i]
			}
		}
		m.GapFrac[i] = ngap / float32(nseq)
		if nongap := float32(nseq) - ngap; nongap > 0 {
			m.ConsFrac[i] = top / nongap
		} // all-gap column scores 0 by convention
	}
	return m, nil
}

// Mask marks the columns that pass the base thresholds: gap fraction
// at most MaxGap and conservation at least MinCons.
func (m *ColMetrics) Mask(p *Params) []bool {
	mask := make([]bool, m.Len())
	for i := range mask {
		mask[i] = m.GapFrac[i] <= p.MaxGap && m.ConsFrac[i] >= p.MinCons
	}
	return mask
}

// AbsorbShortRuns promotes short runs of rejected columns that sit
// between kept columns, so small ragged patches get swallowed by the
// block around them. Runs touching either end of the alignment have
// no kept neighbour on that side and are never promoted. A copy is
// returned, the input mask is untouched.
func AbsorbShortRuns(mask []bool, maxRun int) []bool {
	out := make([]bool, len(mask))
	copy(out, mask)
	if maxRun <= 0 {
		return out
	}
	for i := 0; i < len(out); {
		if out[i] {
			i++
			continue
		}
		j := i
		for j < len(out) && !out[j] {
			j++
		}
		// run of rejected columns is [i, j)
		if j-i <= maxRun && i > 0 && j < len(out) {
			for k := i; k < j; k++ {
				out[k] = true
			}
		}
		i = j
	}
	return out
}

// Block is a half-open run of kept columns.
type Block struct {
	Start, End int
}

// Len
func (b Block) Len() int { return b.End - b.Start }

// FindBlocks pulls the maximal runs of kept columns out of a mask
// and throws away any run shorter than minLen. There is no partial
// keeping: a short run goes entirely.
func FindBlocks(mask []bool, minLen int) []Block {
	var blocks []Block
	start := -1
	for i := 0; i <= len(mask); i++ {
		keep := i < len(mask) && mask[i]
		if keep && start == -1 {
			start = i
		} else if !keep && start != -1 {
			if i-start >= minLen {
				blocks = append(blocks, Block{start, i})
			}
			start = -1
		}
	}
	return blocks
}

// SoftTrim shrinks a block from both ends while the boundary column
// fails the flanking criteria, which use the stricter flankCons in
// place of the base conservation threshold. ok is false if nothing
// of the block survives.
func SoftTrim(b Block, m *ColMetrics, flankCons, maxGap float32) (Block, bool) {
	ok := func(i int) bool {
		return m.GapFrac[i] <= maxGap && m.ConsFrac[i] >= flankCons
	}
	for b.Start < b.End && !ok(b.Start) {
		b.Start++
	}
	for b.End > b.Start && !ok(b.End-1) {
		b.End--
	}
	return b, b.End > b.Start
}

// Filter runs the whole extraction: base mask, optional absorption of
// short rejected runs, block finding, optional flank trimming and the
// final column copy. The surviving columns come out in their original
// left to right order. No blocks surviving is not an error: every
// entry comes back with empty residues and the caller can report a
// fully filtered alignment.
func Filter(seqs []seq.Seq, p *Params) ([]seq.Seq, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	m, err := Metrics(seqs)
	if err != nil {
		return nil, err
	}

	mask := m.Mask(p)
	if p.MaxNonconsRun > 0 {
		mask = AbsorbShortRuns(mask, p.MaxNonconsRun)
	}
	blocks := FindBlocks(mask, p.MinBlockLen)

	if p.FlankCons >= 0 {
		trimmed := blocks[:0]
		for _, b := range blocks {
			if tb, ok := SoftTrim(b, m, p.FlankCons, p.MaxGap); ok && tb.Len() >= p.MinBlockLen {
				trimmed = append(trimmed, tb)
			}
		}
		blocks = trimmed
	}

	keep := make([]int, 0, m.Len())
	for _, b := range blocks { // blocks are already in column order
		for i := b.Start; i < b.End; i++ {
			keep = append(keep, i)
		}
	}
	if p.DropAllGap {
		kept := keep[:0]
		for _, i := range keep {
			allgap := true
			for _, s := range seqs {
				if s.Res()[i] != GapChar {
					allgap = false
					break
				}
			}
			if !allgap {
				kept = append(kept, i)
			}
		}
		keep = kept
	}
	return seq.KeepColumns(seqs, keep), nil
}

// 27 Jan 2025

// Package star builds a multiple alignment by the center star
// heuristic. Every sequence is aligned pairwise against one chosen
// reference (the longest input) and the gap placements are merged.
// A gap pattern counts, for each reference position, the columns
// inserted before it, with one extra slot for columns after the end.
// Merging two patterns takes the position-wise maximum, never a sum,
// so a sequence that has already been laid out only ever gains gaps.
// It is a fallback for when no real aligner is installed. k pairwise
// alignments, so O(k*n*m). Tens of sequences, not thousands.
package star

import (
	"github.com/SYeon-424/GBlocks/pkg/nw"
	"github.com/SYeon-424/GBlocks/pkg/seq"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// pattern counts inserted columns before each reference position.
// len(pattern) is always reference length + 1.
type pattern []int

// patternFromRef reads the gap runs out of the aligned copy of the
// reference. A run of gaps immediately before reference position i
// ends up in p[i], a trailing run in p[len(ref)].
func patternFromRef(alnRef []byte, refLen int) pattern {
	p := make(pattern, refLen+1)
	iref, run := 0, 0
	for _, c := range alnRef {
		if c == GapChar {
			run++
		} else {
			p[iref] = run
			run = 0
			iref++
		}
	}
	p[refLen] = run
	return p
}

// mergeMax takes the position-wise maximum of two patterns.
func mergeMax(a, b pattern) pattern {
	out := make(pattern, len(a))
	for i := range a {
		out[i] = a[i]
		if b[i] > out[i] {
			out[i] = b[i]
		}
	}
	return out
}

// total is the number of inserted columns a pattern asks for.
func (p pattern) total() (n int) {
	for _, v := range p {
		n += v
	}
	return n
}

// render lays a freshly aligned sequence out under a merged pattern.
// alnRef and alnSeq come straight from the pairwise aligner. For each
// reference position we left-pad the sequence's own insertion run
// with gaps up to the merged width, then emit the residue sitting at
// that reference position. Output length is refLen + g.total() no
// matter whose sequence this is, which is the whole point.
func render(alnRef, alnSeq []byte, g pattern, refLen int) []byte {
	out := make([]byte, 0, refLen+g.total())
	iref := 0
	start := 0 // start of the current insertion run in alnSeq
	for k, c := range alnRef {
		if c == GapChar {
			continue
		}
		out = appendPadded(out, alnSeq[start:k], g[iref])
		out = append(out, alnSeq[k])
		start = k + 1
		iref++
	}
	out = appendPadded(out, alnSeq[start:], g[refLen])
	return out
}

// expand re-lays a sequence already rendered under pattern from, out
// to a wider pattern to. Only gaps are added, every residue is copied
// exactly once and order never changes.
func expand(aln []byte, from, to pattern, refLen int) []byte {
	out := make([]byte, 0, refLen+to.total())
	pos := 0
	for k := 0; k < refLen; k++ {
		out = appendPadded(out, aln[pos:pos+from[k]], to[k])
		out = append(out, aln[pos+from[k]]) // the reference column itself
		pos += from[k] + 1
	}
	out = appendPadded(out, aln[pos:], to[refLen])
	return out
}

// appendPadded appends an insertion run left-padded with gaps to
// width want.
func appendPadded(out, run []byte, want int) []byte {
	for i := len(run); i < want; i++ {
		out = append(out, GapChar)
	}
	return append(out, run...)
}

// Align builds one equal-length alignment from sequences of unequal
// lengths. The longest sequence is the star center, first one wins a
// tie. Entries are processed in input order, each against the raw
// center residues. After every merge all previously laid out
// sequences are expanded to the new pattern, so at any moment the
// partial result is a valid alignment. Output entries carry the
// original labels and sit at their original input positions.
func Align(entries []seq.Seq, scr *nw.Score) []seq.Seq {
	if len(entries) == 0 {
		return nil
	}
	center := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Len() > entries[center].Len() {
			center = i
		}
	}
	ref := entries[center].Res()
	refLen := len(ref)

	master := make(pattern, refLen+1)
	type placed struct {
		ndx int // position in the input
		aln []byte
		pat pattern // the pattern aln is currently laid out under
	}
	var done []placed

	for ndx, e := range entries {
		alnRef, alnSeq := nw.Align(ref, e.Res(), scr)
		merged := mergeMax(master, patternFromRef(alnRef, refLen))
		for i := range done {
			done[i].aln = expand(done[i].aln, done[i].pat, merged, refLen)
			done[i].pat = merged
		}
		done = append(done, placed{ndx, render(alnRef, alnSeq, merged, refLen), merged})
		master = merged
	}

	out := make([]seq.Seq, len(entries))
	for _, d := range done { // back to input order, by index, not label
		out[d.ndx] = seq.NewSeq(entries[d.ndx].Cmmt(), d.aln)
	}
	return out
}

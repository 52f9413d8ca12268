// 12 Jan 2025

// Package seq holds labelled sequences, which usually begin their
// lives in fasta format. It can read and write them, and it knows
// the small set of operations an alignment needs, like checking
// that everybody has the same length and copying out a subset of
// columns.
package seq

import (
	"errors"
	"fmt"

	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// ErrUnequalLength says a set of sequences was used as an alignment,
// but the lengths do not match.
var ErrUnequalLength = errors.New("sequences not equal length")

// Seq is one labelled sequence. Once aligned, the residues may
// contain gap characters.
type Seq struct {
	cmmt string
	res  []byte
}

// NewSeq builds a sequence from a label and residues. An empty label
// gets the placeholder name, so downstream code never has to worry
// about anonymous entries.
func NewSeq(cmmt string, res []byte) Seq {
	if cmmt == "" {
		cmmt = "unnamed"
	}
	return Seq{cmmt: cmmt, res: res}
}

// Cmmt returns the label, without the leading ">".
func (s Seq) Cmmt() string { return s.cmmt }

// Res returns the residues as the original byte slice.
func (s Seq) Res() []byte { return s.res }

// Len
func (s Seq) Len() int { return len(s.res) }

// Copy returns a sequence whose residues do not share storage with
// the original. The alignment builder hands out new sequences rather
// than scribbling on old ones, so it needs real copies.
func (s Seq) Copy() Seq {
	t := make([]byte, len(s.res))
	copy(t, s.res)
	return Seq{cmmt: s.cmmt, res: t}
}

// String gives the sequence with its label, fasta style, for debugging.
func (s Seq) String() string {
	return fmt.Sprintf(">%s\n%s", s.cmmt, string(s.res))
}

// Degap returns the residues with all gap characters removed.
func (s Seq) Degap() []byte {
	t := make([]byte, 0, len(s.res))
	for _, c := range s.res {
		if c != GapChar {
			t = append(t, c)
		}
	}
	return t
}

// EqualLen tells us whether a set of sequences could be an alignment.
// Zero or one sequences count as aligned.
func EqualLen(seqs []Seq) bool {
	for i := 1; i < len(seqs); i++ {
		if seqs[i].Len() != seqs[0].Len() {
			return false
		}
	}
	return true
}

// CheckLen returns an error naming the first offending sequence if
// the set is not an alignment.
func CheckLen(seqs []Seq) error {
	if len(seqs) == 0 {
		return fmt.Errorf("empty sequence set: %w", ErrUnequalLength)
	}
	want := seqs[0].Len()
	for i := 1; i < len(seqs); i++ {
		if seqs[i].Len() != want {
			return fmt.Errorf("first sequence length %d, but \"%s\" has %d: %w",
				want, trimStr(seqs[i].Cmmt(), 40), seqs[i].Len(), ErrUnequalLength)
		}
	}
	return nil
}

// KeepColumns copies out the given columns, in the order given, from
// every sequence. It builds new sequences and leaves the input alone.
// An empty keep list gives entries with empty residues, which is how
// a fully filtered alignment is reported.
func KeepColumns(seqs []Seq, keep []int) []Seq {
	out := make([]Seq, len(seqs))
	for i, s := range seqs {
		r := make([]byte, len(keep))
		for j, k := range keep {
			r[j] = s.res[k]
		}
		out[i] = Seq{cmmt: s.cmmt, res: r}
	}
	return out
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

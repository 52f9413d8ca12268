// 20 Jan 2025

// Package nw does global pairwise alignments after Needleman and
// Wunsch, with a linear gap cost and identity scoring. The direction
// taken at each cell is recorded during the summation, so the
// traceback is deterministic: on ties we prefer the diagonal, then a
// gap in the second sequence, then a gap in the first.
// O(n*m) time and space. Fine for protein-sized sequences, do not
// point it at a chromosome.
package nw

import (
	"github.com/andrew-torda/matrix"

	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// Score holds the match, mismatch and gap values. They are
// compile-time defaults in the trimming pipeline, but the aligner
// itself does not care where they come from.
type Score struct {
	Match    float32
	Mismatch float32
	Gap      float32
}

// DfltScore is what the pipeline uses. Identity only. If you want
// blosum numbers, you want a different program.
var DfltScore = Score{Match: 1, Mismatch: -1, Gap: -2}

const (
	diag byte = iota // diagonal movement, consume from both
	up               // gap in the second sequence
	left             // gap in the first sequence
)

// Align globally aligns a and b. It returns two equal-length byte
// slices with gap characters marking insertions and deletions. The
// inputs are not touched.
func Align(a, b []byte, scr *Score) (alnA, alnB []byte) {
	if scr == nil {
		scr = &DfltScore
	}
	n, m := len(a), len(b)
	smat := matrix.NewFMatrix2d(n+1, m+1) // summed scores
	dmat := matrix.NewBMatrix2d(n+1, m+1) // directions for the traceback
	scm, dir := smat.Mat, dmat.Mat

	for i := 1; i <= n; i++ { // base column, all gaps in b
		scm[i][0] = float32(i) * scr.Gap
		dir[i][0] = up
	}
	for j := 1; j <= m; j++ { // base row, all gaps in a
		scm[0][j] = float32(j) * scr.Gap
		dir[0][j] = left
	}

	for i := 1; i <= n; i++ {
		ca := a[i-1]
		for j := 1; j <= m; j++ {
			sdiag := scm[i-1][j-1] + scr.Mismatch
			if ca == b[j-1] {
				sdiag = scm[i-1][j-1] + scr.Match
			}
			sup := scm[i-1][j] + scr.Gap
			sleft := scm[i][j-1] + scr.Gap
			switch { // ties resolve diag, then up, then left
			case sdiag >= sup && sdiag >= sleft:
				scm[i][j], dir[i][j] = sdiag, diag
			case sup >= sleft:
				scm[i][j], dir[i][j] = sup, up
			default:
				scm[i][j], dir[i][j] = sleft, left
			}
		}
	}

	bigger := n // guess at the aligned length
	if m > bigger {
		bigger = m
	}
	alnA = make([]byte, 0, bigger+bigger/10)
	alnB = make([]byte, 0, bigger+bigger/10)
	for i, j := n, m; i > 0 || j > 0; {
		switch dir[i][j] {
		case diag:
			alnA = append(alnA, a[i-1])
			alnB = append(alnB, b[j-1])
			i--
			j--
		case up:
			alnA = append(alnA, a[i-1])
			alnB = append(alnB, GapChar)
			i--
		case left:
			alnA = append(alnA, GapChar)
			alnB = append(alnB, b[j-1])
			j--
		}
	}
	reverse(alnA)
	reverse(alnB)
	return alnA, alnB
}

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// 20 Feb 2025

// Package randseq makes random protein-ish sequences. The aligner
// and alignment-builder tests feed on them.
package randseq

import (
	"math/rand"
)

var letters = []byte{'a', 'c', 'd', 'e', 'f', 'g',
	'h', 'i', 'k', 'l', 'm', 'n', 'p', 'q', 'r', 's', 't', 'v', 'w', 'y'}

// New returns a random sequence of length n.
func New(n int, rnd *rand.Rand) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = letters[rnd.Int31n(int32(len(letters)))]
	}
	return s
}

// Mutate changes about frac of the sites in s, in place, and returns
// how many sites really changed.
func Mutate(frac float32, s []byte, rnd *rand.Rand) (nChanged int) {
	for i := range s {
		if rnd.Float32() < frac {
			c := letters[rnd.Int31n(int32(len(letters)))]
			if c != s[i] {
				s[i] = c
				nChanged++
			}
		}
	}
	return nChanged
}

// DelN returns a copy of s with n random residues deleted.
func DelN(n int, s []byte, rnd *rand.Rand) []byte {
	t := make([]byte, len(s))
	copy(t, s)
	for ; n > 0 && len(t) > 0; n-- {
		i := rnd.Int31n(int32(len(t)))
		t = append(t[:i], t[i+1:]...)
	}
	return t
}

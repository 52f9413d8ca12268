// 27 Jan 2025

package star

import "testing"

func TestPatternFromRef(t *testing.T) {
	var tests = []struct {
		alnRef string
		refLen int
		want   []int
	}{
		{"ABC", 3, []int{0, 0, 0, 0}},
		{"-ABC", 3, []int{1, 0, 0, 0}},
		{"A--BC-", 3, []int{0, 2, 0, 1}},
		{"--A-B--", 2, []int{2, 1, 2}},
	}
	for _, x := range tests {
		got := patternFromRef([]byte(x.alnRef), x.refLen)
		if len(got) != len(x.want) {
			t.Fatalf("%q: pattern length %d want %d", x.alnRef, len(got), len(x.want))
		}
		for i := range got {
			if got[i] != x.want[i] {
				t.Fatalf("%q: pattern %v want %v", x.alnRef, got, x.want)
			}
		}
	}
}

func TestMergeMax(t *testing.T) {
	m := mergeMax(pattern{0, 3, 1}, pattern{2, 1, 1})
	for i, want := range []int{2, 3, 1} {
		if m[i] != want {
			t.Fatal("merge is not the position-wise max:", m)
		}
	}
}

// TestExpand checks that widening a layout only ever inserts gaps and
// that doing it in two hops matches one big hop.
func TestExpand(t *testing.T) {
	ref := []byte("ABC")
	// "xABC" laid out under {1,0,0,0}
	aln := []byte("xABC")
	from := pattern{1, 0, 0, 0}
	mid := pattern{2, 1, 0, 0}
	to := pattern{2, 1, 0, 1}

	oneHop := expand(aln, from, to, len(ref))
	twoHop := expand(expand(aln, from, mid, len(ref)), mid, to, len(ref))
	if string(oneHop) != string(twoHop) {
		t.Fatalf("expansion paths disagree: %q %q", oneHop, twoHop)
	}
	if want := "-xA-BC-"; string(oneHop) != want {
		t.Fatalf("expanded to %q, want %q", oneHop, want)
	}
}

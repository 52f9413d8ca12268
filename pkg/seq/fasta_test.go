// 14 Jan 2025

package seq_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/SYeon-424/GBlocks/pkg/seq"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

const smallFasta = `>seq1
MSTAG
> seq2 with words [homo sapiens]
MST
AG

>
TTTTT
`

func TestParse(t *testing.T) {
	seqs, err := seq.Parse([]byte(smallFasta))
	if err != nil {
		t.Fatal("parse small fasta:", err)
	}
	if len(seqs) != 3 {
		t.Fatal("expected 3 entries, got", len(seqs))
	}
	if seqs[0].Cmmt() != "seq1" || string(seqs[0].Res()) != "MSTAG" {
		t.Fatalf("first entry wrong: %q %q", seqs[0].Cmmt(), seqs[0].Res())
	}
	if seqs[1].Cmmt() != "seq2 with words [homo sapiens]" {
		t.Fatal("label should be trimmed, got", seqs[1].Cmmt())
	}
	if string(seqs[1].Res()) != "MSTAG" { // split over lines, blank line in the middle
		t.Fatalf("residue lines not concatenated: %q", seqs[1].Res())
	}
	if seqs[2].Cmmt() != "unnamed" {
		t.Fatal("empty label should become unnamed, got", seqs[2].Cmmt())
	}
}

func TestParseJunkBeforeHeader(t *testing.T) {
	seqs, err := seq.Parse([]byte("GARBAGE\nMORE\n>a\nMST\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 1 || string(seqs[0].Res()) != "MST" {
		t.Fatalf("junk before the first header should be ignored: %v", seqs)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, s := range []string{"", "\n\n", "no headers here\n"} {
		if _, err := seq.Parse([]byte(s)); !errors.Is(err, seq.ErrNoSequences) {
			t.Fatalf("input %q: expected ErrNoSequences, got %v", s, err)
		}
	}
}

// TestRoundTrip writes with a few wrap widths and checks parsing
// gives back the same labels and residues.
func TestRoundTrip(t *testing.T) {
	orig, err := seq.Parse([]byte(smallFasta))
	if err != nil {
		t.Fatal(err)
	}
	for _, wrap := range []int{0, 1, 3, 70} {
		var buf bytes.Buffer
		if err := seq.WriteFasta(&buf, orig, wrap); err != nil {
			t.Fatal("write with wrap", wrap, ":", err)
		}
		back, err := seq.Parse(buf.Bytes())
		if err != nil {
			t.Fatal("reparse with wrap", wrap, ":", err)
		}
		if len(back) != len(orig) {
			t.Fatal("wrap", wrap, "changed the entry count")
		}
		for i := range orig {
			if back[i].Cmmt() != orig[i].Cmmt() ||
				string(back[i].Res()) != string(orig[i].Res()) {
				t.Fatalf("wrap %d entry %d: %v != %v", wrap, i, back[i], orig[i])
			}
		}
	}
}

func TestWrapWidth(t *testing.T) {
	var buf bytes.Buffer
	s := []seq.Seq{seq.NewSeq("x", []byte("ABCDEFG"))}
	if err := seq.WriteFasta(&buf, s, 3); err != nil {
		t.Fatal(err)
	}
	want := ">x\nABC\nDEF\nG\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

// TestReadfile goes through the mmap path.
func TestReadfile(t *testing.T) {
	fname, err := WrtTemp(smallFasta)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	seqs, err := seq.Readfile(fname)
	if err != nil {
		t.Fatal("readfile:", err)
	}
	if len(seqs) != 3 || string(seqs[0].Res()) != "MSTAG" {
		t.Fatal("readfile gave the wrong entries:", seqs)
	}
	if n, err := seq.NumSeqs(fname); err != nil || n != 3 {
		t.Fatal("numseqs: got", n, err)
	}
}

func TestReadFastaReader(t *testing.T) {
	seqs, err := seq.ReadFasta(strings.NewReader(smallFasta))
	if err != nil || len(seqs) != 3 {
		t.Fatal("reading from a plain reader:", len(seqs), err)
	}
}

func TestWriteToF(t *testing.T) {
	fname, err := WrtTemp("")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	s := []seq.Seq{seq.NewSeq("a", []byte("MST"))}
	if err := seq.WriteToF(fname, s, 0); err != nil {
		t.Fatal(err)
	}
	back, err := seq.Readfile(fname)
	if err != nil || len(back) != 1 || string(back[0].Res()) != "MST" {
		t.Fatal("write/read via file failed:", back, err)
	}
}

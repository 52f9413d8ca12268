// 14 Jan 2025

// Reader and writer for fasta format files. Regular files are mapped
// into memory and parsed in place. Anything else (a pipe, stdin) is
// slurped the boring way.

package seq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ErrNoSequences is what you get from a file with no fasta entries.
var ErrNoSequences = errors.New("no fasta entries found")

const cmmtChar byte = '>' // introduces comments in fasta format

// Parse scans a buffer of fasta text. A line starting with ">" opens
// an entry and everything after the ">" is the label. All following
// non-blank lines are trimmed and concatenated as the residues, up to
// the next ">". Residue lines before the first label are ignored,
// which is what everybody else seems to do with them.
// The returned sequences do not point into buf, so buf may come from
// an mmap that is about to be unmapped.
func Parse(buf []byte) ([]Seq, error) {
	var seqs []Seq
	var cmmt string
	var res []byte
	inEntry := false

	for len(buf) > 0 {
		var line []byte
		if ndx := bytes.IndexByte(buf, '\n'); ndx == -1 {
			line, buf = buf, nil
		} else {
			line, buf = buf[:ndx], buf[ndx+1:]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] == cmmtChar {
			if inEntry {
				seqs = append(seqs, NewSeq(cmmt, res))
			}
			cmmt = string(bytes.TrimSpace(line[1:]))
			res = nil
			inEntry = true
			continue
		}
		if inEntry {
			res = append(res, line...)
		}
	}
	if inEntry {
		seqs = append(seqs, NewSeq(cmmt, res))
	}
	if len(seqs) == 0 {
		return nil, ErrNoSequences
	}
	return seqs, nil
}

// ReadFasta reads fasta entries from a reader.
func ReadFasta(rdr io.Reader) ([]Seq, error) {
	buf, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// Readfile takes a filename and reads sequences from it. An empty
// name means standard input. Files are mapped read-only, and if the
// mapping fails for whatever reason we quietly fall back to reading.
func Readfile(fname string) ([]Seq, error) {
	if fname == "" {
		return ReadFasta(os.Stdin)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		seqs, err := ReadFasta(fp)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fname, err)
		}
		return seqs, nil
	}
	defer mm.Unmap()
	seqs, err := Parse(mm)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return seqs, nil
}

// NumSeqs counts the fasta entries in a file without parsing it.
// Handy as a pre-flight on big downloads.
func NumSeqs(fname string) (int, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		buf, err := io.ReadAll(fp)
		if err != nil {
			return 0, err
		}
		return bytes.Count(buf, []byte{cmmtChar}), nil
	}
	defer mm.Unmap()
	return bytes.Count(mm, []byte{cmmtChar}), nil
}

// WriteFasta writes sequences to a writer. Residues are wrapped at
// wrap characters per line. wrap <= 0 means do not wrap at all.
func WriteFasta(w io.Writer, seqs []Seq, wrap int) error {
	for _, s := range seqs {
		if _, err := fmt.Fprintf(w, "%c%s\n", cmmtChar, s.Cmmt()); err != nil {
			return err
		}
		r := s.Res()
		if wrap > 0 {
			for ; len(r) > wrap; r = r[wrap:] {
				if _, err := fmt.Fprintf(w, "%s\n", r[:wrap]); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", r); err != nil {
			return err
		}
	}
	return nil
}

// WriteToF writes sequences to a named file. "" or "-" mean stdout.
func WriteToF(fname string, seqs []Seq, wrap int) error {
	var w io.Writer
	if fname == "" || fname == "-" {
		w = os.Stdout
	} else {
		fp, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("creating output sequence file: %w", err)
		}
		defer fp.Close()
		w = fp
	}
	return WriteFasta(w, seqs, wrap)
}

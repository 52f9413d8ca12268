// 10 Feb 2025

// Calling out to a real aligner. The contract is thin: give the tool
// an unaligned multi-fasta path, get back a fasta whose entries are
// all the same length with no residues dropped. Everything else about
// mafft or muscle is their business.

package gblock

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/SYeon-424/GBlocks/pkg/seq"
)

// whichOrPath resolves a tool name or path. An absolute path is
// accepted if the file exists, anything else goes through PATH.
// "" means not found.
func whichOrPath(x string) string {
	if x == "" {
		return ""
	}
	if filepath.IsAbs(x) {
		if fi, err := os.Stat(x); err == nil && !fi.IsDir() {
			return x
		}
		return ""
	}
	if p, err := exec.LookPath(x); err == nil {
		return p
	}
	return ""
}

// runTool runs an aligner process and waits for it. Standard error is
// captured so a failure can be reported with the tool's own words. A
// missing executable or non-zero exit is always an error, never an
// empty result.
func runTool(name string, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag != "" {
			return fmt.Errorf("%s failed: %s: %w", name, diag, err)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// runMafft aligns in_fa to out_fa with mafft, which writes the
// alignment to standard output.
func runMafft(in_fa, out_fa, exe string) error {
	path := whichOrPath(exe)
	if path == "" {
		path = whichOrPath("mafft")
	}
	if path == "" {
		return fmt.Errorf("mafft not found: %w", ErrNoAligner)
	}
	fout, err := os.Create(out_fa)
	if err != nil {
		return err
	}
	defer fout.Close()
	cmd := exec.Command(path, "--auto", "--quiet", in_fa)
	cmd.Stdout = fout
	return runTool("mafft", cmd)
}

// runMuscle aligns in_fa to out_fa with muscle, v5 flavour arguments.
func runMuscle(in_fa, out_fa, exe string) error {
	path := whichOrPath(exe)
	if path == "" {
		path = whichOrPath("muscle")
	}
	if path == "" {
		return fmt.Errorf("muscle not found: %w", ErrNoAligner)
	}
	cmd := exec.Command(path, "-align", in_fa, "-output", out_fa)
	return runTool("muscle", cmd)
}

// alignExternal pushes the entries through an external tool via a
// scratch directory and reads the result back.
func alignExternal(entries []seq.Seq, run func(in, out string) error) ([]seq.Seq, error) {
	dir, err := os.MkdirTemp("", "gblocks_align")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	in_fa := filepath.Join(dir, "in.fasta")
	out_fa := filepath.Join(dir, "out.fasta")
	if err := seq.WriteToF(in_fa, entries, 0); err != nil {
		return nil, err
	}
	if err := run(in_fa, out_fa); err != nil {
		return nil, err
	}
	aligned, err := seq.Readfile(out_fa)
	if err != nil {
		return nil, fmt.Errorf("reading aligner output: %w", err)
	}
	return aligned, nil
}

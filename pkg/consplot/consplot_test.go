// 18 Feb 2025

package consplot_test

import (
	"image/png"
	"os"
	"testing"

	"github.com/SYeon-424/GBlocks/pkg/consplot"
	"github.com/SYeon-424/GBlocks/pkg/seq"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
	"github.com/SYeon-424/GBlocks/pkg/trim"
)

func refMetrics(t *testing.T) *trim.ColMetrics {
	t.Helper()
	seqs := []seq.Seq{
		seq.NewSeq("a", []byte("MSTAG")),
		seq.NewSeq("b", []byte("MST-G")),
		seq.NewSeq("c", []byte("MSTTG")),
	}
	m, err := trim.Metrics(seqs)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

var refParams = trim.Params{MinBlockLen: 3, MaxGap: 0.34, MinCons: 0.67, FlankCons: -1}

func TestDraw(t *testing.T) {
	img, err := consplot.Draw(refMetrics(t), &refParams, 400, 200)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Fatal("wrong image size:", b)
	}
}

func TestDrawTooSmall(t *testing.T) {
	if _, err := consplot.Draw(refMetrics(t), &refParams, 30, 20); err == nil {
		t.Fatal("a plot with no room must be refused")
	}
}

func TestDrawEmpty(t *testing.T) {
	m := &trim.ColMetrics{}
	if _, err := consplot.Draw(m, &refParams, 400, 200); err == nil {
		t.Fatal("zero columns should be an error")
	}
}

func TestMymain(t *testing.T) {
	infile, err := WrtTemp(">s1\nMSTAG\n>s2\nMST-G\n>s3\nMSTTG\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(infile)
	outfile, err := WrtTemp("")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(outfile)

	flags := &consplot.CmdFlag{
		Width: 400, Height: 200,
		MaxGap: 0.34, MinCons: 0.67, MinBlock: 3,
	}
	if err := consplot.Mymain(flags, infile, outfile); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(outfile)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	img, err := png.Decode(fp)
	if err != nil {
		t.Fatal("output is not a readable png:", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Fatal("decoded plot has the wrong width:", img.Bounds())
	}
}

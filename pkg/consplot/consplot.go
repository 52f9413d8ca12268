// 18 Feb 2025

// Package consplot draws the per-column conservation and gap profile
// of an alignment as a png. Conservation is a bar per column, the gap
// fraction a red mark, the conservation threshold a horizontal rule,
// and the columns that would survive block extraction get a shaded
// background. It is the quickest way to see why a block was cut.
package consplot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/SYeon-424/GBlocks/pkg/seq"
	"github.com/SYeon-424/GBlocks/pkg/trim"
)

const (
	marginL = 42
	marginR = 12
	marginT = 14
	marginB = 28
)

var (
	clrBar    = color.RGBA{70, 110, 180, 255}  // conservation bars
	clrGap    = color.RGBA{200, 60, 50, 255}   // gap fraction marks
	clrKept   = color.RGBA{225, 240, 225, 255} // background of kept columns
	clrThresh = color.RGBA{40, 40, 40, 255}
	clrAxis   = color.RGBA{0, 0, 0, 255}
)

// fillRect paints a rectangle, clipped to the image.
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{c}, image.Point{}, draw.Src)
}

// labelled wraps a freetype context so the drawing code reads like
// "write this at x,y" and nothing more.
type labelled struct {
	ctx *freetype.Context
}

func newLabelled(img *image.RGBA) (*labelled, error) {
	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing builtin font: %w", err)
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(fnt)
	c.SetFontSize(11)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(&image.Uniform{clrAxis})
	return &labelled{ctx: c}, nil
}

func (l *labelled) write(s string, x, y int) error {
	_, err := l.ctx.DrawString(s, freetype.Pt(x, y))
	return err
}

// Draw renders the metrics into a fresh image. p supplies the
// thresholds for the rule and the kept-column shading; the same
// parameters one would trim with.
func Draw(m *trim.ColMetrics, p *trim.Params, width, height int) (*image.RGBA, error) {
	ncol := m.Len()
	if ncol == 0 {
		return nil, fmt.Errorf("nothing to plot, alignment has no columns")
	}
	if width-marginL-marginR < 1 || height-marginT-marginB < 20 {
		return nil, fmt.Errorf("image %dx%d too small", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), color.White)

	plotW := width - marginL - marginR
	plotH := height - marginT - marginB
	x0 := func(i int) int { return marginL + i*plotW/ncol }
	x1 := func(i int) int {
		x := marginL + (i+1)*plotW/ncol
		if x <= x0(i) {
			x = x0(i) + 1
		}
		return x
	}
	yAt := func(v float32) int { return marginT + plotH - int(v*float32(plotH)) }

	// shade what block extraction would keep
	mask := m.Mask(p)
	if p.MaxNonconsRun > 0 {
		mask = trim.AbsorbShortRuns(mask, p.MaxNonconsRun)
	}
	for _, b := range trim.FindBlocks(mask, p.MinBlockLen) {
		fillRect(img, image.Rect(x0(b.Start), marginT, x1(b.End-1), marginT+plotH), clrKept)
	}

	for i := 0; i < ncol; i++ {
		fillRect(img, image.Rect(x0(i), yAt(m.ConsFrac[i]), x1(i), marginT+plotH), clrBar)
	}
	for i := 0; i < ncol; i++ { // gap marks go on top of the bars
		y := yAt(m.GapFrac[i])
		fillRect(img, image.Rect(x0(i), y-1, x1(i), y+1), clrGap)
	}

	// threshold rule and axes
	fillRect(img, image.Rect(marginL, yAt(p.MinCons), width-marginR, yAt(p.MinCons)+1), clrThresh)
	fillRect(img, image.Rect(marginL-1, marginT, marginL, marginT+plotH+1), clrAxis)
	fillRect(img, image.Rect(marginL-1, marginT+plotH, width-marginR, marginT+plotH+1), clrAxis)

	lbl, err := newLabelled(img)
	if err != nil {
		return nil, err
	}
	for _, tick := range []float32{0, 0.5, 1} {
		if err := lbl.write(fmt.Sprintf("%.1f", tick), 8, yAt(tick)+4); err != nil {
			return nil, err
		}
	}
	if err := lbl.write("1", marginL, height-10); err != nil {
		return nil, err
	}
	if err := lbl.write(fmt.Sprint(ncol), width-marginR-24, height-10); err != nil {
		return nil, err
	}
	return img, nil
}

// CmdFlag is everything the command line can set.
type CmdFlag struct {
	Width    int     // image width in pixels
	Height   int     // image height
	MaxGap   float64 // thresholds, as for trimming
	MinCons  float64
	MinBlock int
	MaxRun   int
}

// Mymain reads an aligned fasta file, scores it and writes the plot.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	entries, err := seq.Readfile(infile)
	if err != nil {
		return fmt.Errorf("fail reading sequences: %w", err)
	}
	m, err := trim.Metrics(entries)
	if err != nil {
		return err
	}
	p := &trim.Params{
		MinBlockLen:   flags.MinBlock,
		MaxGap:        float32(flags.MaxGap),
		MinCons:       float32(flags.MinCons),
		FlankCons:     -1,
		MaxNonconsRun: flags.MaxRun,
	}
	if err := p.Check(); err != nil {
		return err
	}
	img, err := Draw(m, p, flags.Width, flags.Height)
	if err != nil {
		return err
	}
	fp, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("plot output file %s: %w", outfile, err)
	}
	defer fp.Close()
	if err := png.Encode(fp, img); err != nil {
		return fmt.Errorf("encoding %s: %w", outfile, err)
	}
	return nil
}

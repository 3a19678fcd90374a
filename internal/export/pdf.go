package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/pixelart/internal/picture"
)

// PDFOptions controls EncodePDF.
type PDFOptions struct {
	// CellSize is the edge of one cell in millimetres. Zero means 2mm.
	CellSize float64
	// Margin surrounds the picture, in millimetres.
	Margin float64
	Title  string
}

// EncodePDF writes p as a single page sized to fit it, one filled square per
// run of equal cells.
func EncodePDF(w io.Writer, p *picture.Picture, opts PDFOptions) error {
	cell := opts.CellSize
	if cell <= 0 {
		cell = 2
	}
	margin := opts.Margin
	if margin < 0 {
		margin = 0
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size: gofpdf.SizeType{
			Wd: float64(p.Width())*cell + 2*margin,
			Ht: float64(p.Height())*cell + 2*margin,
		},
	})
	pdf.SetCreator("pixelart", true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); {
			c := p.At(x, y)
			run := 1
			for x+run < p.Width() && p.At(x+run, y) == c {
				run++
			}
			rgba := c.RGBA()
			pdf.SetFillColor(int(rgba.R), int(rgba.G), int(rgba.B))
			pdf.Rect(margin+float64(x)*cell, margin+float64(y)*cell, float64(run)*cell, cell, "F")
			x += run
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

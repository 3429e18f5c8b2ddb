package pdf

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"time"

	"github.com/go-pdf/fpdf"

	"datasheet/domain/sheet"
	"datasheet/internal/errors"
)

// Layout constants in millimeters, A4 portrait.
const (
	logoWidth  = 50
	logoTopY   = 8
	lineWidth  = 190
	lineHeight = 10
	bodyIndent = 20
)

// Body column widths in print order: Name, Value, UOM. The printed order
// deliberately differs from the Record field order.
var bodyWidths = [3]float64{60, 100, 20}

// Renderer produces the fixed single-page data sheet layout. Tables larger
// than one page continue onto additional pages.
type Renderer struct{}

// NewRenderer creates a data sheet renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render serializes the given table into a PDF data sheet: centered logo,
// right-aligned print date, centered title, then one borderless body line
// per record. logo may be nil; a missing or undecodable logo degrades the
// export with a warning instead of failing it. Output is deterministic for
// equal inputs and timestamp.
func (r *Renderer) Render(table sheet.Table, logo []byte, now time.Time) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	r.drawLogo(doc, logo)

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(lineWidth, lineHeight, "Print Date: "+now.Format("January 02, 2006"), "", 1, "R", false, 0, "")

	doc.SetFont("Arial", "B", 16)
	doc.Ln(10)
	doc.CellFormat(lineWidth, lineHeight, "Engineering Data Sheet", "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Arial", "", 10)
	for _, rec := range table.Records {
		doc.SetX(bodyIndent)
		doc.CellFormat(bodyWidths[0], lineHeight, tr(rec.Name), "", 0, "L", false, 0, "")
		doc.CellFormat(bodyWidths[1], lineHeight, tr(rec.Value), "", 0, "L", false, 0, "")
		doc.CellFormat(bodyWidths[2], lineHeight, tr(rec.UOM), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		log.Printf("[Renderer] FAILED - Error writing PDF output: %v", err)
		return nil, errors.RenderError("failed to write PDF output", err)
	}

	log.Printf("[Renderer] Data sheet rendered (%d rows, %d bytes)", table.Len(), buf.Len())
	return buf.Bytes(), nil
}

// drawLogo places the logo horizontally centered near the top margin. Logo
// failures are cosmetic: they are logged and rendering continues.
func (r *Renderer) drawLogo(doc *fpdf.Fpdf, logo []byte) {
	if len(logo) == 0 {
		log.Printf("[Renderer] WARNING - No logo available, rendering without it")
		return
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(logo))
	if err != nil {
		log.Printf("[Renderer] WARNING - Could not decode logo: %v", err)
		return
	}

	opts := fpdf.ImageOptions{ImageType: format}
	doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
	if doc.Err() {
		log.Printf("[Renderer] WARNING - Could not render logo in PDF: %v", doc.Error())
		doc.ClearError()
		return
	}

	pageWidth, _ := doc.GetPageSize()
	centerX := (pageWidth - logoWidth) / 2
	doc.ImageOptions("logo", centerX, logoTopY, logoWidth, 0, false, opts, 0, "")
}

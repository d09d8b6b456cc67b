package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Document is a PDF under construction. Units are points with a top-left
// origin.
type Document struct {
	pdf      *gofpdf.Fpdf
	importer *gofpdi.Importer
	pages    int
	images   int
	pageH    float64
}

// New returns an empty document. The underlying encoder is allocated on the
// first AddPage.
func New() *Document {
	return &Document{}
}

// AddPage appends a page and makes it current.
func (d *Document) AddPage(width, height float64) error {
	if err := errors.ValidateSize(width, height); err != nil {
		return err
	}
	size := gofpdf.SizeType{Wd: width, Ht: height}
	if d.pdf == nil {
		d.pdf = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           size,
		})
		d.pdf.SetMargins(0, 0, 0)
		d.pdf.SetAutoPageBreak(false, 0)
		d.pdf.SetCreator("artwork", true)
	}
	d.pdf.AddPageFormat("P", size)
	d.pages++
	d.pageH = height
	return d.err("add page")
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return d.pages }

// Draw paints g onto the current page.
func (d *Document) Draw(g *Graphic) error {
	if d.pages == 0 {
		return errors.New(errors.ErrCodeDocument, "draw before first page")
	}
	if g == nil {
		return nil
	}
	if g.image != nil {
		d.images++
		name := fmt.Sprintf("artwork-img-%d", d.images)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(g.image))
		d.pdf.ImageOptions(name, 0, 0, g.width, g.height, false, opts, 0, "")
		return d.err("draw image")
	}
	for _, n := range g.nodes {
		drawNode(d.pdf, n, defaultStyle(), d.pageH)
	}
	return d.err("draw graphic")
}

// DrawSource paints page (1-based) of src as the background of the
// current page, stretched to the page size.
func (d *Document) DrawSource(src *Source, page int) (err error) {
	if d.pages == 0 {
		return errors.New(errors.ErrCodeDocument, "draw before first page")
	}
	if page < 1 || page > src.PageCount() {
		return errors.New(errors.ErrCodeInvalidInput, "page %d out of range 1..%d", page, src.PageCount())
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeDocument, "import page %d: %v", page, r)
		}
	}()
	if d.importer == nil {
		d.importer = gofpdi.NewImporter()
	}
	rs := io.ReadSeeker(bytes.NewReader(src.data))
	tpl := d.importer.ImportPageFromStream(d.pdf, &rs, page, "/MediaBox")
	w, h := d.pdf.GetPageSize()
	d.importer.UseImportedTemplate(d.pdf, tpl, 0, 0, w, h)
	return d.err("import page")
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	if d.pages == 0 {
		return nil, errors.New(errors.ErrCodeDocument, "document has no pages")
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocument, err, "serialize")
	}
	return buf.Bytes(), nil
}

func (d *Document) err(op string) error {
	if d.pdf != nil && d.pdf.Err() {
		return errors.Wrap(errors.ErrCodeDocument, d.pdf.Error(), "%s", op)
	}
	return nil
}

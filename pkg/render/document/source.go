package document

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Letter is the page size assumed when a page declares no MediaBox.
var Letter = Page{Width: 612, Height: 792}

// Page is the size of one loaded page in points.
type Page struct {
	Width, Height float64
}

// Source is a loaded PDF whose pages can be drawn as backgrounds.
type Source struct {
	data  []byte
	pages []Page
}

// Load parses a PDF and records each page's size.
func Load(data []byte) (src *Source, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, errors.New(errors.ErrCodeDocument, "load document: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocument, err, "load document")
	}
	n := r.NumPage()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeDocument, "load document: no pages")
	}

	src = &Source{data: append([]byte(nil), data...), pages: make([]Page, n)}
	for i := 1; i <= n; i++ {
		p, err := pageSize(r.Page(i).V)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDocument, err, "page %d", i)
		}
		src.pages[i-1] = p
	}
	return src, nil
}

// PageCount returns the number of pages.
func (s *Source) PageCount() int { return len(s.pages) }

// Pages returns the page sizes in order.
func (s *Source) Pages() []Page {
	return append([]Page(nil), s.pages...)
}

// pageSize reads the MediaBox, following Parent links for inherited values.
func pageSize(v pdf.Value) (Page, error) {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		box := v.Key("MediaBox")
		if !box.IsNull() {
			if box.Len() != 4 {
				return Page{}, fmt.Errorf("malformed MediaBox")
			}
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w <= 0 || h <= 0 {
				return Page{}, fmt.Errorf("empty MediaBox")
			}
			return Page{Width: w, Height: h}, nil
		}
		v = v.Key("Parent")
	}
	return Letter, nil
}

package reader

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/texgest/internal/latex"
)

// CSVReader handles CSV files. The file maps onto a single table: first
// record as headers, the rest as rows, so it flattens through the same
// table renderer as tables parsed out of LaTeX sources.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader, filename string) (*latex.Document, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &latex.Document{
		Title:          titleFromFilename(filename),
		SourceDocument: filename,
	}
	if len(records) == 0 {
		return doc, nil
	}

	doc.Tables = []latex.Table{{
		Caption: doc.Title,
		Headers: records[0],
		Rows:    records[1:],
	}}
	return doc, nil
}
